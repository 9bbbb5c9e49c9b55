// Package png handles the PNG container: the fixed 8-byte signature
// followed by a run of chunks. It frames chunks off a stream and hands each
// exact frame to the chunk package, so all per-chunk validation lives
// there. Image data stays opaque; IDAT is just another chunk.
package png

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pngstash/pngstash/chunk"
	"github.com/pngstash/pngstash/util"
)

// Signature is the 8-byte sequence that opens every PNG file.
const Signature = "\x89PNG\r\n\x1a\n"

// IEND is the type code of the chunk that closes a PNG datastream.
const IEND = "IEND"

var (
	// ErrBadSignature reports a stream that does not open with Signature.
	ErrBadSignature = errors.New("not a png: bad signature")

	// ErrNoChunk reports a lookup for a chunk type the file does not carry.
	ErrNoChunk = errors.New("png carries no chunk of that type")
)

// File is a PNG file held as its ordered chunk sequence.
type File struct {
	chunks []chunk.Chunk
}

// FromChunks builds a File over the given chunks, taking ownership of the
// slice.
func FromChunks(chunks []chunk.Chunk) *File {
	return &File{chunks: chunks}
}

// ReadFrom decodes a PNG datastream: the signature, then chunks until EOF.
// Each chunk's declared length frames its span, and the exact span goes to
// chunk.Parse, so truncated frames, bad type bytes, and checksum mismatches
// all surface with the chunk's position attached.
func ReadFrom(r io.Reader) (*File, error) {
	var sig [8]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return nil, fmt.Errorf("reading signature: %w", err)
	}
	if string(sig[:]) != Signature {
		return nil, fmt.Errorf("%w: % x", ErrBadSignature, sig)
	}

	f := &File{}
	for {
		var head [8]byte
		_, err := io.ReadFull(r, head[:])
		if err == io.EOF {
			return f, nil
		}
		if err != nil {
			return nil, fmt.Errorf("chunk %d: reading header: %w", len(f.chunks), err)
		}

		length := binary.BigEndian.Uint32(head[0:4])
		frame := make([]byte, 12+int(length))
		copy(frame, head[:])
		if _, err := io.ReadFull(r, frame[8:]); err != nil {
			return nil, fmt.Errorf("chunk %d: reading body: %w", len(f.chunks), err)
		}

		c, err := chunk.Parse(frame)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", len(f.chunks), err)
		}
		f.chunks = append(f.chunks, c)
	}
}

// ReadFile loads the file at path as a PNG.
func ReadFile(path string) (*File, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f, nil
}

// Chunks returns the file's chunks in order.
func (f *File) Chunks() []chunk.Chunk {
	return f.chunks
}

// ChunkByType returns the first chunk whose type code renders as typ.
func (f *File) ChunkByType(typ string) (chunk.Chunk, bool) {
	for _, c := range f.chunks {
		if c.Type().String() == typ {
			return c, true
		}
	}
	return chunk.Chunk{}, false
}

// AppendChunk adds c to the file. When the file ends with IEND the chunk
// goes in front of it, so the result stays a well-formed PNG.
func (f *File) AppendChunk(c chunk.Chunk) {
	n := len(f.chunks)
	if n > 0 && f.chunks[n-1].Type().String() == IEND {
		last := f.chunks[n-1]
		f.chunks = append(f.chunks[:n-1], c, last)
		return
	}
	f.chunks = append(f.chunks, c)
}

// RemoveChunk deletes and returns the first chunk whose type code renders
// as typ.
func (f *File) RemoveChunk(typ string) (chunk.Chunk, error) {
	for i, c := range f.chunks {
		if c.Type().String() == typ {
			f.chunks = append(f.chunks[:i], f.chunks[i+1:]...)
			return c, nil
		}
	}
	return chunk.Chunk{}, fmt.Errorf("%w: %q", ErrNoChunk, typ)
}

// Bytes serializes the whole file: the signature, then every chunk's frame.
func (f *File) Bytes() []byte {
	buf := []byte(Signature)
	for _, c := range f.chunks {
		buf = append(buf, c.Bytes()...)
	}
	return buf
}

// WriteFile writes the serialized PNG to path, replacing any existing file
// atomically.
func (f *File) WriteFile(path string) error {
	return util.WriteFileAtomic(path, f.Bytes())
}

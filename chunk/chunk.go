// Package chunk reads and writes single PNG chunks: the length-prefixed,
// typed, CRC-trailed frames every PNG file is a sequence of. It knows
// nothing about whole files or image data; callers hand it one chunk's
// bytes at a time and get validated values back.
package chunk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"unicode/utf8"
)

// On-wire layout: big-endian u32 payload length, 4 type bytes, payload,
// big-endian u32 CRC over type+payload.
const (
	headerSize = 8
	crcSize    = 4
	minSize    = headerSize + crcSize
)

var (
	// ErrChecksumMismatch reports a stored CRC that differs from the CRC
	// recomputed over the chunk's type and payload bytes.
	ErrChecksumMismatch = errors.New("chunk checksum mismatch")

	// ErrNotText reports a payload that is not valid UTF-8.
	ErrNotText = errors.New("chunk payload is not valid UTF-8 text")
)

// Chunk is one PNG chunk. The CRC always matches the type and payload, and
// the length always matches the payload: both are fixed at construction and
// never drift.
type Chunk struct {
	typ  Type
	data []byte
	crc  uint32
}

// New builds a chunk from a type code and payload, computing the CRC. The
// payload may be empty or nil. The chunk takes ownership of data.
func New(typ Type, data []byte) Chunk {
	return Chunk{typ: typ, data: data, crc: checksum(typ, data)}
}

// Parse decodes one chunk from its exact wire frame and verifies it. The
// buffer must span the whole chunk and nothing else: the declared length is
// cross-checked against the bytes actually present, and the stored CRC
// against the CRC recomputed from the type and payload. A chunk failing
// either check is never returned.
func Parse(b []byte) (Chunk, error) {
	if len(b) < minSize {
		return Chunk{}, fmt.Errorf("%w: frame is %d bytes, want at least %d", ErrInvalidLength, len(b), minSize)
	}
	length := binary.BigEndian.Uint32(b[0:4])
	if uint64(len(b)) != uint64(length)+minSize {
		return Chunk{}, fmt.Errorf("%w: declared payload of %d bytes but frame carries %d", ErrInvalidLength, length, len(b)-minSize)
	}

	var tb [4]byte
	copy(tb[:], b[4:8])
	typ, err := TypeFromBytes(tb)
	if err != nil {
		return Chunk{}, err
	}

	data := make([]byte, length)
	copy(data, b[headerSize:headerSize+length])
	stored := binary.BigEndian.Uint32(b[len(b)-crcSize:])

	c := New(typ, data)
	if c.crc != stored {
		return Chunk{}, fmt.Errorf("%w: stored %d, computed %d", ErrChecksumMismatch, stored, c.crc)
	}
	return c, nil
}

// Length returns the payload size in bytes.
func (c Chunk) Length() uint32 {
	return uint32(len(c.data))
}

// Type returns the chunk's type code.
func (c Chunk) Type() Type {
	return c.typ
}

// Data returns the payload. The slice is the chunk's own storage and must
// not be modified.
func (c Chunk) Data() []byte {
	return c.data
}

// CRC returns the checksum over the type and payload bytes.
func (c Chunk) CRC() uint32 {
	return c.crc
}

// Text returns the payload decoded as UTF-8 text.
func (c Chunk) Text() (string, error) {
	if !utf8.Valid(c.data) {
		return "", ErrNotText
	}
	return string(c.data), nil
}

// Bytes serializes the chunk into its wire frame.
func (c Chunk) Bytes() []byte {
	buf := make([]byte, minSize+len(c.data))
	binary.BigEndian.PutUint32(buf[0:4], c.Length())
	copy(buf[4:headerSize], c.typ.bytes[:])
	copy(buf[headerSize:], c.data)
	binary.BigEndian.PutUint32(buf[headerSize+len(c.data):], c.crc)
	return buf
}

// String summarizes the chunk for diagnostics.
func (c Chunk) String() string {
	return fmt.Sprintf("%s length=%d crc=%d", c.typ, c.Length(), c.crc)
}

// checksum computes CRC-32 over the type bytes followed by the payload
// bytes. PNG mandates the ISO-HDLC parameterization, which is exactly what
// hash/crc32's IEEE table implements.
func checksum(typ Type, data []byte) uint32 {
	buf := make([]byte, 0, 4+len(data))
	buf = append(buf, typ.bytes[:]...)
	buf = append(buf, data...)
	return crc32.ChecksumIEEE(buf)
}

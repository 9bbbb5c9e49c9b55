package chunk

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTypeByte reports a chunk type byte outside A-Z / a-z.
	ErrInvalidTypeByte = errors.New("invalid chunk type byte")

	// ErrInvalidLength reports input of the wrong size: a type string that
	// is not exactly 4 characters, or a chunk frame whose size disagrees
	// with the layout it declares.
	ErrInvalidLength = errors.New("invalid length")
)

// Type is a 4-byte PNG chunk type code such as "IHDR" or "tEXt". Every byte
// is an ASCII letter, and the case bit (0x20) of each byte classifies the
// chunk for decoders: critical/ancillary, public/private, reserved, and
// safe-to-copy, in that order. Type is an immutable value; compare with ==.
type Type struct {
	bytes [4]byte
}

// TypeFromBytes validates b as a chunk type code. Every byte must be an
// ASCII letter; the bytes are kept exactly as given, case included.
func TypeFromBytes(b [4]byte) (Type, error) {
	for i, c := range b {
		if !isLetter(c) {
			return Type{}, fmt.Errorf("%w: 0x%02x at index %d", ErrInvalidTypeByte, c, i)
		}
	}
	return Type{bytes: b}, nil
}

// TypeFromString validates s as a chunk type code: exactly 4 ASCII letters.
func TypeFromString(s string) (Type, error) {
	if len(s) != 4 {
		return Type{}, fmt.Errorf("%w: type %q is %d bytes, want 4", ErrInvalidLength, s, len(s))
	}
	var b [4]byte
	copy(b[:], s)
	return TypeFromBytes(b)
}

// Bytes returns a copy of the 4 type bytes.
func (t Type) Bytes() [4]byte {
	return t.bytes
}

// IsCritical reports whether the chunk is necessary for display: the case
// bit of the first byte is clear (uppercase).
func (t Type) IsCritical() bool {
	return t.bytes[0]&0x20 == 0
}

// IsPublic reports whether the type code is publicly registered: the case
// bit of the second byte is clear.
func (t Type) IsPublic() bool {
	return t.bytes[1]&0x20 == 0
}

// IsReservedBitValid reports whether the third byte is uppercase. Lowercase
// is reserved for future revisions of the format, so a conforming encoder
// never produces it.
func (t Type) IsReservedBitValid() bool {
	return t.bytes[2]&0x20 == 0
}

// IsSafeToCopy reports whether an editor that does not recognize the chunk
// may carry it over to a modified file: the case bit of the fourth byte is
// set (lowercase).
func (t Type) IsSafeToCopy() bool {
	return t.bytes[3]&0x20 != 0
}

// IsValid reports whether a conforming decoder would accept the type code.
// Only the reserved bit matters here; the other three case bits classify
// the chunk but never invalidate it.
func (t Type) IsValid() bool {
	return t.IsReservedBitValid()
}

// String renders the type code as its 4 letters.
func (t Type) String() string {
	return string(t.bytes[:])
}

func isLetter(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}

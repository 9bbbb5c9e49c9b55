package chunk

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

const secretMessage = "This is where your secret message will be!"

// CRC-32 of "RuSt" followed by secretMessage.
const secretCRC = uint32(2882656334)

func buildFrame(length uint32, typ string, data []byte, crc uint32) []byte {
	buf := make([]byte, 12+len(data))
	binary.BigEndian.PutUint32(buf[0:4], length)
	copy(buf[4:8], typ)
	copy(buf[8:], data)
	binary.BigEndian.PutUint32(buf[8+len(data):], crc)
	return buf
}

func testingFrame() []byte {
	return buildFrame(42, "RuSt", []byte(secretMessage), secretCRC)
}

func TestNewChunk(t *testing.T) {
	c := New(mustType(t, "RuSt"), []byte(secretMessage))

	assert := assert.New(t)
	assert.Equal(uint32(42), c.Length())
	assert.Equal("RuSt", c.Type().String())
	assert.Equal([]byte(secretMessage), c.Data())
	assert.Equal(secretCRC, c.CRC())
}

func TestNewChunkEmptyPayload(t *testing.T) {
	c := New(mustType(t, "RuSt"), nil)

	assert := assert.New(t)
	assert.Equal(uint32(0), c.Length())
	// CRC of the bare type bytes.
	assert.Equal(uint32(3565422908), c.CRC())

	txt, err := c.Text()
	assert.NoError(err)
	assert.Equal("", txt)
}

func TestChunkText(t *testing.T) {
	c := New(mustType(t, "RuSt"), []byte(secretMessage))

	txt, err := c.Text()
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(secretMessage, txt)
}

func TestTextRejectsNonUTF8(t *testing.T) {
	c := New(mustType(t, "RuSt"), []byte{0xff, 0xfe, 0xfd})

	_, err := c.Text()
	assert.ErrorIs(t, err, ErrNotText)
}

func TestBytesLayout(t *testing.T) {
	c := New(mustType(t, "RuSt"), []byte(secretMessage))
	b := c.Bytes()

	assert := assert.New(t)
	assert.Equal(54, len(b))
	assert.Equal([]byte{0x00, 0x00, 0x00, 0x2a}, b[0:4])
	assert.Equal([]byte("RuSt"), b[4:8])
	assert.Equal([]byte(secretMessage), b[8:50])
	assert.Equal(testingFrame(), b)
}

func TestParseValidFrame(t *testing.T) {
	c, err := Parse(testingFrame())

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(uint32(42), c.Length())
	assert.Equal("RuSt", c.Type().String())
	assert.Equal(secretCRC, c.CRC())

	txt, err := c.Text()
	assert.NoError(err)
	assert.Equal(secretMessage, txt)
}

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		typ  string
		data []byte
	}{
		{"RuSt", []byte(secretMessage)},
		{"stSh", []byte("hello world")},
		{"teXt", nil},
		{"AbCd", []byte{0x00, 0xff, 0x10, 0x80}},
	}
	for _, tc := range cases {
		orig := New(mustType(t, tc.typ), tc.data)
		parsed, err := Parse(orig.Bytes())

		assert := assert.New(t)
		assert.NoError(err, tc.typ)
		assert.Equal(orig.Length(), parsed.Length(), tc.typ)
		assert.Equal(orig.Type(), parsed.Type(), tc.typ)
		assert.Equal(orig.Data(), parsed.Data(), tc.typ)
		assert.Equal(orig.CRC(), parsed.CRC(), tc.typ)
	}
}

func TestChecksumDeterminism(t *testing.T) {
	typ := mustType(t, "RuSt")
	data := []byte(secretMessage)

	assert := assert.New(t)
	assert.Equal(New(typ, data).CRC(), New(typ, data).CRC())

	tampered := []byte(secretMessage)
	tampered[0] ^= 0x01
	assert.NotEqual(New(typ, data).CRC(), New(typ, tampered).CRC())

	// Type case changes the checksummed bytes too.
	assert.NotEqual(New(typ, data).CRC(), New(mustType(t, "ruSt"), data).CRC())
}

func TestParseRejectsBadCRC(t *testing.T) {
	frame := buildFrame(42, "RuSt", []byte(secretMessage), secretCRC+1)

	_, err := Parse(frame)
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestParseRejectsBadTypeByte(t *testing.T) {
	frame := buildFrame(42, "Ru1t", []byte(secretMessage), 0)

	_, err := Parse(frame)
	assert.ErrorIs(t, err, ErrInvalidTypeByte)
}

func TestParseRejectsShortBuffers(t *testing.T) {
	frame := testingFrame()

	assert := assert.New(t)
	for n := 0; n < 12; n++ {
		_, err := Parse(frame[:n])
		assert.ErrorIs(err, ErrInvalidLength, "buffer of %d bytes", n)
	}
}

func TestParseRejectsLengthMismatch(t *testing.T) {
	assert := assert.New(t)
	for _, declared := range []uint32{0, 41, 43, 1000} {
		frame := buildFrame(declared, "RuSt", []byte(secretMessage), secretCRC)
		_, err := Parse(frame)
		assert.ErrorIs(err, ErrInvalidLength, "declared length %d", declared)
	}
}

func TestTamperedFramesFailParse(t *testing.T) {
	frame := testingFrame()

	assert := assert.New(t)
	for i := range frame {
		for bit := uint(0); bit < 8; bit++ {
			tampered := make([]byte, len(frame))
			copy(tampered, frame)
			tampered[i] ^= 1 << bit
			_, err := Parse(tampered)
			assert.Error(err, "flip of byte %d bit %d went unnoticed", i, bit)
		}
	}
}

func TestChunkString(t *testing.T) {
	c := New(mustType(t, "RuSt"), []byte(secretMessage))
	s := c.String()

	assert := assert.New(t)
	assert.Contains(s, "RuSt")
	assert.Contains(s, "42")
	assert.Contains(s, "2882656334")
}

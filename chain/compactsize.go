package chain

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
)

// MaxCompactSizeLen is the widest CompactSize encoding: a 0xff prefix and a uint64.
const MaxCompactSizeLen = 9

// ReadCompactSize decodes a Bitcoin CompactSize integer.
//
// Non-minimal encodings are accepted (0xfd0100 decodes to 1). AppendCompactSize
// always writes the minimal form, so only canonical input round-trips byte for byte.
func ReadCompactSize(c *Cursor) (uint64, error) {
	prefix, err := c.readByte()
	if err != nil {
		return 0, err
	}

	var width int
	switch prefix {
	case 0xff:
		width = 8
	case 0xfe:
		width = 4
	case 0xfd:
		width = 2
	default:
		return uint64(prefix), nil
	}

	if c.Remaining() < width {
		return 0, errors.Wrapf(ErrInvalidVarInt, "prefix 0x%x at offset %d needs %d bytes, have %d",
			prefix, c.Offset()-1, width, c.Remaining())
	}
	b, _ := c.Read(width)

	switch width {
	case 8:
		return binary.LittleEndian.Uint64(b), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), nil
	default:
		return uint64(binary.LittleEndian.Uint16(b)), nil
	}
}

// CompactSizeLen is the number of bytes AppendCompactSize uses for v.
func CompactSizeLen(v uint64) int {
	switch {
	case v < 0xfd:
		return 1
	case v <= math.MaxUint16:
		return 3
	case v <= math.MaxUint32:
		return 5
	default:
		return 9
	}
}

// AppendCompactSize appends the minimal CompactSize encoding of v to b.
func AppendCompactSize(b []byte, v uint64) []byte {
	switch {
	case v < 0xfd: // single byte
		return append(b, byte(v))
	case v <= math.MaxUint16:
		return append(b, 0xfd, byte(v), byte(v>>8))
	case v <= math.MaxUint32:
		return append(b, 0xfe, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	default:
		return append(b, 0xff,
			byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
			byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
	}
}

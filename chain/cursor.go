package chain

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// Cursor is a read position over an immutable byte buffer. It belongs to a single
// decode and is never shared.
type Cursor struct {
	buf []byte
	pos int
}

func NewCursor(b []byte) *Cursor {
	return &Cursor{buf: b}
}

// Read returns the next n bytes and advances past them. The returned slice aliases
// the underlying buffer.
func (c *Cursor) Read(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, errors.Wrapf(ErrTruncatedInput, "need %d bytes at offset %d, have %d", n, c.pos, c.Remaining())
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Peek is Read without advancing. Returns nil if fewer than n bytes remain.
func (c *Cursor) Peek(n int) []byte {
	if n < 0 || n > c.Remaining() {
		return nil
	}
	return c.buf[c.pos : c.pos+n]
}

func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }
func (c *Cursor) AtEnd() bool    { return c.pos == len(c.buf) }
func (c *Cursor) Offset() int    { return c.pos }

func (c *Cursor) readByte() (byte, error) {
	b, err := c.Read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) readUint32() (uint32, error) {
	b, err := c.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *Cursor) readUint64() (uint64, error) {
	b, err := c.Read(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// readVarBytes reads a CompactSize length followed by that many bytes, copied out
// of the buffer. A zero length yields nil.
func (c *Cursor) readVarBytes() ([]byte, error) {
	size, err := ReadCompactSize(c)
	if err != nil {
		return nil, err
	}
	if size > uint64(c.Remaining()) {
		return nil, errors.Wrapf(ErrTruncatedInput, "length %d at offset %d, have %d", size, c.pos, c.Remaining())
	}
	b, err := c.Read(int(size))
	if err != nil || size == 0 {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

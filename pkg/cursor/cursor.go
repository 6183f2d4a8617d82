// Package cursor implements the positioned reader over a script's bytecode
// body described in spec.md §4.1.
package cursor

import (
	"fmt"

	"github.com/xplshn/descumm/pkg/dialect"
)

// Cursor is a bounded, positioned reader over a bytecode body. It knows the
// active dialect's word width and never reads past the end of the body.
type Cursor struct {
	body    []byte
	pos     int
	dialect dialect.Dialect
}

// New wraps body (the bytecode following any container header) for reading
// under the given dialect.
func New(body []byte, d dialect.Dialect) *Cursor {
	return &Cursor{body: body, dialect: d}
}

// Len returns the total length of the bytecode body.
func (c *Cursor) Len() int { return len(c.body) }

// Offset returns the current read position relative to the start of the
// bytecode body.
func (c *Cursor) Offset() int { return c.pos }

// Seek moves the cursor to an absolute offset within the body.
func (c *Cursor) Seek(off int) { c.pos = off }

// Done reports whether the cursor has consumed the entire body.
func (c *Cursor) Done() bool { return c.pos >= len(c.body) }

// Byte reads one byte and advances the cursor.
func (c *Cursor) Byte() (byte, error) {
	if c.pos >= len(c.body) {
		return 0, fmt.Errorf("cursor: read past end of bytecode at offset %d", c.pos)
	}
	b := c.body[c.pos]
	c.pos++
	return b, nil
}

// Word reads the dialect's word width (2 bytes on v6/v7, 4 on v8), little
// endian, as an unsigned value.
func (c *Cursor) Word() (uint32, error) {
	n := c.dialect.WordSize()
	if c.pos+n > len(c.body) {
		return 0, fmt.Errorf("cursor: read past end of bytecode at offset %d", c.pos)
	}
	var v uint32
	for i := 0; i < n; i++ {
		v |= uint32(c.body[c.pos+i]) << (8 * i)
	}
	c.pos += n
	return v, nil
}

// SWord reads the dialect's word width sign-extended to int32.
func (c *Cursor) SWord() (int32, error) {
	n := c.dialect.WordSize()
	raw, err := c.Word()
	if err != nil {
		return 0, err
	}
	if n == 2 {
		return int32(int16(uint16(raw))), nil
	}
	return int32(raw), nil
}

// PeekAt reads a single byte at an absolute offset without moving the
// cursor or bounds-checking against the current position; used only by the
// control-flow recoverer to inspect bytes at jump targets it has not yet
// reached (spec.md §4.1).
func (c *Cursor) PeekAt(off int) (byte, bool) {
	if off < 0 || off >= len(c.body) {
		return 0, false
	}
	return c.body[off], true
}

// PeekWordAt reads the dialect's word width at an absolute offset without
// moving the cursor.
func (c *Cursor) PeekWordAt(off int) (uint32, bool) {
	n := c.dialect.WordSize()
	if off < 0 || off+n > len(c.body) {
		return 0, false
	}
	var v uint32
	for i := 0; i < n; i++ {
		v |= uint32(c.body[off+i]) << (8 * i)
	}
	return v, true
}

// PeekSWordAt is PeekWordAt sign-extended to int32.
func (c *Cursor) PeekSWordAt(off int) (int32, bool) {
	n := c.dialect.WordSize()
	raw, ok := c.PeekWordAt(off)
	if !ok {
		return 0, false
	}
	if n == 2 {
		return int32(int16(uint16(raw))), true
	}
	return int32(raw), true
}

// Dialect returns the cursor's active dialect.
func (c *Cursor) Dialect() dialect.Dialect { return c.dialect }

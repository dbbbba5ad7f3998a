package format

import (
	"encoding/binary"
	"fmt"
	"math"
)

type fieldKind int

const (
	kindBytes fieldKind = iota
	kindUint32
	kindFloat32
)

// Field describes one fixed-width member of a record.
type Field struct {
	kind fieldKind
	size int
}

// Size returns the encoded width of the field in bytes.
func (f Field) Size() int { return f.size }

var (
	// Uint32 is a little-endian unsigned 32-bit integer.
	Uint32 = Field{kind: kindUint32, size: 4}
	// Float32 is a little-endian IEEE-754 single.
	Float32 = Field{kind: kindFloat32, size: 4}
)

// Bytes is a raw block of n bytes.
func Bytes(n int) Field { return Field{kind: kindBytes, size: n} }

// Cursor reads typed values from one page buffer, front to back.
type Cursor struct {
	page   int
	data   []byte
	offset int
}

// NewCursor wraps the contents of page file number page.
func NewCursor(page int, data []byte) *Cursor {
	return &Cursor{page: page, data: data}
}

// Page returns the index of the page the cursor reads.
func (c *Cursor) Page() int { return c.page }

// Offset returns the position of the next read.
func (c *Cursor) Offset() int { return c.offset }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.offset }

func (c *Cursor) truncated(want int) error {
	return &DecodeError{
		Page:   c.page,
		Offset: c.offset,
		Kind:   ErrTruncated,
		Msg:    fmt.Sprintf("need %d bytes, %d left", want, c.Remaining()),
	}
}

// ReadFixed returns the next n bytes. The returned slice aliases the buffer.
func (c *Cursor) ReadFixed(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, c.truncated(n)
	}
	b := c.data[c.offset : c.offset+n]
	c.offset += n
	return b, nil
}

// ReadUint32 decodes a little-endian uint32.
func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.ReadFixed(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadFloat32 decodes a little-endian float32.
func (c *Cursor) ReadFloat32() (float32, error) {
	b, err := c.ReadFixed(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

// ReadStruct decodes a fixed record in one call. Values come back in field
// order as []byte, uint32 or float32. The record is read whole or not at all:
// on truncation the offset stays at the start of the record.
func (c *Cursor) ReadStruct(fields ...Field) ([]any, error) {
	width := 0
	for _, f := range fields {
		width += f.size
	}
	if c.Remaining() < width {
		return nil, c.truncated(width)
	}

	values := make([]any, 0, len(fields))
	for _, f := range fields {
		b := c.data[c.offset : c.offset+f.size]
		c.offset += f.size
		switch f.kind {
		case kindUint32:
			values = append(values, binary.LittleEndian.Uint32(b))
		case kindFloat32:
			values = append(values, math.Float32frombits(binary.LittleEndian.Uint32(b)))
		default:
			values = append(values, b)
		}
	}
	return values, nil
}

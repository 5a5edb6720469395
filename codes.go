package lzw

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// A Code is one LZW code and the number of bits it was written with.
type Code struct {
	Value uint64
	Width uint8
}

// ErrWidthMismatch is returned by CodeBuffer.ReadBits when a code is read with
// a different width than it was written with.
var ErrWidthMismatch = errors.New("lzw: code read with wrong width")

// A CodeBuffer is a BitSink and BitSource that keeps codes unpacked, along
// with their widths.
type CodeBuffer struct {
	Codes []Code

	// Flushed is set by Flush.
	Flushed bool

	pos int
}

func (b *CodeBuffer) WriteBits(value uint64, width uint8) error {
	b.Codes = append(b.Codes, Code{Value: value, Width: width})
	return nil
}

func (b *CodeBuffer) Flush() error {
	b.Flushed = true
	return nil
}

func (b *CodeBuffer) ReadBits(width uint8) (uint64, error) {
	if b.pos >= len(b.Codes) {
		return 0, io.EOF
	}
	c := b.Codes[b.pos]
	if c.Width != width {
		return 0, errors.Wrapf(ErrWidthMismatch, "code %d: written with %d bits, read with %d", b.pos, c.Width, width)
	}
	b.pos++
	return c.Value, nil
}

// Values returns the code values without their widths.
func (b *CodeBuffer) Values() []uint64 {
	values := make([]uint64, len(b.Codes))
	for i, c := range b.Codes {
		values[i] = c.Value
	}
	return values
}

// A TextSink is a BitSink that produces a human-readable listing of the codes
// instead of packing them. Each code is written as value/width, separated by
// spaces, and Flush ends the line.
type TextSink struct {
	W io.Writer
	n int
}

func (t *TextSink) WriteBits(value uint64, width uint8) error {
	sep := " "
	if t.n == 0 {
		sep = ""
	}
	t.n++
	_, err := fmt.Fprintf(t.W, "%s%d/%d", sep, value, width)
	return err
}

func (t *TextSink) Flush() error {
	if t.n == 0 {
		return nil
	}
	t.n = 0
	_, err := io.WriteString(t.W, "\n")
	return err
}

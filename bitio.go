package lzw

import (
	"io"

	"github.com/icza/bitio"
)

// A BitWriter packs codes into bytes, most significant bit first.
type BitWriter struct {
	w *bitio.Writer
}

// NewBitWriter returns a BitWriter that writes to w. If w is not an
// io.ByteWriter, the output is buffered until Flush.
func NewBitWriter(w io.Writer) *BitWriter {
	return &BitWriter{w: bitio.NewWriter(w)}
}

func (b *BitWriter) WriteBits(value uint64, width uint8) error {
	return b.w.WriteBits(value, width)
}

// Flush pads the last byte with zero bits and writes out everything that is
// buffered.
func (b *BitWriter) Flush() error {
	return b.w.Close()
}

// A BitReader reads codes packed by a BitWriter.
type BitReader struct {
	r *bitio.Reader
}

// NewBitReader returns a BitReader that reads from r.
func NewBitReader(r io.Reader) *BitReader {
	return &BitReader{r: bitio.NewReader(r)}
}

// ReadBits returns the next width bits. The padding at the end of a stream is
// always shorter than a code, so running out of bits partway through a code
// is reported as io.EOF.
func (b *BitReader) ReadBits(width uint8) (uint64, error) {
	v, err := b.r.ReadBits(width)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return v, err
}

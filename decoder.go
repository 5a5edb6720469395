package lzw

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// decoder holds the state of one decoding pass.
type decoder struct {
	dict  decodeTable
	width codeWidth

	prev    uint32
	started bool

	// buf holds the string for the most recent code.
	buf []byte
}

func (d *decoder) reset() {
	d.dict.reset()
	d.width.reset()
	d.prev = 0
	d.started = false
	d.buf = d.buf[:0]
}

// decode returns the string for code and adds the entry the encoder created
// when it wrote the previous code. The result is only valid until the next
// call.
func (d *decoder) decode(code uint64) ([]byte, error) {
	next := d.dict.next()

	if !d.started {
		if code >= alphabetSize {
			return nil, errors.Wrapf(ErrCorrupt, "first code %d is not a single byte", code)
		}
		d.buf = append(d.buf[:0], byte(code))
		d.prev = uint32(code)
		d.started = true
		d.width.update(uint64(next) + 1)
		return d.buf, nil
	}

	switch {
	case code < uint64(next):
		d.buf = d.dict.appendString(d.buf[:0], uint32(code))
	case code == uint64(next):
		// The encoder used this entry right after defining it, so it must be
		// the previous string plus its own first byte.
		d.buf = d.dict.appendString(d.buf[:0], d.prev)
		d.buf = append(d.buf, d.buf[0])
	default:
		return nil, errors.Wrapf(ErrCorrupt, "code %d, next code %d", code, next)
	}

	d.dict.add(d.prev, d.buf[0])
	d.prev = uint32(code)
	d.width.update(uint64(d.dict.next()) + 1)
	return d.buf, nil
}

// Decode reads codes from src until it returns io.EOF, and writes the
// decompressed bytes to dst.
func Decode(dst io.Writer, src BitSource) error {
	var d decoder
	d.reset()

	for {
		code, err := src.ReadBits(d.width.bits)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.WithStack(err)
		}
		s, err := d.decode(code)
		if err != nil {
			return err
		}
		if _, err := dst.Write(s); err != nil {
			return errors.WithStack(err)
		}
	}
}

// Decompress decodes a packed LZW stream produced by Compress or Writer.
func Decompress(src []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := Decode(buf, NewBitReader(bytes.NewReader(src))); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// A Reader decompresses a packed LZW stream read from an underlying
// io.Reader.
type Reader struct {
	src     *BitReader
	dec     decoder
	pending []byte
	err     error
}

// NewReader returns a Reader that decompresses the data from r.
func NewReader(r io.Reader) *Reader {
	z := new(Reader)
	z.Reset(r)
	return z
}

// Reset discards the Reader's state and makes it read a new stream from r.
func (z *Reader) Reset(r io.Reader) {
	z.src = NewBitReader(r)
	z.dec.reset()
	z.pending = nil
	z.err = nil
}

func (z *Reader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	for len(z.pending) == 0 {
		if z.err != nil {
			return 0, z.err
		}
		code, err := z.src.ReadBits(z.dec.width.bits)
		if err != nil {
			if err != io.EOF {
				err = errors.WithStack(err)
			}
			z.err = err
			continue
		}
		z.pending, z.err = z.dec.decode(code)
	}

	n = copy(p, z.pending)
	z.pending = z.pending[n:]
	return n, nil
}

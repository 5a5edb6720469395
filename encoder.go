package lzw

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// encoder holds the state of one encoding pass.
type encoder struct {
	dict  encodeTable
	width codeWidth

	// match is the code of the longest string matched so far. It is only
	// meaningful when matching is true.
	match    uint32
	matching bool
}

func (e *encoder) reset() {
	e.dict.reset()
	e.width.reset()
	e.match = 0
	e.matching = false
}

// push adds c to the current match. If the extended match is not in the
// dictionary, push returns the code of the current match, which must be
// written at the returned width, and starts a new match with c.
func (e *encoder) push(c byte) (code uint32, width uint8, emit bool) {
	if !e.matching {
		e.match = uint32(c)
		e.matching = true
		return 0, 0, false
	}
	if next, ok := e.dict.lookup(e.match, c); ok {
		e.match = next
		return 0, 0, false
	}

	code, width = e.match, e.width.bits
	e.dict.add(e.match, c)
	e.width.update(uint64(e.dict.next))
	e.match = uint32(c)
	return code, width, true
}

// finish returns the code for whatever is left in the current match, if
// anything.
func (e *encoder) finish() (code uint32, width uint8, emit bool) {
	if !e.matching {
		return 0, 0, false
	}
	e.matching = false
	return e.match, e.width.bits, true
}

// Encode compresses the bytes from src until io.EOF, writes the codes to dst,
// and flushes dst.
func Encode(dst BitSink, src io.ByteReader) error {
	var e encoder
	e.reset()

	for {
		c, err := src.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.WithStack(err)
		}
		if code, width, ok := e.push(c); ok {
			if err := dst.WriteBits(uint64(code), width); err != nil {
				return errors.WithStack(err)
			}
		}
	}

	if code, width, ok := e.finish(); ok {
		if err := dst.WriteBits(uint64(code), width); err != nil {
			return errors.WithStack(err)
		}
	}
	return errors.WithStack(dst.Flush())
}

// Compress returns the packed LZW encoding of src.
func Compress(src []byte) []byte {
	buf := new(bytes.Buffer)
	if err := Encode(NewBitWriter(buf), bytes.NewReader(src)); err != nil {
		// Writes to a bytes.Buffer don't fail.
		panic(err)
	}
	return buf.Bytes()
}

var errWriterClosed = errors.New("lzw: write to closed Writer")

// A Writer compresses the data written to it and writes the packed codes to
// Dest. The last codes are not written until Close is called.
type Writer struct {
	Dest io.Writer

	bits    *BitWriter
	enc     encoder
	started bool
	err     error
}

// NewWriter returns a Writer that writes its output to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{Dest: w}
}

func (w *Writer) init() {
	w.bits = NewBitWriter(w.Dest)
	w.enc.reset()
	w.started = true
}

func (w *Writer) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	if !w.started {
		w.init()
	}

	for i, c := range p {
		code, width, ok := w.enc.push(c)
		if !ok {
			continue
		}
		if err := w.bits.WriteBits(uint64(code), width); err != nil {
			w.err = errors.WithStack(err)
			return i, w.err
		}
	}
	return len(p), nil
}

// Close writes the code for the final match and flushes the remaining bits.
// It does not close Dest.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	if !w.started {
		w.init()
	}

	if code, width, ok := w.enc.finish(); ok {
		if err := w.bits.WriteBits(uint64(code), width); err != nil {
			w.err = errors.WithStack(err)
			return w.err
		}
	}
	if err := w.bits.Flush(); err != nil {
		w.err = errors.WithStack(err)
		return w.err
	}
	w.err = errWriterClosed
	return nil
}

// Reset discards the Writer's state and prepares it to write a new stream
// to dst.
func (w *Writer) Reset(dst io.Writer) {
	w.Dest = dst
	w.bits = nil
	w.started = false
	w.err = nil
}

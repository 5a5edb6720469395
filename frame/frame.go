// Package frame wraps LZW streams in a small container that records their
// length and a checksum of the uncompressed data.
//
// A frame is laid out as follows (integers are little-endian):
//
//	magic        4 bytes, "LZW\x89"
//	raw length   uvarint, number of uncompressed bytes
//	packed size  uvarint, number of bytes in the LZW stream
//	stream       the packed LZW codes
//	checksum     4 bytes, xxHash32 (seed 0) of the uncompressed data
package frame

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"hash"
	"io"

	"github.com/andybalholm/lzw"
	"github.com/op/go-logging"
	"github.com/pierrec/xxHash/xxHash32"
	"github.com/pkg/errors"
)

var log = logging.MustGetLogger("lzw/frame")

var magic = []byte("LZW\x89")

var (
	ErrMagic    = errors.New("frame: bad magic number")
	ErrLength   = errors.New("frame: uncompressed length doesn't match header")
	ErrChecksum = errors.New("frame: checksum mismatch")
)

// A Writer compresses data into a single frame. Since the header holds the
// size of the packed stream, nothing is written to Dest until Close.
type Writer struct {
	Dest io.Writer

	packed bytes.Buffer
	lzw    *lzw.Writer
	hasher hash.Hash32
	length uint64
	err    error
}

// NewWriter returns a Writer that writes a frame to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{Dest: w}
}

func (w *Writer) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	if w.lzw == nil {
		w.lzw = lzw.NewWriter(&w.packed)
		w.hasher = xxHash32.New(0)
	}
	n, err = w.lzw.Write(p)
	w.hasher.Write(p[:n])
	w.length += uint64(n)
	if err != nil {
		w.err = err
	}
	return n, err
}

// Close finishes the LZW stream and writes the whole frame to Dest.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	if w.lzw == nil {
		w.lzw = lzw.NewWriter(&w.packed)
		w.hasher = xxHash32.New(0)
	}
	if err := w.lzw.Close(); err != nil {
		w.err = err
		return err
	}

	header := append([]byte(nil), magic...)
	header = binary.AppendUvarint(header, w.length)
	header = binary.AppendUvarint(header, uint64(w.packed.Len()))
	w.packed.Write(binary.LittleEndian.AppendUint32(nil, w.hasher.Sum32()))

	if _, err := w.Dest.Write(header); err != nil {
		w.err = errors.WithStack(err)
		return w.err
	}
	if _, err := w.packed.WriteTo(w.Dest); err != nil {
		w.err = errors.WithStack(err)
		return w.err
	}
	w.err = errors.New("frame: write to closed Writer")
	return nil
}

// Reset discards the Writer's state and prepares it to write a new frame to
// dst.
func (w *Writer) Reset(dst io.Writer) {
	w.Dest = dst
	w.packed.Reset()
	w.lzw = nil
	w.hasher = nil
	w.length = 0
	w.err = nil
}

// A Reader decompresses a single frame, checking its length and checksum.
type Reader struct {
	src    *bufio.Reader
	body   *lzw.Reader
	hasher hash.Hash32
	want   uint64
	length uint64
	err    error
}

// NewReader returns a Reader that reads a frame from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{src: bufio.NewReader(r)}
}

func (r *Reader) readHeader() error {
	var m [4]byte
	if _, err := io.ReadFull(r.src, m[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrMagic
		}
		return errors.WithStack(err)
	}
	if !bytes.Equal(m[:], magic) {
		return ErrMagic
	}

	want, err := binary.ReadUvarint(r.src)
	if err != nil {
		return errors.Wrap(err, "frame: reading uncompressed length")
	}
	packed, err := binary.ReadUvarint(r.src)
	if err != nil {
		return errors.Wrap(err, "frame: reading packed size")
	}

	r.want = want
	r.body = lzw.NewReader(io.LimitReader(r.src, int64(packed)))
	r.hasher = xxHash32.New(0)
	return nil
}

func (r *Reader) Read(p []byte) (n int, err error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.body == nil {
		if err := r.readHeader(); err != nil {
			r.err = err
			return 0, err
		}
	}

	n, err = r.body.Read(p)
	r.hasher.Write(p[:n])
	r.length += uint64(n)
	if r.length > r.want {
		log.Warningf("frame is longer than its header says (%d bytes)", r.want)
		r.err = ErrLength
		return n, r.err
	}
	if err == io.EOF {
		err = r.finish()
	}
	if err != nil {
		r.err = err
	}
	return n, err
}

// finish checks the length and checksum at the end of the LZW stream.
func (r *Reader) finish() error {
	if r.length != r.want {
		log.Warningf("frame has %d bytes, header says %d", r.length, r.want)
		return ErrLength
	}
	var sum [4]byte
	if _, err := io.ReadFull(r.src, sum[:]); err != nil {
		return errors.Wrap(err, "frame: reading checksum")
	}
	if got, want := r.hasher.Sum32(), binary.LittleEndian.Uint32(sum[:]); got != want {
		log.Warningf("checksum mismatch: got %08x, want %08x", got, want)
		return ErrChecksum
	}
	return io.EOF
}

// Encode returns src compressed into a frame.
func Encode(src []byte) []byte {
	b := new(bytes.Buffer)
	w := NewWriter(b)
	w.Write(src)
	if err := w.Close(); err != nil {
		panic(err)
	}
	return b.Bytes()
}

// Decode decompresses a frame.
func Decode(src []byte) ([]byte, error) {
	return io.ReadAll(NewReader(bytes.NewReader(src)))
}

// Package compare measures how LZW compression does against other formats on
// the same data.
package compare

import (
	"bytes"
	stdlzw "compress/lzw"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/andybalholm/lzw"
	"github.com/andybalholm/lzw/frame"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/op/go-logging"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

var log = logging.MustGetLogger("lzw/compare")

// ErrMismatch is returned by Measure when a codec doesn't reproduce its input.
var ErrMismatch = errors.New("compare: decompressed output doesn't match")

// A Codec is a compression format under comparison.
type Codec struct {
	Name       string
	Compress   func(src []byte) ([]byte, error)
	Decompress func(src []byte) ([]byte, error)
}

// A Result is the outcome of compressing one input with one Codec.
type Result struct {
	Name       string
	RawSize    int
	PackedSize int
}

// Ratio returns the compression ratio (uncompressed size / compressed size).
func (r Result) Ratio() float64 {
	if r.PackedSize == 0 {
		return 0
	}
	return float64(r.RawSize) / float64(r.PackedSize)
}

// Measure compresses data with each codec, checks that it decompresses back
// to data, and reports the sizes.
func Measure(data []byte, codecs ...Codec) ([]Result, error) {
	results := make([]Result, 0, len(codecs))
	for _, c := range codecs {
		packed, err := c.Compress(data)
		if err != nil {
			return results, errors.Wrapf(err, "compare: %s compress", c.Name)
		}
		unpacked, err := c.Decompress(packed)
		if err != nil {
			return results, errors.Wrapf(err, "compare: %s decompress", c.Name)
		}
		if !bytes.Equal(unpacked, data) {
			return results, errors.Wrap(ErrMismatch, c.Name)
		}

		r := Result{Name: c.Name, RawSize: len(data), PackedSize: len(packed)}
		log.Debugf("%s: %d -> %d bytes (ratio %.3f)", r.Name, r.RawSize, r.PackedSize, r.Ratio())
		results = append(results, r)
	}
	return results, nil
}

// All returns every available codec.
func All() []Codec {
	return []Codec{LZW(), Frame(), StdLZW(), Snappy(), Zstd(), Gzip(), Brotli(), LZ4()}
}

// LZW is the variable-width LZW codec from this module.
func LZW() Codec {
	return Codec{
		Name: "lzw",
		Compress: func(src []byte) ([]byte, error) {
			return lzw.Compress(src), nil
		},
		Decompress: lzw.Decompress,
	}
}

// Frame is the LZW codec with frame headers and checksums.
func Frame() Codec {
	return Codec{
		Name: "lzw-frame",
		Compress: func(src []byte) ([]byte, error) {
			return frame.Encode(src), nil
		},
		Decompress: frame.Decode,
	}
}

// StdLZW is the GIF-style LZW from the standard library, with codes of at
// most 12 bits.
func StdLZW() Codec {
	return Codec{
		Name: "compress/lzw",
		Compress: func(src []byte) ([]byte, error) {
			return compressStream(src, func(w io.Writer) (io.WriteCloser, error) {
				return stdlzw.NewWriter(w, stdlzw.MSB, 8), nil
			})
		},
		Decompress: func(src []byte) ([]byte, error) {
			r := stdlzw.NewReader(bytes.NewReader(src), stdlzw.MSB, 8)
			defer r.Close()
			return io.ReadAll(r)
		},
	}
}

func Snappy() Codec {
	return Codec{
		Name: "snappy",
		Compress: func(src []byte) ([]byte, error) {
			return snappy.Encode(nil, src), nil
		},
		Decompress: func(src []byte) ([]byte, error) {
			return snappy.Decode(nil, src)
		},
	}
}

func Zstd() Codec {
	return Codec{
		Name: "zstd",
		Compress: func(src []byte) ([]byte, error) {
			enc, err := zstd.NewWriter(nil)
			if err != nil {
				return nil, err
			}
			defer enc.Close()
			return enc.EncodeAll(src, nil), nil
		},
		Decompress: func(src []byte) ([]byte, error) {
			dec, err := zstd.NewReader(nil)
			if err != nil {
				return nil, err
			}
			defer dec.Close()
			return dec.DecodeAll(src, nil)
		},
	}
}

func Gzip() Codec {
	return Codec{
		Name: "gzip",
		Compress: func(src []byte) ([]byte, error) {
			return compressStream(src, func(w io.Writer) (io.WriteCloser, error) {
				return gzip.NewWriterLevel(w, gzip.DefaultCompression)
			})
		},
		Decompress: func(src []byte) ([]byte, error) {
			r, err := gzip.NewReader(bytes.NewReader(src))
			if err != nil {
				return nil, err
			}
			defer r.Close()
			return io.ReadAll(r)
		},
	}
}

func Brotli() Codec {
	return Codec{
		Name: "brotli",
		Compress: func(src []byte) ([]byte, error) {
			return compressStream(src, func(w io.Writer) (io.WriteCloser, error) {
				return brotli.NewWriterLevel(w, brotli.DefaultCompression), nil
			})
		},
		Decompress: func(src []byte) ([]byte, error) {
			return io.ReadAll(brotli.NewReader(bytes.NewReader(src)))
		},
	}
}

func LZ4() Codec {
	return Codec{
		Name: "lz4",
		Compress: func(src []byte) ([]byte, error) {
			return compressStream(src, func(w io.Writer) (io.WriteCloser, error) {
				return lz4.NewWriter(w), nil
			})
		},
		Decompress: func(src []byte) ([]byte, error) {
			return io.ReadAll(lz4.NewReader(bytes.NewReader(src)))
		},
	}
}

func compressStream(src []byte, newWriter func(io.Writer) (io.WriteCloser, error)) ([]byte, error) {
	b := new(bytes.Buffer)
	w, err := newWriter(b)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

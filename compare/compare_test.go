package compare

import (
	"testing"

	"github.com/andybalholm/lzw/internal/corpus"
	"github.com/pkg/errors"
)

func TestMeasure(t *testing.T) {
	data := corpus.Text(1 << 16)
	results, err := Measure(data, All()...)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(All()) {
		t.Fatalf("got %d results, want %d", len(results), len(All()))
	}
	for _, r := range results {
		if r.RawSize != len(data) {
			t.Errorf("%s: raw size %d, want %d", r.Name, r.RawSize, len(data))
		}
		if r.Ratio() <= 1 {
			t.Errorf("%s: ratio %.3f on text", r.Name, r.Ratio())
		}
	}

	// The frame adds a fixed-size header and checksum to the same stream.
	if lzw, framed := results[0], results[1]; framed.PackedSize <= lzw.PackedSize || framed.PackedSize > lzw.PackedSize+4+10+10+4 {
		t.Errorf("lzw %d bytes, lzw-frame %d bytes", lzw.PackedSize, framed.PackedSize)
	}
}

func TestMeasureEmpty(t *testing.T) {
	if _, err := Measure(nil, All()...); err != nil {
		t.Fatal(err)
	}
}

func TestMeasureMismatch(t *testing.T) {
	broken := Codec{
		Name:       "broken",
		Compress:   func(src []byte) ([]byte, error) { return src, nil },
		Decompress: func(src []byte) ([]byte, error) { return src[1:], nil },
	}
	_, err := Measure([]byte("hello"), LZW(), broken)
	if errors.Cause(err) != ErrMismatch {
		t.Fatalf("got error %v, want ErrMismatch", err)
	}
}

func benchmark(b *testing.B, c Codec) {
	b.StopTimer()
	b.ReportAllocs()
	data := corpus.Text(1 << 20)
	b.SetBytes(int64(len(data)))
	results, err := Measure(data, c)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportMetric(results[0].Ratio(), "ratio")
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Compress(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLZW(b *testing.B)    { benchmark(b, LZW()) }
func BenchmarkStdLZW(b *testing.B) { benchmark(b, StdLZW()) }
func BenchmarkSnappy(b *testing.B) { benchmark(b, Snappy()) }
func BenchmarkZstd(b *testing.B)   { benchmark(b, Zstd()) }
func BenchmarkGzip(b *testing.B)   { benchmark(b, Gzip()) }
func BenchmarkBrotli(b *testing.B) { benchmark(b, Brotli()) }
func BenchmarkLZ4(b *testing.B)    { benchmark(b, LZ4()) }

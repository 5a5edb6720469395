package lzw

import (
	"bytes"
	"io"
	"testing"
	"testing/iotest"

	"github.com/andybalholm/lzw/internal/corpus"
	"github.com/pkg/errors"
)

func TestWriter(t *testing.T) {
	data := corpus.Text(100000)
	b := new(bytes.Buffer)
	w := NewWriter(b)
	// Feed the data in uneven pieces, so that matches span Write calls.
	for pos, size := 0, 1; pos < len(data); size = size*3%1021 + 1 {
		end := pos + size
		if end > len(data) {
			end = len(data)
		}
		if _, err := w.Write(data[pos:end]); err != nil {
			t.Fatal(err)
		}
		pos = end
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(b.Bytes(), Compress(data)) {
		t.Fatal("Writer output doesn't match Compress")
	}
	if _, err := w.Write([]byte("more")); err == nil {
		t.Fatal("Write after Close succeeded")
	}

	w.Reset(io.Discard)
	if _, err := w.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestWriterEmpty(t *testing.T) {
	b := new(bytes.Buffer)
	w := NewWriter(b)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 0 {
		t.Fatalf("empty stream produced %x", b.Bytes())
	}
}

func TestReader(t *testing.T) {
	data := corpus.Text(100000)
	compressed := Compress(data)

	decompressed, err := io.ReadAll(NewReader(bytes.NewReader(compressed)))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decompressed, data) {
		t.Fatal("decompressed output doesn't match")
	}

	// One byte at a time, from a source that returns one byte at a time.
	r := NewReader(iotest.OneByteReader(bytes.NewReader(compressed)))
	decompressed, err = io.ReadAll(iotest.OneByteReader(r))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decompressed, data) {
		t.Fatal("decompressed output doesn't match (one byte at a time)")
	}

	r.Reset(bytes.NewReader(Compress([]byte("AAAA"))))
	decompressed, err = io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(decompressed) != "AAAA" {
		t.Fatalf("after Reset: got %q, want %q", decompressed, "AAAA")
	}
}

func TestReaderCorrupt(t *testing.T) {
	b := new(bytes.Buffer)
	bw := NewBitWriter(b)
	bw.WriteBits('A', 9)
	bw.WriteBits(400, 9)
	if err := bw.Flush(); err != nil {
		t.Fatal(err)
	}

	_, err := io.ReadAll(NewReader(b))
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("got error %v, want ErrCorrupt", err)
	}
}

func TestBitWriterReader(t *testing.T) {
	b := new(bytes.Buffer)
	bw := NewBitWriter(b)
	codes := []Code{{1, 9}, {511, 9}, {512, 10}, {0, 11}, {0x1234, 13}}
	for _, c := range codes {
		if err := bw.WriteBits(c.Value, c.Width); err != nil {
			t.Fatal(err)
		}
	}
	if err := bw.Flush(); err != nil {
		t.Fatal(err)
	}
	// 9+9+10+11+13 = 52 bits, padded to 7 bytes.
	if b.Len() != 7 {
		t.Fatalf("packed into %d bytes, want 7", b.Len())
	}

	br := NewBitReader(b)
	for _, c := range codes {
		v, err := br.ReadBits(c.Width)
		if err != nil {
			t.Fatal(err)
		}
		if v != c.Value {
			t.Fatalf("got %d, want %d", v, c.Value)
		}
	}
	if _, err := br.ReadBits(9); err != io.EOF {
		t.Fatalf("got error %v at end of stream, want io.EOF", err)
	}
}

// Package lzw implements Lempel-Ziv-Welch compression with variable-width
// codes.
//
// Codes start out 9 bits wide. Every time the dictionary fills the index space
// of the current width, the width grows by one bit. The width is never
// written to the stream: the encoder and the decoder both derive it from the
// number of dictionary entries they have built, so a stream can only be
// decoded by this exact algorithm. There is no header, no clear code and no
// end-of-data code; the stream ends when the packed bits run out.
//
// The packing of codes into bytes is done by a BitSink (when encoding) and a
// BitSource (when decoding). BitWriter and BitReader pack codes most
// significant bit first, padding the last byte with zeros.
package lzw

import (
	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

// enable debug logging of width changes
const debug = false

const (
	// alphabetSize is the number of bootstrap entries: one for each byte value.
	alphabetSize = 256

	// firstCode is the first code assigned to a multi-byte string.
	firstCode = alphabetSize

	// minWidth is the width of the first codes in a stream.
	minWidth = 9
)

var log = logging.MustGetLogger("lzw")

// ErrCorrupt is returned (wrapped) when a stream contains a code that is
// neither in the dictionary nor the next code to be defined.
var ErrCorrupt = errors.New("lzw: invalid code in stream")

// A BitSink receives the codes produced by the encoder.
type BitSink interface {
	// WriteBits writes the low width bits of value.
	WriteBits(value uint64, width uint8) error

	// Flush writes out any buffered bits, padding the final partial byte.
	Flush() error
}

// A BitSource supplies codes to the decoder.
type BitSource interface {
	// ReadBits reads a width-bit code. It returns io.EOF when there are
	// fewer than width bits left.
	ReadBits(width uint8) (uint64, error)
}

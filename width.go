package lzw

// codeWidth tracks how many bits each code takes.
//
// The width depends only on how many codes the encoder has assigned. The
// encoder calls update with its next code right after each insertion. The
// decoder's table is always one entry behind the encoder's when it reads a
// code (it can only add an entry once it has seen the code that follows it),
// so it calls update with its next code plus one.
type codeWidth struct {
	bits     uint8
	capacity uint64
}

func (w *codeWidth) reset() {
	w.bits = minWidth
	w.capacity = 1 << minWidth
}

// update grows the width by one bit when next reaches the capacity of the
// current width. next must increase by one between calls.
func (w *codeWidth) update(next uint64) {
	if next != w.capacity {
		return
	}
	w.bits++
	w.capacity <<= 1
	if debug {
		log.Debugf("code width %d -> %d at code %d", w.bits-1, w.bits, next)
	}
}

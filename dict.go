package lzw

// Both dictionaries start out with the bootstrap entries: code b is the
// single-byte string {b}, for every byte value b. Every other entry is an
// existing entry extended by one byte, and entries are numbered in the order
// they are added, starting at firstCode.

// An encodeTable maps strings to codes. Multi-byte strings are indexed by the
// code of their prefix and their last byte; single-byte strings are implicit.
type encodeTable struct {
	codes map[uint64]uint32
	next  uint32
}

func tableKey(prefix uint32, c byte) uint64 {
	return uint64(prefix)<<8 | uint64(c)
}

func (t *encodeTable) reset() {
	t.codes = make(map[uint64]uint32)
	t.next = firstCode
}

// lookup returns the code for the string with code prefix followed by c.
func (t *encodeTable) lookup(prefix uint32, c byte) (code uint32, ok bool) {
	code, ok = t.codes[tableKey(prefix, c)]
	return code, ok
}

// add assigns the next code to the string with code prefix followed by c.
func (t *encodeTable) add(prefix uint32, c byte) uint32 {
	code := t.next
	t.codes[tableKey(prefix, c)] = code
	t.next++
	return code
}

// code returns the code for s, if s is in the table.
func (t *encodeTable) code(s []byte) (code uint32, ok bool) {
	if len(s) == 0 {
		return 0, false
	}
	code = uint32(s[0])
	for _, c := range s[1:] {
		code, ok = t.lookup(code, c)
		if !ok {
			return 0, false
		}
	}
	return code, true
}

type decodeEntry struct {
	prefix uint32
	length uint32
	last   byte
}

// A decodeTable maps codes to strings. The entries are kept in a slice indexed
// by code, and each string is rebuilt by following its chain of prefixes.
type decodeTable struct {
	entries []decodeEntry
}

func (t *decodeTable) reset() {
	if cap(t.entries) < 1<<12 {
		t.entries = make([]decodeEntry, 0, 1<<12)
	}
	t.entries = t.entries[:0]
	for i := 0; i < alphabetSize; i++ {
		t.entries = append(t.entries, decodeEntry{length: 1, last: byte(i)})
	}
}

// next returns the code that the next call to add will assign.
func (t *decodeTable) next() uint32 {
	return uint32(len(t.entries))
}

// add assigns the next code to the string with code prefix followed by c.
func (t *decodeTable) add(prefix uint32, c byte) uint32 {
	code := t.next()
	t.entries = append(t.entries, decodeEntry{
		prefix: prefix,
		length: t.entries[prefix].length + 1,
		last:   c,
	})
	return code
}

// appendString appends the string for code to dst. The code must be in the
// table.
func (t *decodeTable) appendString(dst []byte, code uint32) []byte {
	e := t.entries[code]
	n := int(e.length)
	start := len(dst)
	if cap(dst)-start < n {
		grown := make([]byte, start, 2*cap(dst)+n)
		copy(grown, dst)
		dst = grown
	}
	dst = dst[:start+n]
	for i := start + n - 1; ; i-- {
		dst[i] = e.last
		if i == start {
			break
		}
		e = t.entries[e.prefix]
	}
	return dst
}

// Package corpus generates deterministic inputs for tests and benchmarks.
package corpus

import (
	"math/rand"
)

var words = []string{
	"light", "rays", "refraction", "of", "the", "and", "colours", "prism",
	"which", "is", "are", "in", "by", "reflexion", "glass", "sun", "white",
	"red", "violet", "experiment", "theorem", "that", "when", "body",
	"medium", "angle", "incidence", "equal", "to", "image", "lens", "eye",
}

// Text returns n bytes of English-like prose built from a fixed vocabulary.
func Text(n int) []byte {
	r := rand.New(rand.NewSource(1704))
	out := make([]byte, 0, n+16)
	sentence := 0
	for len(out) < n {
		w := words[r.Intn(len(words))]
		if sentence == 0 {
			out = append(out, w[0]-'a'+'A')
			out = append(out, w[1:]...)
		} else {
			out = append(out, ' ')
			out = append(out, w...)
		}
		sentence++
		if sentence > 6 && r.Intn(5) == 0 {
			out = append(out, ".\n"...)
			sentence = 0
		}
	}
	return out[:n]
}

// Random returns n pseudo-random bytes determined by seed.
func Random(n int, seed int64) []byte {
	r := rand.New(rand.NewSource(seed))
	out := make([]byte, n)
	r.Read(out)
	return out
}

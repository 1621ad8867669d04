// Package token provides random token generation for id entries.
package token

import "math/rand/v2"

// alphabet is the 62-symbol set tokens are drawn from. Every character is a
// valid id/for/name attribute character, so tokens can be concatenated onto
// any prefix without escaping.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Generate returns a random token of length n, each character drawn
// uniformly and independently from the alphanumeric alphabet.
//
// There is no uniqueness guarantee beyond the statistical improbability of a
// collision within one page's worth of entries.
func Generate(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}

// Seeded returns a generator producing a deterministic token sequence for
// the given seed. Useful for reproducible output and for pinning tokens in
// tests.
//
// The returned generator is not safe for concurrent use; callers serialize
// access themselves.
func Seeded(seed uint64) func(n int) string {
	r := rand.New(rand.NewPCG(seed, seed))
	return func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = alphabet[r.IntN(len(alphabet))]
		}
		return string(b)
	}
}

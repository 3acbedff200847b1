package parallel

import "crypto/sha256"

// Hasher collects one result per index from concurrent goroutines and sums
// them in index order. Each index may be written once.
type Hasher struct {
	data []byte
}

// NewHasher creates a hasher for n results
func NewHasher(n int) *Hasher {
	return &Hasher{data: make([]byte, n)}
}

// MustPutBool stores the n-th result, panics when it was already stored
func (h *Hasher) MustPutBool(n int, value bool) {
	if h.data[n] != 0 {
		panic("bool write preexisting data")
	}
	if value {
		h.data[n] = 2
	} else {
		h.data[n] = 1
	}
}

// Sum returns the sha256 of all results. Missing results hash as their own value.
func (h *Hasher) Sum() [32]byte {
	return sha256.Sum256(h.data)
}

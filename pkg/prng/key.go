package prng

import (
	"fmt"
	"math/rand/v2"
)

const golden = 0x9e3779b97f4a7c15

// Key is an immutable splittable seed.
type Key struct {
	hi, lo uint64
}

// NewKey derives a root key from an integer seed.
func NewKey(seed int64) Key {
	s := uint64(seed)
	return Key{hi: mix(s), lo: mix(s ^ golden)}
}

// Fold derives the i-th child of k. Distinct indices yield independent keys.
func (k Key) Fold(i uint64) Key {
	n := i + 1
	return Key{
		hi: mix(k.hi ^ mix(n)),
		lo: mix(k.lo + golden*n),
	}
}

// Split derives n independent children of k.
func (k Key) Split(n int) []Key {
	if n <= 0 {
		return nil
	}
	keys := make([]Key, n)
	for i := range keys {
		keys[i] = k.Fold(uint64(i))
	}
	return keys
}

// Rand returns a generator seeded from k.
func (k Key) Rand() *rand.Rand {
	return rand.New(rand.NewPCG(k.hi, k.lo))
}

// Uint64 collapses the key into a single word.
func (k Key) Uint64() uint64 {
	return mix(k.hi ^ k.lo)
}

func (k Key) String() string {
	return fmt.Sprintf("Key(%016x%016x)", k.hi, k.lo)
}

// mix is the splitmix64 finalizer.
func mix(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

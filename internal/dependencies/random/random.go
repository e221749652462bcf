package random

import (
	"crypto/rand"
	"encoding/binary"
)

// Random provides random number generation that can be mocked for testing
type Random interface {
	// Uint32 returns a random 32-bit value
	Uint32() uint32
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Uint32 returns a cryptographically random 32-bit value
func (r *CryptoRandom) Uint32() uint32 {
	var b [4]byte
	// crypto/rand.Read is documented to never fail
	_, _ = rand.Read(b[:])
	return binary.LittleEndian.Uint32(b[:])
}

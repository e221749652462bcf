package mocks

import (
	"github.com/conquergate/conquergate/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// Uint32Results is a queue of results to return from Uint32
	Uint32Results []uint32
	uint32Index   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Uint32 returns the next queued result, or 0 if none remaining
func (r *MockRandom) Uint32() uint32 {
	if r.uint32Index >= len(r.Uint32Results) {
		return 0
	}
	result := r.Uint32Results[r.uint32Index]
	r.uint32Index++
	return result
}

// QueueUint32 adds values to the Uint32 result queue
func (r *MockRandom) QueueUint32(values ...uint32) {
	r.Uint32Results = append(r.Uint32Results, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.Uint32Results = nil
	r.uint32Index = 0
}

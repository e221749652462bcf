package promise

import (
	"sync"
	"time"

	"github.com/conquergate/conquergate/internal/dependencies/clock"
	"github.com/conquergate/conquergate/internal/dependencies/random"
	"github.com/conquergate/conquergate/internal/model"
)

// Store issues and redeems the short-lived identity/token pairs that hand
// a client off from the auth gateway to the session gateway. It is the one
// piece of state shared between the two listeners, so every operation is
// atomic per identity.
type Store struct {
	clock  clock.Clock
	random random.Random
	ttl    time.Duration

	mu      sync.Mutex
	pending map[uint64]model.Promise
}

// Config holds configuration for the promise store
type Config struct {
	// TTL is how long an issued promise stays redeemable
	TTL time.Duration
}

// DefaultConfig returns default promise store configuration
func DefaultConfig() Config {
	return Config{
		TTL: 30 * time.Second,
	}
}

// NewStore creates a new promise store
func NewStore(clk clock.Clock, rnd random.Random, cfg Config) *Store {
	if cfg.TTL == 0 {
		cfg.TTL = DefaultConfig().TTL
	}
	return &Store{
		clock:   clk,
		random:  rnd,
		ttl:     cfg.TTL,
		pending: make(map[uint64]model.Promise),
	}
}

// Issue creates a fresh promise for the identity, replacing any prior
// pending promise. At most one promise is outstanding per identity.
func (s *Store) Issue(identity uint64, hasCharacter bool) model.Promise {
	token := s.random.Uint32()
	for token == 0 {
		token = s.random.Uint32()
	}

	p := model.Promise{
		Identity:     identity,
		Token:        token,
		HasCharacter: hasCharacter,
		IssuedAt:     s.clock.Now(),
	}

	s.mu.Lock()
	s.pending[identity] = p
	s.mu.Unlock()

	return p
}

// Redeem consumes the pending promise for the identity. It fails with
// ErrPromiseNotFound if no promise is pending, the token does not match,
// or the promise has expired. A redeemed promise is deleted, so of two
// concurrent redeems for the same identity exactly one succeeds.
func (s *Store) Redeem(identity uint64, token uint32) (model.Promise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[identity]
	if !ok || p.Token != token {
		return model.Promise{}, model.ErrPromiseNotFound
	}
	if s.clock.Now().Sub(p.IssuedAt) > s.ttl {
		delete(s.pending, identity)
		return model.Promise{}, model.ErrPromiseNotFound
	}

	delete(s.pending, identity)
	return p, nil
}

// Pending returns the number of unredeemed promises (informational)
func (s *Store) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

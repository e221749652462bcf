package promise

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/conquergate/conquergate/internal/dependencies/mocks"
	"github.com/conquergate/conquergate/internal/dependencies/random"
	"github.com/conquergate/conquergate/internal/model"
)

type StoreSuite struct {
	suite.Suite
	clock  *mocks.MockClock
	random *mocks.MockRandom
	store  *Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.store = NewStore(s.clock, s.random, DefaultConfig())
}

func (s *StoreSuite) TestIssueAndRedeem() {
	s.random.QueueUint32(0xdeadbeef)

	p := s.store.Issue(1000000, true)
	s.Equal(uint64(1000000), p.Identity)
	s.Equal(uint32(0xdeadbeef), p.Token)
	s.True(p.HasCharacter)

	redeemed, err := s.store.Redeem(1000000, 0xdeadbeef)
	s.Require().NoError(err)
	s.Equal(p, redeemed)
}

func (s *StoreSuite) TestRedeemWrongTokenFails() {
	s.random.QueueUint32(0xdeadbeef)
	s.store.Issue(1000000, true)

	_, err := s.store.Redeem(1000000, 0xcafebabe)
	s.ErrorIs(err, model.ErrPromiseNotFound)

	// The mismatch must not consume the promise
	_, err = s.store.Redeem(1000000, 0xdeadbeef)
	s.Require().NoError(err)
}

func (s *StoreSuite) TestRedeemUnknownIdentityFails() {
	_, err := s.store.Redeem(42, 0xdeadbeef)
	s.ErrorIs(err, model.ErrPromiseNotFound)
}

func (s *StoreSuite) TestRedeemIsSingleUse() {
	s.random.QueueUint32(0xdeadbeef)
	s.store.Issue(1000000, true)

	_, err := s.store.Redeem(1000000, 0xdeadbeef)
	s.Require().NoError(err)

	_, err = s.store.Redeem(1000000, 0xdeadbeef)
	s.ErrorIs(err, model.ErrPromiseNotFound)
}

func (s *StoreSuite) TestIssueOverwritesPriorPromise() {
	s.random.QueueUint32(0x11111111, 0x22222222)

	s.store.Issue(1000000, false)
	s.store.Issue(1000000, true)
	s.Equal(1, s.store.Pending())

	_, err := s.store.Redeem(1000000, 0x11111111)
	s.ErrorIs(err, model.ErrPromiseNotFound)

	p, err := s.store.Redeem(1000000, 0x22222222)
	s.Require().NoError(err)
	s.True(p.HasCharacter)
}

func (s *StoreSuite) TestExpiredPromiseFails() {
	s.random.QueueUint32(0xdeadbeef)
	s.store.Issue(1000000, true)

	s.clock.Advance(DefaultConfig().TTL + time.Second)

	_, err := s.store.Redeem(1000000, 0xdeadbeef)
	s.ErrorIs(err, model.ErrPromiseNotFound)
	s.Equal(0, s.store.Pending())
}

func (s *StoreSuite) TestTokenIsNeverZero() {
	s.random.QueueUint32(0, 0, 0x33333333)

	p := s.store.Issue(1000000, false)
	s.Equal(uint32(0x33333333), p.Token)
}

// TestConcurrentRedeemSucceedsExactlyOnce exercises the per-identity
// atomicity contract: of N racing redeems with the correct token, exactly
// one wins.
func TestConcurrentRedeemSucceedsExactlyOnce(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	store := NewStore(clk, random.New(), DefaultConfig())

	const identities = 16
	const redeemers = 8

	tokens := make([]uint32, identities)
	for i := range tokens {
		tokens[i] = store.Issue(uint64(1000000+i), true).Token
	}

	successes := make([]atomic.Int32, identities)
	var wg sync.WaitGroup
	for i := 0; i < identities; i++ {
		for r := 0; r < redeemers; r++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				if _, err := store.Redeem(uint64(1000000+idx), tokens[idx]); err == nil {
					successes[idx].Add(1)
				}
			}(i)
		}
	}
	wg.Wait()

	for i := range successes {
		require.Equal(t, int32(1), successes[i].Load(), "identity %d", 1000000+i)
	}
}

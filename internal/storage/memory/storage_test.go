package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/conquergate/conquergate/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Account tests

func (s *StorageSuite) TestSaveAndGetAccount() {
	acct := &model.Account{
		Identity:     1000000,
		Name:         "alice",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now(),
	}

	err := s.storage.SaveAccount(s.ctx, acct)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetAccount(s.ctx, 1000000)
	s.Require().NoError(err)
	s.Equal(acct.Name, retrieved.Name)

	byName, err := s.storage.GetAccountByName(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(acct.Identity, byName.Identity)
}

func (s *StorageSuite) TestGetAccountNotFound() {
	_, err := s.storage.GetAccount(s.ctx, 42)
	s.ErrorIs(err, model.ErrAccountNotFound)

	_, err = s.storage.GetAccountByName(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

// Character tests

func (s *StorageSuite) TestSaveAndGetCharacter() {
	character := &model.Character{
		Identity: 1000001,
		Name:     "Stormbringer",
		Class:    10,
		Level:    1,
		Location: model.Location{MapID: 1002, X: 430, Y: 380},
	}

	err := s.storage.SaveCharacter(s.ctx, character)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetCharacter(s.ctx, 1000001)
	s.Require().NoError(err)
	s.Equal("Stormbringer", retrieved.Name)
	s.Equal(uint32(1002), retrieved.Location.MapID)

	byName, err := s.storage.GetCharacterByName(s.ctx, "Stormbringer")
	s.Require().NoError(err)
	s.Equal(character.Identity, byName.Identity)
}

func (s *StorageSuite) TestGetCharacterNotFound() {
	_, err := s.storage.GetCharacter(s.ctx, 42)
	s.ErrorIs(err, model.ErrCharacterNotFound)

	_, err = s.storage.GetCharacterByName(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrCharacterNotFound)
}

// Identity sequence tests

func (s *StorageSuite) TestNextIdentityIsMonotonic() {
	first, err := s.storage.NextIdentity(s.ctx)
	s.Require().NoError(err)

	second, err := s.storage.NextIdentity(s.ctx)
	s.Require().NoError(err)

	s.Equal(first+1, second)
	s.GreaterOrEqual(first, uint64(1000000))
}

package account

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/conquergate/conquergate/internal/dependencies/mocks"
	"github.com/conquergate/conquergate/internal/model"
	"github.com/conquergate/conquergate/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	s.service = New(s.storage, s.clock, DefaultConfig(), logger)
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterHashesPassword() {
	acct, err := s.service.Register(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)

	s.NotEmpty(acct.PasswordHash)
	s.NotEqual("hunter2", acct.PasswordHash)
	s.GreaterOrEqual(acct.Identity, uint64(1000000))
}

func (s *ServiceSuite) TestRegisterDuplicateFails() {
	_, err := s.service.Register(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)

	_, err = s.service.Register(s.ctx, "alice", "other")
	s.ErrorIs(err, model.ErrAccountExists)
}

// Authorize tests

func (s *ServiceSuite) TestAuthorizeSucceeds() {
	_, _ = s.service.Register(s.ctx, "alice", "hunter2")

	s.True(s.service.Authorize(s.ctx, "CentralPlain", "alice", "hunter2"))
}

func (s *ServiceSuite) TestAuthorizeWrongPasswordFails() {
	_, _ = s.service.Register(s.ctx, "alice", "hunter2")

	s.False(s.service.Authorize(s.ctx, "CentralPlain", "alice", "wrong"))
}

func (s *ServiceSuite) TestAuthorizeUnknownAccountFails() {
	s.False(s.service.Authorize(s.ctx, "CentralPlain", "nobody", "hunter2"))
}

func (s *ServiceSuite) TestAuthorizeUnknownServerFails() {
	_, _ = s.service.Register(s.ctx, "alice", "hunter2")

	s.False(s.service.Authorize(s.ctx, "PhoenixCastle", "alice", "hunter2"))
}

// Character tests

func (s *ServiceSuite) TestCreateCharacterPlacesAtSpawn() {
	acct, _ := s.service.Register(s.ctx, "alice", "hunter2")

	err := s.service.CreateCharacter(s.ctx, CreationDetails{
		Identity: acct.Identity,
		Name:     "Stormbringer",
		Class:    10,
	})
	s.Require().NoError(err)

	character, err := s.storage.GetCharacter(s.ctx, acct.Identity)
	s.Require().NoError(err)
	s.Equal(DefaultConfig().Spawn, character.Location)
	s.Equal(uint8(1), character.Level)
}

func (s *ServiceSuite) TestCreateCharacterNameCollisionFails() {
	alice, _ := s.service.Register(s.ctx, "alice", "hunter2")
	bob, _ := s.service.Register(s.ctx, "bob", "hunter2")

	err := s.service.CreateCharacter(s.ctx, CreationDetails{Identity: alice.Identity, Name: "Stormbringer"})
	s.Require().NoError(err)

	err = s.service.CreateCharacter(s.ctx, CreationDetails{Identity: bob.Identity, Name: "Stormbringer"})
	s.ErrorIs(err, model.ErrNameTaken)
}

func (s *ServiceSuite) TestHasCharacter() {
	acct, _ := s.service.Register(s.ctx, "alice", "hunter2")

	s.False(s.service.HasCharacter(s.ctx, acct.Identity))

	_ = s.service.CreateCharacter(s.ctx, CreationDetails{Identity: acct.Identity, Name: "Stormbringer"})
	s.True(s.service.HasCharacter(s.ctx, acct.Identity))
}

// LoadPlayer tests

func (s *ServiceSuite) TestLoadPlayer() {
	acct, _ := s.service.Register(s.ctx, "alice", "hunter2")
	_ = s.service.CreateCharacter(s.ctx, CreationDetails{
		Identity: acct.Identity,
		Name:     "Stormbringer",
		Class:    10,
		Body:     1003,
	})

	player, err := s.service.LoadPlayer(s.ctx, model.Promise{Identity: acct.Identity, HasCharacter: true})
	s.Require().NoError(err)

	s.Equal(acct.Identity, player.Identity())
	s.Equal("Stormbringer", player.Name())
	s.Equal(uint16(10), player.Class)
	s.Equal(uint32(1003), player.Body)
	s.Equal(DefaultConfig().Spawn, player.Location())
}

func (s *ServiceSuite) TestLoadPlayerMissingCharacterFails() {
	_, err := s.service.LoadPlayer(s.ctx, model.Promise{Identity: 42, HasCharacter: true})
	s.ErrorIs(err, model.ErrCharacterNotFound)
}

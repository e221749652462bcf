package account

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/conquergate/conquergate/internal/dependencies/clock"
	"github.com/conquergate/conquergate/internal/model"
	"github.com/conquergate/conquergate/internal/storage"
)

// Service is the account directory: it answers credential checks for the
// auth gateway and loads or creates characters for the session gateway.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
	cfg     Config
}

// Config holds configuration for the account service
type Config struct {
	// ServerName is the name clients must target in their login request
	ServerName string
	// Spawn is where freshly created characters are placed
	Spawn model.Location
}

// DefaultConfig returns default account service configuration
func DefaultConfig() Config {
	return Config{
		ServerName: "CentralPlain",
		Spawn:      model.Location{MapID: 1002, X: 430, Y: 380},
	}
}

// CreationDetails carries the client-supplied fields of a character
// creation request.
type CreationDetails struct {
	Identity  uint64
	Name      string
	Class     uint16
	Body      uint32
	HairStyle uint16
}

// New creates a new account service
func New(store storage.Storage, clk clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.ServerName == "" {
		cfg = DefaultConfig()
	}
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger.With(slog.String("component", "account")),
		cfg:     cfg,
	}
}

// Authorize checks a login request against the directory. It returns false
// for an unknown server name, an unknown account, or a wrong password.
func (s *Service) Authorize(ctx context.Context, serverName, accountName, password string) bool {
	if serverName != s.cfg.ServerName {
		s.logger.Warn("login for unknown server",
			slog.String("server", serverName),
			slog.String("account", accountName))
		return false
	}

	acct, err := s.storage.GetAccountByName(ctx, accountName)
	if err != nil {
		if !errors.Is(err, model.ErrAccountNotFound) {
			s.logger.Error("account lookup failed", slog.String("error", err.Error()))
		}
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) == nil
}

// Register creates a new login account with a bcrypt-hashed password and a
// freshly allocated identity.
func (s *Service) Register(ctx context.Context, name, password string) (*model.Account, error) {
	_, err := s.storage.GetAccountByName(ctx, name)
	if err == nil {
		return nil, model.ErrAccountExists
	}
	if !errors.Is(err, model.ErrAccountNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	identity, err := s.storage.NextIdentity(ctx)
	if err != nil {
		return nil, err
	}

	acct := &model.Account{
		Identity:     identity,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.SaveAccount(ctx, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

// Identity resolves an account name to its identity
func (s *Service) Identity(ctx context.Context, accountName string) (uint64, error) {
	acct, err := s.storage.GetAccountByName(ctx, accountName)
	if err != nil {
		return 0, err
	}
	return acct.Identity, nil
}

// HasCharacter reports whether the identity already owns a playable character
func (s *Service) HasCharacter(ctx context.Context, identity uint64) bool {
	_, err := s.storage.GetCharacter(ctx, identity)
	return err == nil
}

// LoadPlayer builds the live Player for a redeemed promise
func (s *Service) LoadPlayer(ctx context.Context, p model.Promise) (*model.Player, error) {
	character, err := s.storage.GetCharacter(ctx, p.Identity)
	if err != nil {
		return nil, err
	}

	player := model.NewPlayer(character.Identity, character.Name, character.Location)
	player.Class = character.Class
	player.Body = character.Body
	player.HairStyle = character.HairStyle
	player.Money = character.Money
	player.Level = character.Level
	return player, nil
}

// CreateCharacter persists a new character for the identity. Fails with
// ErrNameTaken when the character name is already in use.
func (s *Service) CreateCharacter(ctx context.Context, details CreationDetails) error {
	_, err := s.storage.GetCharacterByName(ctx, details.Name)
	if err == nil {
		return model.ErrNameTaken
	}
	if !errors.Is(err, model.ErrCharacterNotFound) {
		return err
	}

	character := &model.Character{
		Identity:  details.Identity,
		Name:      details.Name,
		Class:     details.Class,
		Body:      details.Body,
		HairStyle: details.HairStyle,
		Money:     1000,
		Level:     1,
		Location:  s.cfg.Spawn,
	}

	return s.storage.SaveCharacter(ctx, character)
}

package memory

import (
	"context"
	"sync"

	"github.com/conquergate/conquergate/internal/model"
	"github.com/conquergate/conquergate/internal/storage"
)

// identityBase is the first identity handed out. Client identities below
// this range are reserved for NPCs and system entities.
const identityBase = 1000000

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	accounts       map[uint64]*model.Account
	accountNames   map[string]uint64
	characters     map[uint64]*model.Character
	characterNames map[string]uint64
	nextIdentity   uint64
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts:       make(map[uint64]*model.Account),
		accountNames:   make(map[string]uint64),
		characters:     make(map[uint64]*model.Character),
		characterNames: make(map[string]uint64),
		nextIdentity:   identityBase,
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.Identity] = account
	s.accountNames[account.Name] = account.Identity
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, identity uint64) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[identity]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return account, nil
}

func (s *Storage) GetAccountByName(ctx context.Context, name string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.accountNames[name]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	account, ok := s.accounts[identity]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return account, nil
}

// Character operations

func (s *Storage) SaveCharacter(ctx context.Context, character *model.Character) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.characters[character.Identity] = character
	s.characterNames[character.Name] = character.Identity
	return nil
}

func (s *Storage) GetCharacter(ctx context.Context, identity uint64) (*model.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	character, ok := s.characters[identity]
	if !ok {
		return nil, model.ErrCharacterNotFound
	}
	return character, nil
}

func (s *Storage) GetCharacterByName(ctx context.Context, name string) (*model.Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.characterNames[name]
	if !ok {
		return nil, model.ErrCharacterNotFound
	}
	character, ok := s.characters[identity]
	if !ok {
		return nil, model.ErrCharacterNotFound
	}
	return character, nil
}

// NextIdentity allocates a fresh identity

func (s *Storage) NextIdentity(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextIdentity
	s.nextIdentity++
	return id, nil
}

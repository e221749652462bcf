package storage

import (
	"context"

	"github.com/conquergate/conquergate/internal/model"
)

// Storage defines the interface for account and character persistence
type Storage interface {
	// Account operations
	SaveAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, identity uint64) (*model.Account, error)
	GetAccountByName(ctx context.Context, name string) (*model.Account, error)

	// Character operations
	SaveCharacter(ctx context.Context, character *model.Character) error
	GetCharacter(ctx context.Context, identity uint64) (*model.Character, error)
	GetCharacterByName(ctx context.Context, name string) (*model.Character, error)

	// NextIdentity allocates a fresh server-unique identity
	NextIdentity(ctx context.Context) (uint64, error)
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/conquergate/conquergate/internal/model"
	"github.com/conquergate/conquergate/internal/storage"
)

// identityBase matches the in-memory backend: the identity sequence counts
// up from here so client identities stay out of the NPC range.
const identityBase = 1000000

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, accountKey(account.Identity), data, 0)
	pipe.Set(ctx, accountNameIndexKey(account.Name), strconv.FormatUint(account.Identity, 10), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAccount(ctx context.Context, identity uint64) (*model.Account, error) {
	data, err := s.client.Get(ctx, accountKey(identity)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	var account model.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Storage) GetAccountByName(ctx context.Context, name string) (*model.Account, error) {
	identityStr, err := s.client.Get(ctx, accountNameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	identity, err := strconv.ParseUint(identityStr, 10, 64)
	if err != nil {
		return nil, err
	}
	return s.GetAccount(ctx, identity)
}

// Character operations

func (s *Storage) SaveCharacter(ctx context.Context, character *model.Character) error {
	data, err := json.Marshal(character)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, characterKey(character.Identity), data, 0)
	pipe.Set(ctx, characterNameIndexKey(character.Name), strconv.FormatUint(character.Identity, 10), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetCharacter(ctx context.Context, identity uint64) (*model.Character, error) {
	data, err := s.client.Get(ctx, characterKey(identity)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCharacterNotFound
		}
		return nil, err
	}

	var character model.Character
	if err := json.Unmarshal(data, &character); err != nil {
		return nil, err
	}
	return &character, nil
}

func (s *Storage) GetCharacterByName(ctx context.Context, name string) (*model.Character, error) {
	identityStr, err := s.client.Get(ctx, characterNameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCharacterNotFound
		}
		return nil, err
	}

	identity, err := strconv.ParseUint(identityStr, 10, 64)
	if err != nil {
		return nil, err
	}
	return s.GetCharacter(ctx, identity)
}

// NextIdentity allocates a fresh identity via the shared counter

func (s *Storage) NextIdentity(ctx context.Context) (uint64, error) {
	n, err := s.client.Incr(ctx, identitySequenceKey()).Result()
	if err != nil {
		return 0, err
	}
	return identityBase + uint64(n) - 1, nil
}

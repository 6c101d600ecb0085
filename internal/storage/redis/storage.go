package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/veldt-labs/quartermaster/internal/model"
	"github.com/veldt-labs/quartermaster/internal/storage"
)

// Store is a Redis-backed implementation of the storage interface. Entities
// are stored as JSON values without expiry; profile data is durable, the
// TTL-based eviction lives in the cache layer, not here.
type Store struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis store
func New(cfg Config) (*Store, error) {
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

	return &Store{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the interface
var _ storage.Store = (*Store)(nil)

// Realm operations

func (s *Store) GetRealmByName(ctx context.Context, name string) (*model.Realm, error) {
	data, err := s.client.Get(ctx, realmKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRealmNotFound
		}
		return nil, err
	}

	var realm model.Realm
	if err := json.Unmarshal(data, &realm); err != nil {
		return nil, err
	}
	return &realm, nil
}

func (s *Store) CreateRealm(ctx context.Context, name, digest string) (*model.Realm, error) {
	id, err := s.client.Incr(ctx, realmIDCounterKey()).Result()
	if err != nil {
		return nil, err
	}

	realm := &model.Realm{ID: id, Name: name, Digest: digest}
	data, err := json.Marshal(realm)
	if err != nil {
		return nil, err
	}

	// SETNX on the name key is the uniqueness arbiter: a losing concurrent
	// creator sees the key already set and reports ErrRealmExists.
	set, err := s.client.SetNX(ctx, realmKey(name), data, 0).Result()
	if err != nil {
		return nil, err
	}
	if !set {
		return nil, model.ErrRealmExists
	}
	return realm, nil
}

// Player operations

func (s *Store) GetPlayer(ctx context.Context, hash int64) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(hash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Store) CreatePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, playerKey(player.Hash), data, 0).Err()
}

// Account operations

func (s *Store) GetAccount(ctx context.Context, key model.AccountKey) (*model.Account, error) {
	data, err := s.client.Get(ctx, accountKey(key)).Bytes()
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

func (s *Store) UpsertAccounts(ctx context.Context, accounts []*model.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	// One pipeline so a whole set_profile batch lands together
	pipe := s.client.Pipeline()
	for _, account := range accounts {
		data, err := json.Marshal(account)
		if err != nil {
			return err
		}
		pipe.Set(ctx, accountKey(account.Key()), data, 0)
	}
	_, err := pipe.Exec(ctx)
	return err
}

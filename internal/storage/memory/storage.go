package memory

import (
	"context"
	"sync"

	"github.com/veldt-labs/quartermaster/internal/model"
	"github.com/veldt-labs/quartermaster/internal/storage"
)

// Store is an in-memory implementation of the storage interface, used for
// tests and local development. Entities are copied on write and read so
// callers never share mutable state with the store.
type Store struct {
	mu sync.RWMutex

	nextRealmID int64
	realms      map[string]*model.Realm
	players     map[int64]*model.Player
	accounts    map[model.AccountKey]*model.Account
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		nextRealmID: 1,
		realms:      make(map[string]*model.Realm),
		players:     make(map[int64]*model.Player),
		accounts:    make(map[model.AccountKey]*model.Account),
	}
}

// Ensure Store implements the interface
var _ storage.Store = (*Store)(nil)

func (s *Store) GetRealmByName(ctx context.Context, name string) (*model.Realm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	realm, ok := s.realms[name]
	if !ok {
		return nil, model.ErrRealmNotFound
	}
	cp := *realm
	return &cp, nil
}

func (s *Store) CreateRealm(ctx context.Context, name, digest string) (*model.Realm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.realms[name]; ok {
		return nil, model.ErrRealmExists
	}
	realm := &model.Realm{ID: s.nextRealmID, Name: name, Digest: digest}
	s.nextRealmID++
	s.realms[name] = realm
	cp := *realm
	return &cp, nil
}

func (s *Store) GetPlayer(ctx context.Context, hash int64) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[hash]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	cp := *player
	return &cp, nil
}

func (s *Store) CreatePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *player
	s.players[player.Hash] = &cp
	return nil
}

func (s *Store) GetAccount(ctx context.Context, key model.AccountKey) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[key]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	cp := *account
	return &cp, nil
}

func (s *Store) UpsertAccounts(ctx context.Context, accounts []*model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range accounts {
		cp := *account
		s.accounts[account.Key()] = &cp
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

// Package cache implements the read-through entity caches sitting between
// the profile handlers and the durable store.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/veldt-labs/quartermaster/internal/dependencies/clock"
	"github.com/veldt-labs/quartermaster/internal/model"
	"github.com/veldt-labs/quartermaster/internal/storage"
)

// Config holds capacity and eviction settings for the three entity caches.
type Config struct {
	RealmCapacity   uint64
	PlayerCapacity  uint64
	AccountCapacity uint64

	// RealmLifetime and EntryLifetime cap how long an entry may live
	// regardless of use. IdleTimeout evicts entries that go unread.
	RealmLifetime time.Duration
	EntryLifetime time.Duration
	IdleTimeout   time.Duration
}

// DefaultConfig returns the standard cache settings.
func DefaultConfig() Config {
	return Config{
		RealmCapacity:   32,
		PlayerCapacity:  256,
		AccountCapacity: 256,
		RealmLifetime:   time.Hour,
		EntryLifetime:   30 * time.Minute,
		IdleTimeout:     15 * time.Minute,
	}
}

// entry wraps a cached entity with its fill time. The underlying cache's
// sliding TTL implements the idle timeout; the hard lifetime is enforced by
// discarding entries older than the lifetime cap on read.
type entry[V any] struct {
	value    V
	filledAt time.Time
}

// Manager owns the three independent entity caches. Cached entities are
// immutable after insert: consumers never mutate them in place, updates go
// through the store and then InvalidateAccount/ReplaceAccount. All cache
// access is atomic per key; there is no lock spanning multiple keys.
type Manager struct {
	store  storage.Store
	clock  clock.Clock
	logger *slog.Logger
	cfg    Config

	realms   *ttlcache.Cache[string, entry[*model.Realm]]
	players  *ttlcache.Cache[int64, entry[*model.Player]]
	accounts *ttlcache.Cache[model.AccountKey, entry[*model.Account]]
}

// NewManager creates a cache manager backed by the given store. Call Start
// to run the expiry loops and Stop to halt them.
func NewManager(store storage.Store, clk clock.Clock, logger *slog.Logger, cfg Config) *Manager {
	m := &Manager{
		store:  store,
		clock:  clk,
		logger: logger,
		cfg:    cfg,
		realms: ttlcache.New(
			ttlcache.WithTTL[string, entry[*model.Realm]](cfg.IdleTimeout),
			ttlcache.WithCapacity[string, entry[*model.Realm]](cfg.RealmCapacity),
		),
		players: ttlcache.New(
			ttlcache.WithTTL[int64, entry[*model.Player]](cfg.IdleTimeout),
			ttlcache.WithCapacity[int64, entry[*model.Player]](cfg.PlayerCapacity),
		),
		accounts: ttlcache.New(
			ttlcache.WithTTL[model.AccountKey, entry[*model.Account]](cfg.IdleTimeout),
			ttlcache.WithCapacity[model.AccountKey, entry[*model.Account]](cfg.AccountCapacity),
		),
	}

	// Eviction hooks are observability only; correctness never depends on
	// them firing.
	m.realms.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, entry[*model.Realm]]) {
		logger.Debug("realm cache eviction",
			slog.String("realm", item.Key()), slog.String("cause", evictionCause(reason)))
	})
	m.players.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[int64, entry[*model.Player]]) {
		logger.Debug("player cache eviction",
			slog.Int64("hash", item.Key()), slog.String("cause", evictionCause(reason)))
	})
	m.accounts.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[model.AccountKey, entry[*model.Account]]) {
		logger.Debug("account cache eviction",
			slog.Int64("realm_id", item.Key().RealmID),
			slog.Int64("hash", item.Key().Hash),
			slog.String("cause", evictionCause(reason)))
	})

	return m
}

func evictionCause(reason ttlcache.EvictionReason) string {
	switch reason {
	case ttlcache.EvictionReasonExpired:
		return "expired"
	case ttlcache.EvictionReasonDeleted:
		return "removed"
	case ttlcache.EvictionReasonCapacityReached:
		return "capacity"
	default:
		return "unknown"
	}
}

// Start runs the background expiry loops.
func (m *Manager) Start() {
	go m.realms.Start()
	go m.players.Start()
	go m.accounts.Start()
}

// Stop halts the background expiry loops.
func (m *Manager) Stop() {
	m.realms.Stop()
	m.players.Stop()
	m.accounts.Stop()
}

// lookup is the shared read-through shape: consult the cache, fall back to
// load on miss, populate the cache with the result. Concurrent fills for the
// same key race harmlessly; entities are immutable once created, so the last
// writer wins and every reader gets a correct copy.
func lookup[K comparable, V any](
	m *Manager,
	c *ttlcache.Cache[K, entry[V]],
	key K,
	lifetime time.Duration,
	load func() (V, error),
) (V, error) {
	if item := c.Get(key); item != nil {
		e := item.Value()
		if m.clock.Now().Sub(e.filledAt) < lifetime {
			return e.value, nil
		}
		// past the hard lifetime cap; drop and re-fetch
		c.Delete(key)
	}

	value, err := load()
	if err != nil {
		var zero V
		return zero, err
	}

	c.Set(key, entry[V]{value: value, filledAt: m.clock.Now()}, ttlcache.DefaultTTL)
	return value, nil
}

// Realm returns the realm by name, read-through. Returns
// model.ErrRealmNotFound when absent from both cache and store.
func (m *Manager) Realm(ctx context.Context, name string) (*model.Realm, error) {
	return lookup(m, m.realms, name, m.cfg.RealmLifetime, func() (*model.Realm, error) {
		return m.store.GetRealmByName(ctx, name)
	})
}

// EnsureRealm returns the realm by name, creating it with the supplied
// digest when it exists in neither cache nor store (trust-on-first-use).
// Losing a concurrent creation race is reconciled by re-fetching: the
// store's unique name constraint is the final arbiter.
func (m *Manager) EnsureRealm(ctx context.Context, name, digest string) (*model.Realm, error) {
	realm, err := m.Realm(ctx, name)
	if err == nil {
		return realm, nil
	}
	if !errors.Is(err, model.ErrRealmNotFound) {
		return nil, err
	}

	m.logger.Info("creating realm on first contact", slog.String("realm", name))
	realm, err = m.store.CreateRealm(ctx, name, digest)
	if errors.Is(err, model.ErrRealmExists) {
		// another request created it between our miss and our insert
		realm, err = m.store.GetRealmByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}

	m.realms.Set(name, entry[*model.Realm]{value: realm, filledAt: m.clock.Now()}, ttlcache.DefaultTTL)
	return realm, nil
}

// Player returns the player by hash, read-through. There is no auto-create
// here; enlistment is an explicit decision made by the profile service.
func (m *Manager) Player(ctx context.Context, hash int64) (*model.Player, error) {
	return lookup(m, m.players, hash, m.cfg.EntryLifetime, func() (*model.Player, error) {
		return m.store.GetPlayer(ctx, hash)
	})
}

// EnlistPlayer creates a player in the store and caches it.
func (m *Manager) EnlistPlayer(ctx context.Context, player *model.Player) error {
	if err := m.store.CreatePlayer(ctx, player); err != nil {
		return err
	}
	m.players.Set(player.Hash, entry[*model.Player]{value: player, filledAt: m.clock.Now()}, ttlcache.DefaultTTL)
	return nil
}

// Account returns the account by composite key, read-through. Accounts are
// never auto-created; absence surfaces as model.ErrAccountNotFound.
func (m *Manager) Account(ctx context.Context, key model.AccountKey) (*model.Account, error) {
	return lookup(m, m.accounts, key, m.cfg.EntryLifetime, func() (*model.Account, error) {
		return m.store.GetAccount(ctx, key)
	})
}

// UpsertAccounts writes a batch of accounts through to the store. Callers
// invalidate the affected entries first and replace them afterwards; the
// write itself never touches the cache so a partial failure cannot leave it
// ahead of the store.
func (m *Manager) UpsertAccounts(ctx context.Context, accounts []*model.Account) error {
	return m.store.UpsertAccounts(ctx, accounts)
}

// InvalidateAccount drops an account's cache entry. Called before a durable
// write so a failed write leaves the cache empty rather than stale-wrong.
func (m *Manager) InvalidateAccount(key model.AccountKey) {
	m.accounts.Delete(key)
}

// ReplaceAccount inserts a freshly written account, bounding staleness to
// zero for the writer's own subsequent reads.
func (m *Manager) ReplaceAccount(account *model.Account) {
	key := account.Key()
	if m.accounts.Has(key) {
		m.logger.Debug("account cache eviction",
			slog.Int64("realm_id", key.RealmID),
			slog.Int64("hash", key.Hash),
			slog.String("cause", "replaced"))
	}
	m.accounts.Set(key, entry[*model.Account]{value: account, filledAt: m.clock.Now()}, ttlcache.DefaultTTL)
}

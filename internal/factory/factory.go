package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/veldt-labs/quartermaster/internal/cache"
	"github.com/veldt-labs/quartermaster/internal/config"
	"github.com/veldt-labs/quartermaster/internal/dependencies/clock"
	"github.com/veldt-labs/quartermaster/internal/services/access"
	"github.com/veldt-labs/quartermaster/internal/services/profile"
	"github.com/veldt-labs/quartermaster/internal/storage"
	"github.com/veldt-labs/quartermaster/internal/storage/memory"
	redisstorage "github.com/veldt-labs/quartermaster/internal/storage/redis"
	sqlitestorage "github.com/veldt-labs/quartermaster/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeSqlite = "sqlite"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Storage storage.Store
	Clock   clock.Clock

	CacheManager   *cache.Manager
	AccessService  *access.Service
	ProfileService *profile.Service
}

// New creates a new application with all dependencies wired from config.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Store
	switch cfg.StorageType {
	case StorageTypeMemory, "":
		store = memory.New()
	case StorageTypeSqlite:
		sqliteStore, err := sqlitestorage.New(cfg.SqlitePath)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	case StorageTypeRedis:
		redisStore, err := redisstorage.New(redisstorage.Config{URL: cfg.RedisURL})
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'sqlite' or 'redis'")
	}

	return newWithDependencies(cfg, store, clock.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(cfg *config.Config, store storage.Store, clk clock.Clock, logger *slog.Logger) *App {
	cacheManager := cache.NewManager(store, clk, logger, cache.DefaultConfig())
	accessService := access.New(cfg)
	profileService := profile.New(cacheManager, accessService, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		CacheManager:   cacheManager,
		AccessService:  accessService,
		ProfileService: profileService,
	}
}

// Start runs the cache manager's background eviction loops.
func (a *App) Start() {
	a.CacheManager.Start()
}

// Close stops background work and releases the store.
func (a *App) Close() error {
	a.CacheManager.Stop()
	return a.Storage.Close()
}

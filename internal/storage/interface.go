package storage

import (
	"context"

	"github.com/veldt-labs/quartermaster/internal/model"
)

// Store defines the interface for durable persistence. It is the source of
// truth; the cache layer holds a derived, lossy-over-time view and consults
// the store only on miss.
type Store interface {
	// Realm operations
	GetRealmByName(ctx context.Context, name string) (*model.Realm, error)
	// CreateRealm inserts a new realm and returns it with its assigned ID.
	// The unique constraint on name is the final arbiter under concurrent
	// first-contact requests: a losing creator receives
	// model.ErrRealmExists and must re-fetch.
	CreateRealm(ctx context.Context, name, digest string) (*model.Realm, error)

	// Player operations
	GetPlayer(ctx context.Context, hash int64) (*model.Player, error)
	CreatePlayer(ctx context.Context, player *model.Player) error

	// Account operations
	GetAccount(ctx context.Context, key model.AccountKey) (*model.Account, error)
	// UpsertAccounts writes all accounts in one operation with
	// update-all-columns-on-conflict semantics, keyed by (realm_id, hash).
	UpsertAccounts(ctx context.Context, accounts []*model.Account) error

	Close() error
}

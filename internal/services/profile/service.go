// Package profile orchestrates the get_profile and set_profile operations:
// access gates in order, realm trust-on-first-use, player enlistment, and
// whole-profile reads and writes against the cache layer.
package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/veldt-labs/quartermaster/internal/cache"
	"github.com/veldt-labs/quartermaster/internal/model"
	"github.com/veldt-labs/quartermaster/internal/services/access"
)

type Service struct {
	cache  *cache.Manager
	access *access.Service
	logger *slog.Logger
}

func New(cacheManager *cache.Manager, accessService *access.Service, logger *slog.Logger) *Service {
	return &Service{
		cache:  cacheManager,
		access: accessService,
		logger: logger,
	}
}

// resolveRealm fetches (or first-contact-creates) the realm and verifies the
// supplied digest against the stored one, which on first contact is the
// supplied one itself. Callers gate on CheckRealmConfigured before this.
func (s *Service) resolveRealm(ctx context.Context, name, digest string) (*model.Realm, error) {
	realm, err := s.cache.EnsureRealm(ctx, name, digest)
	if err != nil {
		return nil, fmt.Errorf("ensuring realm '%s': %w", name, err)
	}
	if err := s.access.VerifyRealmDigest(realm, digest); err != nil {
		return nil, err
	}
	return realm, nil
}

// GetProfile resolves a player's profile in a realm. An unknown player is
// enlisted with the supplied credentials (trust-on-first-use) and receives an
// init result; a known player must present matching credentials. A player
// with no account in the realm also receives an init result.
func (s *Service) GetProfile(ctx context.Context, p GetParams) (*Result, error) {
	if err := s.access.CheckRealmConfigured(p.Realm); err != nil {
		return nil, err
	}
	if err := s.access.CheckSid(p.Sid); err != nil {
		return nil, err
	}
	realm, err := s.resolveRealm(ctx, p.Realm, p.RealmDigest)
	if err != nil {
		return nil, err
	}

	player, err := s.cache.Player(ctx, p.Hash)
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		player = &model.Player{Hash: p.Hash, Username: p.Username, Sid: p.Sid, Rid: p.Rid}
		if err := s.cache.EnlistPlayer(ctx, player); err != nil {
			return nil, fmt.Errorf("enlisting player %d: %w", p.Hash, err)
		}
		s.logger.Info("enlisted player on first contact",
			slog.Int64("hash", p.Hash), slog.String("username", p.Username))
		return &Result{Init: true, Player: player}, nil
	case err != nil:
		return nil, fmt.Errorf("fetching player %d: %w", p.Hash, err)
	}

	if err := s.access.VerifyPlayerCredentials(player, p.Sid, p.Rid); err != nil {
		return nil, err
	}

	account, err := s.cache.Account(ctx, model.AccountKey{RealmID: realm.ID, Hash: player.Hash})
	if errors.Is(err, model.ErrAccountNotFound) {
		return &Result{Init: true, Player: player}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching account for player %d: %w", p.Hash, err)
	}

	result := &Result{Player: player, Account: account}
	if err := decodeAccountBlobs(account, result); err != nil {
		return nil, fmt.Errorf("account for player %d: %w", p.Hash, err)
	}
	return result, nil
}

// SetProfile applies a batch of profile writes. Every entry is verified
// before anything is written; one bad entry rejects the whole batch. Each
// account is replaced in full, and a write persists even if the request is
// cancelled after verification passes.
func (s *Service) SetProfile(ctx context.Context, p SetParams) error {
	if err := s.access.CheckRealmConfigured(p.Realm); err != nil {
		return err
	}
	realm, err := s.resolveRealm(ctx, p.Realm, p.RealmDigest)
	if err != nil {
		return err
	}

	accounts := make([]*model.Account, 0, len(p.Entries))
	for i := range p.Entries {
		e := &p.Entries[i]

		if err := s.access.CheckSid(e.Sid); err != nil {
			return err
		}
		player, err := s.cache.Player(ctx, e.Hash)
		if errors.Is(err, model.ErrPlayerNotFound) {
			return &PlayerNotEnlistedError{Hash: e.Hash, Username: e.Username, Sid: e.Sid}
		}
		if err != nil {
			return fmt.Errorf("fetching player %d: %w", e.Hash, err)
		}
		if err := s.access.VerifyPlayerCredentials(player, e.Sid, e.Rid); err != nil {
			return err
		}

		account, err := buildAccount(realm.ID, e)
		if err != nil {
			return fmt.Errorf("player %d: %w", e.Hash, err)
		}
		accounts = append(accounts, account)
	}

	// Invalidate before the write so a failed upsert leaves the cache empty
	// rather than stale. The write itself must not be torn apart by a client
	// disconnect mid-flight.
	for _, account := range accounts {
		s.cache.InvalidateAccount(account.Key())
	}
	if err := s.cache.UpsertAccounts(context.WithoutCancel(ctx), accounts); err != nil {
		return fmt.Errorf("persisting %d account(s): %w", len(accounts), err)
	}
	for _, account := range accounts {
		s.cache.ReplaceAccount(account)
	}

	s.logger.Info("profiles persisted",
		slog.String("realm", realm.Name), slog.Int("count", len(accounts)))
	return nil
}

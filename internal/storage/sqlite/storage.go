package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/veldt-labs/quartermaster/internal/model"
	"github.com/veldt-labs/quartermaster/internal/storage"
)

// Store is a SQLite-backed implementation of the storage interface. It is
// the primary durable backend: realms, players and accounts live in three
// relational tables with the realm name carrying a unique constraint and
// accounts keyed by (realm_id, hash).
type Store struct {
	db *sql.DB
}

// New opens (and if necessary initialises) a SQLite database at the given
// DSN. A single connection is used; SQLite serialises writes anyway and a
// single connection keeps in-memory databases coherent in tests.
func New(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Ensure Store implements the interface
var _ storage.Store = (*Store)(nil)

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Realm operations

func (s *Store) GetRealmByName(ctx context.Context, name string) (*model.Realm, error) {
	var realm model.Realm
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, digest FROM realm WHERE name = ?`, name,
	).Scan(&realm.ID, &realm.Name, &realm.Digest)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrRealmNotFound
	}
	if err != nil {
		return nil, err
	}
	return &realm, nil
}

func (s *Store) CreateRealm(ctx context.Context, name, digest string) (*model.Realm, error) {
	// ON CONFLICT DO NOTHING plus RETURNING: a losing concurrent creator
	// gets no row back, which surfaces as ErrRealmExists for the caller to
	// reconcile by re-fetching.
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO realm (name, digest) VALUES (?, ?)
		 ON CONFLICT(name) DO NOTHING
		 RETURNING id`, name, digest,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrRealmExists
	}
	if err != nil {
		return nil, err
	}
	return &model.Realm{ID: id, Name: name, Digest: digest}, nil
}

// Player operations

func (s *Store) GetPlayer(ctx context.Context, hash int64) (*model.Player, error) {
	var player model.Player
	err := s.db.QueryRowContext(ctx,
		`SELECT hash, username, sid, rid FROM player WHERE hash = ?`, hash,
	).Scan(&player.Hash, &player.Username, &player.Sid, &player.Rid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPlayerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Store) CreatePlayer(ctx context.Context, player *model.Player) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO player (hash, username, sid, rid) VALUES (?, ?, ?, ?)`,
		player.Hash, player.Username, player.Sid, player.Rid,
	)
	return err
}

// Account operations

var accountColumns = []string{
	"realm_id", "hash",
	"game_version", "squad_tag",
	"max_authority_reached", "authority", "job_points", "faction", "name",
	"soldier_group_id", "soldier_group_name", "squad_size_setting",
	"loadout", "backpack", "stash",
	"kills", "deaths", "time_played", "player_kills", "teamkills",
	"longest_kill_streak", "longest_death_streak",
	"targets_destroyed", "vehicles_destroyed", "soldiers_healed",
	"distance_moved", "shots_fired", "throwables_thrown", "rank_progression",
	"kill_combos", "monitors",
}

func accountValues(a *model.Account) []any {
	return []any{
		a.RealmID, a.Hash,
		a.GameVersion, a.SquadTag,
		a.MaxAuthorityReached, a.Authority, a.JobPoints, a.Faction, a.Name,
		a.SoldierGroupID, a.SoldierGroupName, a.SquadSizeSetting,
		a.Loadout, a.Backpack, a.Stash,
		a.Kills, a.Deaths, a.TimePlayed, a.PlayerKills, a.Teamkills,
		a.LongestKillStreak, a.LongestDeathStreak,
		a.TargetsDestroyed, a.VehiclesDestroyed, a.SoldiersHealed,
		a.DistanceMoved, a.ShotsFired, a.ThrowablesThrown, a.RankProgression,
		a.KillCombos, a.Monitors,
	}
}

func (s *Store) GetAccount(ctx context.Context, key model.AccountKey) (*model.Account, error) {
	var a model.Account
	err := s.db.QueryRowContext(ctx,
		`SELECT `+strings.Join(accountColumns, ", ")+`
		 FROM account WHERE realm_id = ? AND hash = ?`,
		key.RealmID, key.Hash,
	).Scan(
		&a.RealmID, &a.Hash,
		&a.GameVersion, &a.SquadTag,
		&a.MaxAuthorityReached, &a.Authority, &a.JobPoints, &a.Faction, &a.Name,
		&a.SoldierGroupID, &a.SoldierGroupName, &a.SquadSizeSetting,
		&a.Loadout, &a.Backpack, &a.Stash,
		&a.Kills, &a.Deaths, &a.TimePlayed, &a.PlayerKills, &a.Teamkills,
		&a.LongestKillStreak, &a.LongestDeathStreak,
		&a.TargetsDestroyed, &a.VehiclesDestroyed, &a.SoldiersHealed,
		&a.DistanceMoved, &a.ShotsFired, &a.ThrowablesThrown, &a.RankProgression,
		&a.KillCombos, &a.Monitors,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) UpsertAccounts(ctx context.Context, accounts []*model.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	// One multi-row INSERT ... ON CONFLICT DO UPDATE so a whole set_profile
	// batch is applied in a single statement. Re-applying the same batch is
	// idempotent: every non-key column is overwritten from excluded.
	placeholders := "(" + strings.Repeat("?, ", len(accountColumns)-1) + "?)"
	rows := make([]string, len(accounts))
	args := make([]any, 0, len(accounts)*len(accountColumns))
	for i, a := range accounts {
		rows[i] = placeholders
		args = append(args, accountValues(a)...)
	}

	var updates []string
	for _, col := range accountColumns[2:] {
		updates = append(updates, fmt.Sprintf("%s = excluded.%s", col, col))
	}

	query := `INSERT INTO account (` + strings.Join(accountColumns, ", ") + `)
		VALUES ` + strings.Join(rows, ", ") + `
		ON CONFLICT(realm_id, hash) DO UPDATE SET ` + strings.Join(updates, ", ")

	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

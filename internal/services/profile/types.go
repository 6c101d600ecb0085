package profile

import (
	"fmt"

	"github.com/veldt-labs/quartermaster/internal/model"
)

// GetParams carries one validated get_profile request.
type GetParams struct {
	Hash        int64
	Username    string
	Rid         string
	Sid         int64
	Realm       string
	RealmDigest string
}

// SetParams carries one validated set_profile request. A single request
// batches updates for multiple players.
type SetParams struct {
	Realm       string
	RealmDigest string
	Entries     []SetEntry
}

// SetEntry is one player's profile update within a set_profile batch.
type SetEntry struct {
	Hash     int64
	Rid      string
	Username string
	Sid      int64

	GameVersion int32
	SquadTag    string

	MaxAuthorityReached float64
	Authority           float64
	JobPoints           float64
	Faction             int32
	Name                string
	SoldierGroupID      int32
	SoldierGroupName    string
	SquadSizeSetting    int32

	Loadout  []model.EquippedItem
	Backpack []model.StoredItem
	Stash    []model.StoredItem

	Stats SetStats
}

// SetStats is the statistics block of a set_profile entry.
type SetStats struct {
	Kills              int32
	Deaths             int32
	TimePlayed         int32
	PlayerKills        int32
	Teamkills          int32
	LongestKillStreak  int32
	LongestDeathStreak int32
	TargetsDestroyed   int32
	VehiclesDestroyed  int32
	SoldiersHealed     int32
	DistanceMoved      float64
	ShotsFired         int32
	ThrowablesThrown   int32
	RankProgression    float64

	KillCombos []model.KillCombo
	Monitors   []model.Monitor
}

// Result is the outcome of a get_profile request. Init indicates the player
// has no progression in the requested realm yet (freshly enlisted, or no
// set_profile has landed); the caller then emits the init-profile payload.
type Result struct {
	Init   bool
	Player *model.Player

	// populated only for full profiles
	Account    *model.Account
	Loadout    []model.EquippedItem
	Backpack   []model.StoredItem
	Stash      []model.StoredItem
	KillCombos []model.KillCombo
	Monitors   []model.Monitor
}

// PlayerNotEnlistedError reports a set_profile entry for a player that was
// never enlisted via get_profile. It fails the entire batch.
type PlayerNotEnlistedError struct {
	Hash     int64
	Username string
	Sid      int64
}

func (e *PlayerNotEnlistedError) Error() string {
	return fmt.Sprintf("player '%s' [hash:%d, sid:%d] not found, get_profile must precede set_profile", e.Username, e.Hash, e.Sid)
}

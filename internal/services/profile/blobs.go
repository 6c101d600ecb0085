package profile

import (
	"encoding/json"
	"fmt"

	"github.com/veldt-labs/quartermaster/internal/model"
)

// The item lists and histograms on an account are stored as compact JSON
// blobs rather than relational rows. A profile is always written and read
// whole, so there is nothing to query inside them.

func encodeBlob[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encoding blob: %w", err)
	}
	return string(raw), nil
}

func decodeBlob[T any](blob string) ([]T, error) {
	if blob == "" {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(blob), &items); err != nil {
		return nil, fmt.Errorf("decoding blob: %w", err)
	}
	return items, nil
}

// decodeAccountBlobs expands an account's stored blobs into wire structures.
func decodeAccountBlobs(account *model.Account, result *Result) error {
	var err error
	if result.Loadout, err = decodeBlob[model.EquippedItem](account.Loadout); err != nil {
		return fmt.Errorf("loadout: %w", err)
	}
	if result.Backpack, err = decodeBlob[model.StoredItem](account.Backpack); err != nil {
		return fmt.Errorf("backpack: %w", err)
	}
	if result.Stash, err = decodeBlob[model.StoredItem](account.Stash); err != nil {
		return fmt.Errorf("stash: %w", err)
	}
	if result.KillCombos, err = decodeBlob[model.KillCombo](account.KillCombos); err != nil {
		return fmt.Errorf("kill combos: %w", err)
	}
	if result.Monitors, err = decodeBlob[model.Monitor](account.Monitors); err != nil {
		return fmt.Errorf("monitors: %w", err)
	}
	return nil
}

// buildAccount assembles the durable account row for one set_profile entry,
// serializing the item lists into their blob form.
func buildAccount(realmID int64, e *SetEntry) (*model.Account, error) {
	loadout, err := encodeBlob(e.Loadout)
	if err != nil {
		return nil, fmt.Errorf("loadout: %w", err)
	}
	backpack, err := encodeBlob(e.Backpack)
	if err != nil {
		return nil, fmt.Errorf("backpack: %w", err)
	}
	stash, err := encodeBlob(e.Stash)
	if err != nil {
		return nil, fmt.Errorf("stash: %w", err)
	}
	killCombos, err := encodeBlob(e.Stats.KillCombos)
	if err != nil {
		return nil, fmt.Errorf("kill combos: %w", err)
	}
	monitors, err := encodeBlob(e.Stats.Monitors)
	if err != nil {
		return nil, fmt.Errorf("monitors: %w", err)
	}

	return &model.Account{
		RealmID: realmID,
		Hash:    e.Hash,

		GameVersion: e.GameVersion,
		SquadTag:    e.SquadTag,

		MaxAuthorityReached: e.MaxAuthorityReached,
		Authority:           e.Authority,
		JobPoints:           e.JobPoints,
		Faction:             e.Faction,
		Name:                e.Name,
		SoldierGroupID:      e.SoldierGroupID,
		SoldierGroupName:    e.SoldierGroupName,
		SquadSizeSetting:    e.SquadSizeSetting,

		Loadout:  loadout,
		Backpack: backpack,
		Stash:    stash,

		Kills:              e.Stats.Kills,
		Deaths:             e.Stats.Deaths,
		TimePlayed:         e.Stats.TimePlayed,
		PlayerKills:        e.Stats.PlayerKills,
		Teamkills:          e.Stats.Teamkills,
		LongestKillStreak:  e.Stats.LongestKillStreak,
		LongestDeathStreak: e.Stats.LongestDeathStreak,
		TargetsDestroyed:   e.Stats.TargetsDestroyed,
		VehiclesDestroyed:  e.Stats.VehiclesDestroyed,
		SoldiersHealed:     e.Stats.SoldiersHealed,
		DistanceMoved:      e.Stats.DistanceMoved,
		ShotsFired:         e.Stats.ShotsFired,
		ThrowablesThrown:   e.Stats.ThrowablesThrown,
		RankProgression:    e.Stats.RankProgression,

		KillCombos: killCombos,
		Monitors:   monitors,
	}, nil
}

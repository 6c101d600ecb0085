package model

// AccountKey identifies one player's progression within one realm.
type AccountKey struct {
	RealmID int64 `json:"realm_id"`
	Hash    int64 `json:"hash"`
}

// Account holds a player's progression data scoped to a realm. Loadout,
// Backpack, Stash, KillCombos and Monitors are compact JSON blobs; the wire
// layer deserializes them back into XML structures. Accounts are created by
// the first successful set_profile and fully replaced on every subsequent
// one.
type Account struct {
	RealmID int64 `json:"realm_id"`
	Hash    int64 `json:"hash"`

	GameVersion int32  `json:"game_version"`
	SquadTag    string `json:"squad_tag"`

	MaxAuthorityReached float64 `json:"max_authority_reached"`
	Authority           float64 `json:"authority"`
	JobPoints           float64 `json:"job_points"`
	Faction             int32   `json:"faction"`
	Name                string  `json:"name"`
	SoldierGroupID      int32   `json:"soldier_group_id"`
	SoldierGroupName    string  `json:"soldier_group_name"`
	SquadSizeSetting    int32   `json:"squad_size_setting"`

	Loadout  string `json:"loadout"`
	Backpack string `json:"backpack"`
	Stash    string `json:"stash"`

	Kills              int32   `json:"kills"`
	Deaths             int32   `json:"deaths"`
	TimePlayed         int32   `json:"time_played"`
	PlayerKills        int32   `json:"player_kills"`
	Teamkills          int32   `json:"teamkills"`
	LongestKillStreak  int32   `json:"longest_kill_streak"`
	LongestDeathStreak int32   `json:"longest_death_streak"`
	TargetsDestroyed   int32   `json:"targets_destroyed"`
	VehiclesDestroyed  int32   `json:"vehicles_destroyed"`
	SoldiersHealed     int32   `json:"soldiers_healed"`
	DistanceMoved      float64 `json:"distance_moved"`
	ShotsFired         int32   `json:"shots_fired"`
	ThrowablesThrown   int32   `json:"throwables_thrown"`
	RankProgression    float64 `json:"rank_progression"`

	KillCombos string `json:"kill_combos"`
	Monitors   string `json:"monitors"`
}

// Key returns the account's composite key.
func (a *Account) Key() AccountKey {
	return AccountKey{RealmID: a.RealmID, Hash: a.Hash}
}

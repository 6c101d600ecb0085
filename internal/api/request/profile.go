// Package request parses and validates the legacy game protocol's requests:
// query parameters for get_profile, query parameters plus a percent-encoded
// XML body for set_profile.
package request

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/veldt-labs/quartermaster/internal/model"
	"github.com/veldt-labs/quartermaster/internal/services/profile"
)

// maxSetBodyBytes bounds the set_profile body; a full batch for a busy
// server stays well under this.
const maxSetBodyBytes = 4 << 20

func queryInt64(q url.Values, field string) (int64, error) {
	raw := q.Get(field)
	if raw == "" {
		return 0, invalid(field, "missing")
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, invalid(field, "not an integer")
	}
	return v, nil
}

// ParseGetProfile extracts and validates get_profile query parameters.
func ParseGetProfile(r *http.Request) (profile.GetParams, error) {
	q := r.URL.Query()

	hash, err := queryInt64(q, "hash")
	if err != nil {
		return profile.GetParams{}, err
	}
	sid, err := queryInt64(q, "sid")
	if err != nil {
		return profile.GetParams{}, err
	}
	p := profile.GetParams{
		Hash:        hash,
		Username:    q.Get("username"),
		Rid:         q.Get("rid"),
		Sid:         sid,
		Realm:       q.Get("realm"),
		RealmDigest: q.Get("realm_digest"),
	}

	if err := validateIdentity(p.Hash, p.Username, p.Sid, p.Rid); err != nil {
		return profile.GetParams{}, err
	}
	if err := validateRealmName(p.Realm); err != nil {
		return profile.GetParams{}, err
	}
	if err := validateHex64("realm_digest", p.RealmDigest); err != nil {
		return profile.GetParams{}, err
	}
	return p, nil
}

// The set_profile body mirrors the client's XML: a data element holding one
// player element per updated profile, each with nested person and profile
// sub-trees.

type setBody struct {
	XMLName xml.Name    `xml:"data"`
	Players []setPlayer `xml:"player"`
}

type setPlayer struct {
	Hash    int64      `xml:"hash,attr"`
	Rid     string     `xml:"rid,attr"`
	Person  setPerson  `xml:"person"`
	Profile setProfile `xml:"profile"`
}

type setPerson struct {
	MaxAuthorityReached float64 `xml:"max_authority_reached,attr"`
	Authority           float64 `xml:"authority,attr"`
	JobPoints           float64 `xml:"job_points,attr"`
	Faction             int32   `xml:"faction,attr"`
	Name                string  `xml:"name,attr"`
	SoldierGroupID      int32   `xml:"soldier_group_id,attr"`
	SoldierGroupName    string  `xml:"soldier_group_name,attr"`
	SquadSizeSetting    int32   `xml:"squad_size_setting,attr"`

	EquippedItems []model.EquippedItem `xml:"item"`
	Backpack      []model.StoredItem   `xml:"backpack>item"`
	Stash         []model.StoredItem   `xml:"stash>item"`
}

type setProfile struct {
	GameVersion int32    `xml:"game_version,attr"`
	Username    string   `xml:"username,attr"`
	Sid         int64    `xml:"sid,attr"`
	Rid         string   `xml:"rid,attr"`
	SquadTag    string   `xml:"squad_tag,attr"`
	Stats       setStats `xml:"stats"`
}

type setStats struct {
	Kills              int32   `xml:"kills,attr"`
	Deaths             int32   `xml:"deaths,attr"`
	TimePlayed         int32   `xml:"time_played,attr"`
	PlayerKills        int32   `xml:"player_kills,attr"`
	Teamkills          int32   `xml:"teamkills,attr"`
	LongestKillStreak  int32   `xml:"longest_kill_streak,attr"`
	LongestDeathStreak int32   `xml:"longest_death_streak,attr"`
	TargetsDestroyed   int32   `xml:"targets_destroyed,attr"`
	VehiclesDestroyed  int32   `xml:"vehicles_destroyed,attr"`
	SoldiersHealed     int32   `xml:"soldiers_healed,attr"`
	DistanceMoved      float64 `xml:"distance_moved,attr"`
	ShotsFired         int32   `xml:"shots_fired,attr"`
	ThrowablesThrown   int32   `xml:"throwables_thrown,attr"`
	RankProgression    float64 `xml:"rank_progression,attr"`

	KillCombos []model.KillCombo `xml:"kill_combo"`
	Monitors   []model.Monitor   `xml:"monitor"`
}

// ParseSetProfile extracts and validates set_profile query parameters and
// decodes the percent-encoded XML body into service-level set parameters.
func ParseSetProfile(r *http.Request) (profile.SetParams, error) {
	q := r.URL.Query()

	p := profile.SetParams{
		Realm:       q.Get("realm"),
		RealmDigest: q.Get("realm_digest"),
	}
	if err := validateRealmName(p.Realm); err != nil {
		return profile.SetParams{}, err
	}
	if err := validateHex64("realm_digest", p.RealmDigest); err != nil {
		return profile.SetParams{}, err
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxSetBodyBytes))
	if err != nil {
		return profile.SetParams{}, fmt.Errorf("reading body: %w", err)
	}
	// the client percent-encodes the XML document
	decoded, err := url.PathUnescape(string(raw))
	if err != nil {
		return profile.SetParams{}, invalid("body", "not percent-encoded")
	}

	var body setBody
	if err := xml.Unmarshal([]byte(decoded), &body); err != nil {
		return profile.SetParams{}, invalid("body", "not a valid profile document")
	}
	if len(body.Players) == 0 {
		return profile.SetParams{}, invalid("body", "no player elements")
	}

	p.Entries = make([]profile.SetEntry, 0, len(body.Players))
	for i := range body.Players {
		entry, err := toSetEntry(&body.Players[i])
		if err != nil {
			return profile.SetParams{}, err
		}
		p.Entries = append(p.Entries, entry)
	}
	return p, nil
}

func toSetEntry(pl *setPlayer) (profile.SetEntry, error) {
	if err := validateIdentity(pl.Hash, pl.Profile.Username, pl.Profile.Sid, pl.Rid); err != nil {
		return profile.SetEntry{}, err
	}
	// the rid appears on both the player element and the profile sub-tree;
	// they must agree
	if pl.Profile.Rid != pl.Rid {
		return profile.SetEntry{}, invalid("rid", "player and profile rid differ")
	}

	return profile.SetEntry{
		Hash:     pl.Hash,
		Rid:      pl.Rid,
		Username: pl.Profile.Username,
		Sid:      pl.Profile.Sid,

		GameVersion: pl.Profile.GameVersion,
		SquadTag:    pl.Profile.SquadTag,

		MaxAuthorityReached: pl.Person.MaxAuthorityReached,
		Authority:           pl.Person.Authority,
		JobPoints:           pl.Person.JobPoints,
		Faction:             pl.Person.Faction,
		Name:                pl.Person.Name,
		SoldierGroupID:      pl.Person.SoldierGroupID,
		SoldierGroupName:    pl.Person.SoldierGroupName,
		SquadSizeSetting:    pl.Person.SquadSizeSetting,

		Loadout:  pl.Person.EquippedItems,
		Backpack: pl.Person.Backpack,
		Stash:    pl.Person.Stash,

		Stats: profile.SetStats{
			Kills:              pl.Profile.Stats.Kills,
			Deaths:             pl.Profile.Stats.Deaths,
			TimePlayed:         pl.Profile.Stats.TimePlayed,
			PlayerKills:        pl.Profile.Stats.PlayerKills,
			Teamkills:          pl.Profile.Stats.Teamkills,
			LongestKillStreak:  pl.Profile.Stats.LongestKillStreak,
			LongestDeathStreak: pl.Profile.Stats.LongestDeathStreak,
			TargetsDestroyed:   pl.Profile.Stats.TargetsDestroyed,
			VehiclesDestroyed:  pl.Profile.Stats.VehiclesDestroyed,
			SoldiersHealed:     pl.Profile.Stats.SoldiersHealed,
			DistanceMoved:      pl.Profile.Stats.DistanceMoved,
			ShotsFired:         pl.Profile.Stats.ShotsFired,
			ThrowablesThrown:   pl.Profile.Stats.ThrowablesThrown,
			RankProgression:    pl.Profile.Stats.RankProgression,

			KillCombos: pl.Profile.Stats.KillCombos,
			Monitors:   pl.Profile.Stats.Monitors,
		},
	}, nil
}

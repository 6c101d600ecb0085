// Package response builds the XML documents the legacy game protocol
// expects. Every successful response is a data element with ok="1".
package response

import (
	"encoding/xml"
	"net/http"

	"github.com/veldt-labs/quartermaster/internal/model"
	"github.com/veldt-labs/quartermaster/internal/services/profile"
)

// initProfileDoc is the "no progression yet" response: the client sees its
// username and rid echoed back and starts a fresh profile.
type initProfileDoc struct {
	XMLName xml.Name    `xml:"data"`
	Ok      int         `xml:"ok,attr"`
	Profile initProfile `xml:"profile"`
}

type initProfile struct {
	Username string `xml:"username,attr"`
	Rid      string `xml:"rid,attr"`
}

// fullProfileDoc carries a player's complete progression in a realm.
type fullProfileDoc struct {
	XMLName xml.Name   `xml:"data"`
	Ok      int        `xml:"ok,attr"`
	Profile docProfile `xml:"profile"`
	Person  docPerson  `xml:"person"`
}

type docProfile struct {
	GameVersion int32    `xml:"game_version,attr"`
	Username    string   `xml:"username,attr"`
	Sid         int64    `xml:"sid,attr"`
	Rid         string   `xml:"rid,attr"`
	SquadTag    string   `xml:"squad_tag,attr"`
	Stats       docStats `xml:"stats"`
}

type docStats struct {
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

type docPerson struct {
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

// okDoc acknowledges a successful set_profile.
type okDoc struct {
	XMLName xml.Name `xml:"data"`
	Ok      int      `xml:"ok,attr"`
}

// XML writes an XML response document.
func XML(w http.ResponseWriter, status int, doc any) {
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(status)
	_ = xml.NewEncoder(w).Encode(doc)
}

// Ok writes the bare success acknowledgement.
func Ok(w http.ResponseWriter) {
	XML(w, http.StatusOK, okDoc{Ok: 1})
}

// GetProfile writes the appropriate document for a get_profile result:
// an init profile for players without progression, the full tree otherwise.
func GetProfile(w http.ResponseWriter, result *profile.Result) {
	if result.Init {
		XML(w, http.StatusOK, initProfileDoc{
			Ok: 1,
			Profile: initProfile{
				Username: result.Player.Username,
				Rid:      result.Player.Rid,
			},
		})
		return
	}

	account := result.Account
	XML(w, http.StatusOK, fullProfileDoc{
		Ok: 1,
		Profile: docProfile{
			GameVersion: account.GameVersion,
			Username:    result.Player.Username,
			Sid:         result.Player.Sid,
			Rid:         result.Player.Rid,
			SquadTag:    account.SquadTag,
			Stats: docStats{
				Kills:              account.Kills,
				Deaths:             account.Deaths,
				TimePlayed:         account.TimePlayed,
				PlayerKills:        account.PlayerKills,
				Teamkills:          account.Teamkills,
				LongestKillStreak:  account.LongestKillStreak,
				LongestDeathStreak: account.LongestDeathStreak,
				TargetsDestroyed:   account.TargetsDestroyed,
				VehiclesDestroyed:  account.VehiclesDestroyed,
				SoldiersHealed:     account.SoldiersHealed,
				DistanceMoved:      account.DistanceMoved,
				ShotsFired:         account.ShotsFired,
				ThrowablesThrown:   account.ThrowablesThrown,
				RankProgression:    account.RankProgression,
				KillCombos:         result.KillCombos,
				Monitors:           result.Monitors,
			},
		},
		Person: docPerson{
			MaxAuthorityReached: account.MaxAuthorityReached,
			Authority:           account.Authority,
			JobPoints:           account.JobPoints,
			Faction:             account.Faction,
			Name:                account.Name,
			SoldierGroupID:      account.SoldierGroupID,
			SoldierGroupName:    account.SoldierGroupName,
			SquadSizeSetting:    account.SquadSizeSetting,
			EquippedItems:       result.Loadout,
			Backpack:            result.Backpack,
			Stash:               result.Stash,
		},
	})
}

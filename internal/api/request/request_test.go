package request

import (
	"fmt"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-labs/quartermaster/internal/legacyhash"
)

var (
	testDigest = strings.Repeat("ab", 32)
	testRid    = strings.Repeat("ef", 32)
)

func TestValidateUsername(t *testing.T) {
	valid := []string{"ABC", "PLAYER-1", "X", "A.B_C!", "007", strings.Repeat("A", 32)}
	for _, u := range valid {
		assert.NoError(t, validateUsername(u), u)
	}

	invalid := map[string]string{
		"":                            "empty",
		strings.Repeat("A", 33):       "too long",
		"lowercase":                   "lowercase letters",
		"HAS  DOUBLE":                 "double space",
		" LEADING":                    "leading space",
		"TRAILING ":                   "trailing space",
		"EVIL<TAG>":                   "xml-breaking characters",
		`QUOTE"NAME`:                  "quote",
		"AMP&NAME":                    "ampersand",
		"UNICODEÉ":               "non-ascii",
	}
	for u, why := range invalid {
		assert.Error(t, validateUsername(u), why)
	}
}

func TestValidateHex64(t *testing.T) {
	assert.NoError(t, validateHex64("rid", testRid))
	assert.NoError(t, validateHex64("rid", strings.ToUpper(testRid)))

	assert.Error(t, validateHex64("rid", testRid[:63]), "too short")
	assert.Error(t, validateHex64("rid", testRid+"ab"), "too long")
	assert.Error(t, validateHex64("rid", strings.Repeat("zz", 32)), "not hex")
}

func TestValidateIDRange(t *testing.T) {
	assert.NoError(t, validateIDRange("hash", 1))
	assert.NoError(t, validateIDRange("hash", (1<<32)-1))

	assert.Error(t, validateIDRange("hash", 0))
	assert.Error(t, validateIDRange("hash", -5))
	assert.Error(t, validateIDRange("hash", 1<<32))
}

func getQuery(username string) url.Values {
	q := url.Values{}
	q.Set("hash", fmt.Sprintf("%d", legacyhash.Hash64(username)))
	q.Set("username", username)
	q.Set("rid", testRid)
	q.Set("sid", "1")
	q.Set("realm", "INCURSION")
	q.Set("realm_digest", testDigest)
	return q
}

func TestParseGetProfile(t *testing.T) {
	req := httptest.NewRequest("GET", "/get_profile?"+getQuery("ABC").Encode(), nil)

	p, err := ParseGetProfile(req)
	require.NoError(t, err)
	assert.Equal(t, legacyhash.Hash64("ABC"), p.Hash)
	assert.Equal(t, "ABC", p.Username)
	assert.Equal(t, int64(1), p.Sid)
	assert.Equal(t, "INCURSION", p.Realm)
}

func TestParseGetProfileHashMismatch(t *testing.T) {
	q := getQuery("ABC")
	q.Set("hash", "12345")
	req := httptest.NewRequest("GET", "/get_profile?"+q.Encode(), nil)

	_, err := ParseGetProfile(req)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "hash", vErr.Field)
}

func TestParseGetProfileMissingParam(t *testing.T) {
	q := getQuery("ABC")
	q.Del("sid")
	req := httptest.NewRequest("GET", "/get_profile?"+q.Encode(), nil)

	_, err := ParseGetProfile(req)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "sid", vErr.Field)
}

func setDoc(username string) string {
	return fmt.Sprintf(`<data>
  <player hash="%d" rid="%s">
    <person max_authority_reached="2.5" authority="2.5" job_points="120" faction="0" name="%s" soldier_group_id="0" soldier_group_name="default" squad_size_setting="4">
      <item slot="0" index="3" amount="1" key="ak47.weapon"/>
      <backpack><item class="1" index="7" key="bandage.carry_item"/></backpack>
      <stash/>
    </person>
    <profile game_version="153" username="%s" sid="1" rid="%s" squad_tag="TAG">
      <stats kills="42" deaths="7" time_played="3600" player_kills="2" teamkills="0" longest_kill_streak="5" longest_death_streak="2" targets_destroyed="1" vehicles_destroyed="0" soldiers_healed="3" distance_moved="1200.5" shots_fired="500" throwables_thrown="4" rank_progression="0.25">
        <kill_combo kills="3" times="2"/>
        <monitor name="medic" count="5"/>
      </stats>
    </profile>
  </player>
</data>`, legacyhash.Hash64(username), testRid, username, username, testRid)
}

func TestParseSetProfile(t *testing.T) {
	body := url.PathEscape(setDoc("ABC"))
	req := httptest.NewRequest("POST", "/set_profile?realm=INCURSION&realm_digest="+testDigest, strings.NewReader(body))

	p, err := ParseSetProfile(req)
	require.NoError(t, err)
	assert.Equal(t, "INCURSION", p.Realm)
	require.Len(t, p.Entries, 1)

	e := p.Entries[0]
	assert.Equal(t, legacyhash.Hash64("ABC"), e.Hash)
	assert.Equal(t, "ABC", e.Username)
	assert.Equal(t, "TAG", e.SquadTag)
	assert.Equal(t, int32(42), e.Stats.Kills)
	assert.Equal(t, 1200.5, e.Stats.DistanceMoved)
	require.Len(t, e.Loadout, 1)
	assert.Equal(t, "ak47.weapon", e.Loadout[0].Key)
	require.Len(t, e.Backpack, 1)
	assert.Empty(t, e.Stash)
	require.Len(t, e.Stats.KillCombos, 1)
	assert.Equal(t, int32(3), e.Stats.KillCombos[0].Kills)
	require.Len(t, e.Stats.Monitors, 1)
	assert.Equal(t, "medic", e.Stats.Monitors[0].Name)
}

func TestParseSetProfileUnencodedBodyStillParses(t *testing.T) {
	// bodies without any percent escapes decode as themselves
	req := httptest.NewRequest("POST", "/set_profile?realm=INCURSION&realm_digest="+testDigest, strings.NewReader(setDoc("ABC")))

	p, err := ParseSetProfile(req)
	require.NoError(t, err)
	require.Len(t, p.Entries, 1)
}

func TestParseSetProfileRidDisagreement(t *testing.T) {
	doc := strings.Replace(setDoc("ABC"), `rid="`+testRid+`" squad_tag`, `rid="`+strings.Repeat("00", 32)+`" squad_tag`, 1)
	req := httptest.NewRequest("POST", "/set_profile?realm=INCURSION&realm_digest="+testDigest, strings.NewReader(url.PathEscape(doc)))

	_, err := ParseSetProfile(req)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "rid", vErr.Field)
}

func TestParseSetProfileEmptyBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/set_profile?realm=INCURSION&realm_digest="+testDigest, strings.NewReader("<data></data>"))

	_, err := ParseSetProfile(req)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestParseSetProfileBadDigest(t *testing.T) {
	req := httptest.NewRequest("POST", "/set_profile?realm=INCURSION&realm_digest=nothex", strings.NewReader(setDoc("ABC")))

	_, err := ParseSetProfile(req)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "realm_digest", vErr.Field)
}

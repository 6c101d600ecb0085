package api_test

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-labs/quartermaster/internal/api"
	"github.com/veldt-labs/quartermaster/internal/config"
	"github.com/veldt-labs/quartermaster/internal/factory"
	"github.com/veldt-labs/quartermaster/internal/legacyhash"
	"github.com/veldt-labs/quartermaster/internal/model"
	"github.com/veldt-labs/quartermaster/internal/storage/memory"
)

var (
	testDigest = strings.Repeat("ab", 32)
	testRid    = strings.Repeat("ef", 32)
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app := factory.NewTestApp(&config.Config{
		Realms: []string{"INCURSION"},
		// httptest requests arrive from 192.0.2.1
		AllowedIPs: []string{"192.0.2.1"},
	})

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AccessService:  app.AccessService,
		ProfileService: app.ProfileService,
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Store),
	}
}

func (ts *testServer) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func getProfilePath(username string) string {
	q := url.Values{}
	q.Set("hash", fmt.Sprintf("%d", legacyhash.Hash64(username)))
	q.Set("username", username)
	q.Set("rid", testRid)
	q.Set("sid", "1")
	q.Set("realm", "INCURSION")
	q.Set("realm_digest", testDigest)
	return "/get_profile?" + q.Encode()
}

func setProfileBody(username string, kills int) string {
	doc := fmt.Sprintf(`<data>
  <player hash="%d" rid="%s">
    <person max_authority_reached="2.5" authority="2.5" job_points="120" faction="0" name="%s" soldier_group_id="0" soldier_group_name="default" squad_size_setting="4">
      <item slot="0" index="3" amount="1" key="ak47.weapon"/>
      <backpack><item class="1" index="7" key="bandage.carry_item"/></backpack>
      <stash/>
    </person>
    <profile game_version="153" username="%s" sid="1" rid="%s" squad_tag="">
      <stats kills="%d" deaths="7" time_played="3600" player_kills="2" teamkills="0" longest_kill_streak="5" longest_death_streak="2" targets_destroyed="1" vehicles_destroyed="0" soldiers_healed="3" distance_moved="1200.5" shots_fired="500" throwables_thrown="4" rank_progression="0.25">
        <kill_combo kills="3" times="2"/>
        <monitor name="medic" count="5"/>
      </stats>
    </profile>
  </player>
</data>`, legacyhash.Hash64(username), testRid, username, username, testRid, kills)
	return url.PathEscape(doc)
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestGetProfileFirstContact(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, getProfilePath("ABC"), "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/xml", rr.Header().Get("Content-Type"))

	body := rr.Body.String()
	assert.Contains(t, body, `ok="1"`)
	assert.Contains(t, body, `username="ABC"`)
	assert.Contains(t, body, `rid="`+testRid+`"`)

	// realm and player were created
	realm, err := ts.storage.GetRealmByName(context.Background(), "INCURSION")
	require.NoError(t, err)
	assert.Equal(t, testDigest, realm.Digest)
	player, err := ts.storage.GetPlayer(context.Background(), legacyhash.Hash64("ABC"))
	require.NoError(t, err)
	assert.Equal(t, "ABC", player.Username)
}

func TestGetProfileRepeatBeforeSetStillInit(t *testing.T) {
	ts := newTestServer(t)

	first := ts.request(http.MethodGet, getProfilePath("ABC"), "")
	require.Equal(t, http.StatusOK, first.Code)

	second := ts.request(http.MethodGet, getProfilePath("ABC"), "")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), `username="ABC"`)
	// still an init profile: no stats tree yet
	assert.NotContains(t, second.Body.String(), "<stats")

	// and no re-enlistment: the original credentials stand
	player, err := ts.storage.GetPlayer(context.Background(), legacyhash.Hash64("ABC"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), player.Sid)
	assert.Equal(t, testRid, player.Rid)
}

func TestSetThenGetFullProfile(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, getProfilePath("ABC"), "")
	require.Equal(t, http.StatusOK, rr.Code)

	setPath := "/set_profile?realm=INCURSION&realm_digest=" + testDigest
	rr = ts.request(http.MethodPost, setPath, setProfileBody("ABC", 5))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `ok="1"`)

	rr = ts.request(http.MethodGet, getProfilePath("ABC"), "")
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, `kills="5"`)
	assert.Contains(t, body, `key="ak47.weapon"`)
	assert.Contains(t, body, `key="bandage.carry_item"`)
	assert.Contains(t, body, `<kill_combo kills="3" times="2"`)
	assert.Contains(t, body, `<monitor name="medic" count="5"`)
}

func TestGetProfileWrongRealmDigest(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, getProfilePath("ABC"), "")
	require.Equal(t, http.StatusOK, rr.Code)

	q := url.Values{}
	q.Set("hash", fmt.Sprintf("%d", legacyhash.Hash64("DEF")))
	q.Set("username", "DEF")
	q.Set("rid", testRid)
	q.Set("sid", "1")
	q.Set("realm", "INCURSION")
	q.Set("realm_digest", strings.Repeat("cd", 32))

	rr = ts.request(http.MethodGet, "/get_profile?"+q.Encode(), "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), `ok="0"`)
	assert.Contains(t, rr.Body.String(), "digest")
}

func TestGetProfileUnconfiguredRealm(t *testing.T) {
	ts := newTestServer(t)

	q := url.Values{}
	q.Set("hash", fmt.Sprintf("%d", legacyhash.Hash64("ABC")))
	q.Set("username", "ABC")
	q.Set("rid", testRid)
	q.Set("sid", "1")
	q.Set("realm", "ROGUE")
	q.Set("realm_digest", testDigest)

	rr := ts.request(http.MethodGet, "/get_profile?"+q.Encode(), "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "not configured")

	// no store row created
	_, err := ts.storage.GetRealmByName(context.Background(), "ROGUE")
	assert.ErrorIs(t, err, model.ErrRealmNotFound)
}

func TestGetProfileHashUsernameMismatch(t *testing.T) {
	ts := newTestServer(t)

	q := url.Values{}
	q.Set("hash", "12345")
	q.Set("username", "ABC")
	q.Set("rid", testRid)
	q.Set("sid", "1")
	q.Set("realm", "INCURSION")
	q.Set("realm_digest", testDigest)

	rr := ts.request(http.MethodGet, "/get_profile?"+q.Encode(), "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "hash")
}

func TestSetProfileUnenlistedPlayer(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, getProfilePath("ABC"), "")
	require.Equal(t, http.StatusOK, rr.Code)

	setPath := "/set_profile?realm=INCURSION&realm_digest=" + testDigest
	rr = ts.request(http.MethodPost, setPath, setProfileBody("GHOST", 5))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), `ok="0"`)
}

func TestClientIPDenied(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, getProfilePath("ABC"), nil)
	req.RemoteAddr = "198.51.100.9:4242"
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "not allowed")
}

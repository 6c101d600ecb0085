package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldt-labs/quartermaster/internal/model"
)

func TestCreateAndGetRealm(t *testing.T) {
	s := New()
	ctx := context.Background()

	realm, err := s.CreateRealm(ctx, "INCURSION", "aa11")
	require.NoError(t, err)
	assert.Equal(t, int64(1), realm.ID)

	got, err := s.GetRealmByName(ctx, "INCURSION")
	require.NoError(t, err)
	assert.Equal(t, realm, got)
}

func TestCreateRealmDuplicate(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.CreateRealm(ctx, "INCURSION", "aa11")
	require.NoError(t, err)

	_, err = s.CreateRealm(ctx, "INCURSION", "bb22")
	assert.ErrorIs(t, err, model.ErrRealmExists)
}

func TestGetRealmNotFound(t *testing.T) {
	s := New()
	_, err := s.GetRealmByName(context.Background(), "NOWHERE")
	assert.ErrorIs(t, err, model.ErrRealmNotFound)
}

func TestCreateAndGetPlayer(t *testing.T) {
	s := New()
	ctx := context.Background()

	player := &model.Player{Hash: 42, Username: "ABC", Sid: 1, Rid: "ff00"}
	require.NoError(t, s.CreatePlayer(ctx, player))

	got, err := s.GetPlayer(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, player, got)

	// mutating the returned copy must not affect the store
	got.Username = "XYZ"
	again, err := s.GetPlayer(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "ABC", again.Username)
}

func TestGetPlayerNotFound(t *testing.T) {
	s := New()
	_, err := s.GetPlayer(context.Background(), 99)
	assert.ErrorIs(t, err, model.ErrPlayerNotFound)
}

func TestUpsertAccountsOverwrites(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := &model.Account{RealmID: 1, Hash: 42, Kills: 5}
	require.NoError(t, s.UpsertAccounts(ctx, []*model.Account{first}))

	second := &model.Account{RealmID: 1, Hash: 42, Kills: 9}
	require.NoError(t, s.UpsertAccounts(ctx, []*model.Account{second}))

	got, err := s.GetAccount(ctx, model.AccountKey{RealmID: 1, Hash: 42})
	require.NoError(t, err)
	assert.Equal(t, int32(9), got.Kills)
}

func TestGetAccountNotFound(t *testing.T) {
	s := New()
	_, err := s.GetAccount(context.Background(), model.AccountKey{RealmID: 1, Hash: 1})
	assert.ErrorIs(t, err, model.ErrAccountNotFound)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "sqlite", cfg.StorageType)
	assert.Equal(t, []string{"127.0.0.1"}, cfg.AllowedIPs)
	assert.Empty(t, cfg.Realms)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("QM_PORT", "9000")
	t.Setenv("QM_REALMS", "INCURSION,DOMINANCE")
	t.Setenv("QM_ALLOWED_IPS", "10.0.0.1,10.0.0.2")
	t.Setenv("QM_BLOCKED_SIDS", "1001,1002")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, []string{"INCURSION", "DOMINANCE"}, cfg.Realms)
	assert.Len(t, cfg.ParsedAllowedIPs(), 2)
	assert.Equal(t, []int64{1001, 1002}, cfg.BlockedSids)
}

func TestLoadRejectsBadIP(t *testing.T) {
	t.Setenv("QM_ALLOWED_IPS", "not-an-ip")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsOverlongRealmName(t *testing.T) {
	t.Setenv("QM_REALMS", "THIS_REALM_NAME_IS_FAR_TOO_LONG_TO_BE_VALID")

	_, err := Load()
	require.Error(t, err)
}

func TestAddr(t *testing.T) {
	cfg := &Config{Host: "localhost", Port: 1234}
	assert.Equal(t, "localhost:1234", cfg.Addr())
}

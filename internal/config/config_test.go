package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	require.Equal(t, ":5000", cfg.Server.Addr)
	require.Equal(t, "memory", cfg.Store.Driver)
	require.Equal(t, int64(500), cfg.Game.BigBlind)
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
server {
  addr          = ":9000"
  log_level     = "debug"
  room_idle_ttl = "30s"
}

game {
  big_blind = 1000
}

store {
  driver = "sqlite"
  dsn    = "games.db"
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.Server.Addr)
	require.Equal(t, "debug", cfg.Server.LogLevel)
	require.Equal(t, int64(1000), cfg.Game.BigBlind)
	require.Equal(t, int64(250), cfg.Game.SmallBlind, "unset fields keep defaults")
	require.Equal(t, "sqlite", cfg.Store.Driver)

	ttl, err := cfg.RoomIdleTTL()
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, ttl)
}

func TestLoadRejectsBadStakes(t *testing.T) {
	path := writeConfig(t, `
server {}
game {
  small_blind = 600
  big_blind   = 500
}
store {}
`)
	_, err := Load(path)
	require.ErrorContains(t, err, "small_blind")
}

func TestLoadRejectsDriverWithoutDSN(t *testing.T) {
	path := writeConfig(t, `
server {}
game {}
store {
  driver = "postgres"
}
`)
	_, err := Load(path)
	require.ErrorContains(t, err, "dsn")
}

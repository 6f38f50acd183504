package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnmarshalConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[api]
port = ":9100"

[log]
service_name = "punks-market"
mode = "console"
level = "info"

[db]
host = "127.0.0.1"
port = 3306
user = "root"
password = "secret"
database = "punks"

[market]
admin_address = "0xC352B534e8b987e036A93539Fd6897F53488e56a"
stats_cache_seconds = 5

[[kv.redis]]
host = "127.0.0.1:6379"
type = "node"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := UnmarshalConfig(path)
	require.NoError(t, err)

	require.Equal(t, ":9100", c.Api.Port)
	require.Equal(t, "punks-market", c.Log.ServiceName)
	require.Equal(t, "punks", c.DB.Database)
	require.Equal(t, 3306, c.DB.Port)
	require.Equal(t, "0xC352B534e8b987e036A93539Fd6897F53488e56a", c.Market.AdminAddress)
	require.Equal(t, 5, c.Market.StatsCacheSeconds)
	require.Len(t, c.Kv.Redis, 1)
	require.Equal(t, "127.0.0.1:6379", c.Kv.Redis[0].Host)
}

func TestUnmarshalConfigMissingFile(t *testing.T) {
	_, err := UnmarshalConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

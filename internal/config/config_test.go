package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("HOME", dir)
	for _, k := range []string{"CLARO_DATA", "CLARO_BACKEND", "CLARO_REDIS_ADDR", "CLARO_REDIS_KEY", "CLARO_LOG_LEVEL", "CLARO_THEME"} {
		t.Setenv(k, "")
	}
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, filepath.Join(dir, "data", "claro", "folders.json"), cfg.DataFile)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "claro:folders", cfg.Redis.Key)
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)

	userPath := UserConfigPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(userPath), 0o755))
	require.NoError(t, os.WriteFile(userPath, []byte(`
data_file = "/from/user.json"
theme = "neon"
log_level = "info"
`), 0o644))

	explicit := filepath.Join(dir, "explicit.toml")
	require.NoError(t, os.WriteFile(explicit, []byte(`
theme = "mono"

[redis]
addr = "cache:6379"
`), 0o644))

	t.Setenv("CLARO_LOG_LEVEL", "debug")

	cfg, err := Load(explicit)
	require.NoError(t, err)
	assert.Equal(t, "/from/user.json", cfg.DataFile)
	assert.Equal(t, "mono", cfg.Theme)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, "claro:folders", cfg.Redis.Key, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config file")
}

func TestLoadBadToml(t *testing.T) {
	dir := isolate(t)
	p := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(p, []byte("theme = "), 0o644))
	_, err := Load(p)
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("CLARO_BACKEND", "REDIS")
	t.Setenv("CLARO_REDIS_ADDR", "r:1")
	t.Setenv("NO_COLOR", "1")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, cfg.Backend)
	assert.Equal(t, "r:1", cfg.Redis.Addr)
	assert.True(t, cfg.NoColor)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.Backend = "sqlite"
	assert.ErrorContains(t, cfg.Validate(), "unknown backend")

	cfg = Defaults()
	cfg.DataFile = ""
	assert.ErrorContains(t, cfg.Validate(), "data_file")
}

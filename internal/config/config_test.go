package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TODOLIST_STORAGE_KEY", "TODOLIST_BACKEND", "TODOLIST_DATA_DIR",
		"TODOLIST_DB", "TODOLIST_THEME", "TODOLIST_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "todos", cfg.StorageKey)
	assert.Equal(t, "file", cfg.Backend)
	assert.Equal(t, "classic", cfg.Theme)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigWithFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "todolist"), 0o755))
	content := `storage_key: groceries
heading: Shopping
backend: sqlite
db_path: /tmp/x.db
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "todolist", "config.yaml"), []byte(content), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "groceries", cfg.StorageKey)
	assert.Equal(t, "Shopping", cfg.Heading)
	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, "warn", cfg.LogLevel, "unset fields keep defaults")
	assert.NoError(t, cfg.Validate())
}

func TestLoadExplicitMissingPath(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	clearEnv(t)
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("storage_key: [unclosed"), 0o644))
	_, err := Load(p)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TODOLIST_STORAGE_KEY", "work")
	t.Setenv("TODOLIST_BACKEND", "memory")
	t.Setenv("TODOLIST_THEME", "neon")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "work", cfg.StorageKey)
	assert.Equal(t, "memory", cfg.Backend)
	assert.Equal(t, "neon", cfg.Theme)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty key", func(c *Config) { c.StorageKey = "" }, true},
		{"bad backend", func(c *Config) { c.Backend = "redis" }, true},
		{"bad theme", func(c *Config) { c.Theme = "rainbow" }, true},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"file without dir", func(c *Config) { c.DataDir = "" }, true},
		{"sqlite without db", func(c *Config) { c.Backend = "sqlite"; c.DBPath = "" }, true},
		{"memory needs nothing", func(c *Config) { c.Backend = "memory"; c.DataDir = ""; c.DBPath = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	clearEnv(t)
	p := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.StorageKey = "saved"
	require.NoError(t, cfg.Save(p))

	got, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "saved", got.StorageKey)
}

func TestSaveIntoFileParent(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := Default().Save(filepath.Join(blocker, "config.yaml"))
	assert.ErrorContains(t, err, "create config dir")
}

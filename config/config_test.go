package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/simplereplay-cli/config"
)

func TestLoadDefaultsExpandPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, filepath.Join(home, ".config", "simplereplay", "config.toml"), resolved)

	dataDir := filepath.Join(home, ".local", "share", "simplereplay")
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dataDir, "data.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dataDir, "docstore.db"), cfg.Server.DBPath)
	assert.Equal(t, config.ProviderSQLite, cfg.Provider)
	assert.Equal(t, "demo-user-001", cfg.UserID)
	assert.Equal(t, 15*time.Second, cfg.SaveTimeout())
	assert.Equal(t, 200*time.Millisecond, cfg.PollInterval())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
provider = "demo"
user_id = "coach"

[cloud]
base_url = "https://docs.example.com/"
save_timeout = 3

[log]
level = "DEBUG"
format = "json"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("SIMPLEREPLAY_USER_ID", "analyst")

	cfg, resolved, exists, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, path, resolved)
	assert.Equal(t, config.ProviderDemo, cfg.Provider)
	assert.Equal(t, "analyst", cfg.UserID)
	assert.Equal(t, "https://docs.example.com", cfg.Cloud.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.SaveTimeout())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cases := map[string]string{
		"provider": `provider = "postgres"`,
		"level":    "[log]\nlevel = \"loud\"",
		"format":   "[log]\nformat = \"xml\"",
		"timeout":  "[cloud]\nsave_timeout = -1",
		"base url": "[cloud]\nbase_url = \"not a url\"",
		"unknown":  `colour = "blue"`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, _, _, err := config.Load(path)
			assert.Error(t, err)
		})
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, config.CreateSample(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, toml.Unmarshal(data, &raw))
	assert.Contains(t, raw, "cloud")

	cfg, _, exists, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, config.Default().Cloud.BaseURL, cfg.Cloud.BaseURL)
}

func TestDefaultConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path, err := config.DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "simplereplay", "config.toml"), path)
}

package cmd

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/simplereplay-cli/docstore"
	"github.com/user/simplereplay-cli/logging"
)

// setupEnv isolates config and data under a temporary home.
func setupEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(home)
	t.Setenv("SIMPLEREPLAY_PROVIDER", "sqlite")
	t.Setenv("SIMPLEREPLAY_LOG_LEVEL", "error")
	return home
}

// run executes one CLI invocation and returns its stdout.
func run(t *testing.T, args ...string) string {
	t.Helper()
	out, err := tryRun(args...)
	require.NoError(t, err, "simplereplay %v\n%s", args, out)
	return out
}

func tryRun(args ...string) (string, error) {
	configPath, providerOverride = "", ""
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestClipWorkflowPersistsBetweenRuns(t *testing.T) {
	setupEnv(t)

	assert.Contains(t, run(t, "game", "add", "Argentina - EEUU", "https://youtu.be/ZabnNjou_PI"), "Game added: Argentina - EEUU")
	assert.Contains(t, run(t, "clip", "add", "salida", "1:00"), "Clip created: Salida @ 1:00 (0:57 → 1:08)")
	run(t, "clip", "add", "gol", "2:00")
	assert.Contains(t, run(t, "clip", "list"), "2 clip(s)")

	run(t, "filter", "tag", "gol")
	assert.Contains(t, run(t, "clip", "list"), "1 clip(s)")
	run(t, "filter", "clear")
	assert.Contains(t, run(t, "clip", "list"), "2 clip(s)")

	run(t, "clip", "select", "1")
	assert.Contains(t, run(t, "flag", "bueno"), "👍")
	assert.Contains(t, run(t, "comment", "add", "buen", "trabajo", "@juan"), "@juan")
	assert.Contains(t, run(t, "comment", "list"), "buen trabajo")

	run(t, "mode", "view")
	assert.Contains(t, run(t, "mode"), "Mode: view")

	run(t, "playlist", "create", "Highlights")
	assert.Contains(t, run(t, "playlist", "add", "Highlights"), "Highlights now has 1 clip(s).")
	assert.Contains(t, run(t, "playlist", "add", "Highlights"), "Highlights now has 1 clip(s).")
	assert.Contains(t, run(t, "playlist", "show", "Highlights"), "Salida")
}

func TestClipCommandsNeedSelection(t *testing.T) {
	setupEnv(t)
	run(t, "game", "add", "Argentina - EEUU", "ZabnNjou_PI")

	_, err := tryRun("comment", "list")
	assert.ErrorIs(t, err, errNoClipSelected)

	_, err = tryRun("clip", "add", "nope", "10")
	assert.ErrorContains(t, err, "unknown tag type")
}

func TestModeRejectsUnknownValue(t *testing.T) {
	setupEnv(t)
	_, err := tryRun("mode", "edit")
	assert.Error(t, err)
}

func TestProjectSaveShareAndOpen(t *testing.T) {
	home := setupEnv(t)

	docs, err := docstore.Open(filepath.Join(home, "docs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { docs.Close() })
	srv := httptest.NewServer(docstore.NewRouter(docstore.ServerConfig{Store: docs, Logger: logging.Discard()}))
	t.Cleanup(srv.Close)

	t.Setenv("SIMPLEREPLAY_CLOUD_URL", srv.URL)
	t.Setenv("SIMPLEREPLAY_SHARE_URL", "https://replay.example/app")

	run(t, "game", "add", "Argentina - EEUU", "ZabnNjou_PI")
	run(t, "clip", "add", "salida", "30")

	saved := run(t, "project", "save")
	m := regexp.MustCompile(`Project saved: (\S+)`).FindStringSubmatch(saved)
	require.Len(t, m, 2, saved)
	id := m[1]
	shareURL := "https://replay.example/app?project=" + id
	assert.Contains(t, saved, shareURL)
	assert.Contains(t, run(t, "project", "share"), shareURL)
	assert.Contains(t, run(t, "project", "list"), id)

	// A second save overwrites the same document.
	assert.Contains(t, run(t, "project", "save"), "Project saved: "+id)

	run(t, "project", "detach")
	_, err = tryRun("project", "share")
	assert.ErrorContains(t, err, "not saved yet")

	// A fresh data directory picks the project up from the link.
	t.Setenv("SIMPLEREPLAY_DATA_DIR", filepath.Join(home, "other"))
	assert.Contains(t, run(t, "open", shareURL), "Loaded project "+id+": 1 game(s), 1 clip(s).")
	assert.Contains(t, run(t, "clip", "list"), "1 clip(s)")

	assert.Contains(t, run(t, "open", "https://replay.example/app"), "keeping the current data")
}

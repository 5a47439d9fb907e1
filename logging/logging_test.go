package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestNewLoggerJSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := WithComponent(NewLogger("info", "json", &buf), "store")
	logger.Debug("hidden")
	logger.Info("clip added", "clip_id", "c1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "clip added", line["msg"])
	assert.Equal(t, "store", line["component"])
	assert.Equal(t, "c1", line["clip_id"])
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	WithRequestID(NewLogger("warn", "text", &buf), "abcd1234").Warn("slow")
	assert.Contains(t, buf.String(), "request_id=abcd1234")
	assert.Contains(t, buf.String(), "msg=slow")
}

func TestSanitizePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	assert.Equal(t, filepath.Join("~", "data.db"), SanitizePath(filepath.Join(home, "data.db")))
	assert.Equal(t, "/tmp/x", SanitizePath("/tmp/x"))
}

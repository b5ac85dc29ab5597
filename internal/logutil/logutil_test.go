package logutil

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(LogConfig{Level: "info", Console: &buf})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("run finished", zap.Int("removed", 3))
	require.NoError(t, closeFn())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "run finished")
	assert.Contains(t, out, `"removed": 3`)
}

func TestNew_File(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "pqsim.log")

	logger, closeFn, err := New(LogConfig{
		Level:      "debug",
		Console:    &buf,
		Filename:   path,
		MaxSize:    1,
		MaxBackups: 1,
	})
	require.NoError(t, err)

	logger.Debug("queue event", zap.String("event", "ADD 1 1 1"))
	require.NoError(t, closeFn())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "queue event", entry["msg"])
	assert.Equal(t, "ADD 1 1 1", entry["event"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(LogConfig{Level: "loud"})
	assert.Error(t, err)
}

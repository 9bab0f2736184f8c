package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/w3mint/internal/logging"
)

func readLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "w3mint.log")
	logger, err := logging.New(logging.Options{Path: path})
	require.NoError(t, err)

	logger.Info("hello", zap.String("k", "v"))
	logger.Debug("hidden")
	require.NoError(t, logger.Sync())

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Equal(t, "hello", lines[0]["msg"])
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "v", lines[0]["k"])
	assert.Contains(t, lines[0], "ts")
}

func TestNewVerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w3mint.log")
	logger, err := logging.New(logging.Options{Path: path, Verbose: true})
	require.NoError(t, err)

	logger.Debug("shown")
	require.NoError(t, logger.Sync())

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Equal(t, "debug", lines[0]["level"])
}

package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := New(Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("visible", Masked("secret", "abcdefgh"))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "****efgh", entry["secret"])
	assert.Contains(t, entry, "timestamp")
}

func TestMaskedShortSecret(t *testing.T) {
	assert.Equal(t, "***", Masked("k", "abc").String)
	assert.Equal(t, "", Masked("k", "").String)
}

func TestInitializeReplacesGlobal(t *testing.T) {
	prev := Logger
	defer func() {
		Logger = prev
		Sugar = prev.Sugar()
	}()

	require.NoError(t, Initialize(Config{Level: "debug", Format: "console", Output: "stderr"}))
	assert.NotSame(t, prev, Logger)
	assert.NotNil(t, Named("test"))
}

func TestNewBadOutput(t *testing.T) {
	_, err := New(Config{Level: "info", Output: filepath.Join(t.TempDir(), "missing", "dir", "out.log")})
	assert.Error(t, err)
}

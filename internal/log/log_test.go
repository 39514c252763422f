package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelInfo, ParseLevel("info"))
	assert.Equal(t, LevelWarn, ParseLevel("warn"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel(""))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
}

func TestLoggingDisabledBeforeInit(t *testing.T) {
	// Must not panic or write anywhere.
	Debug(CatAPI, "dropped %d", 1)
	Error(CatUI, "also dropped")
}

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "codex.log")
	require.NoError(t, Init(path, LevelDebug))
	defer Close()

	Info(CatSession, "hello %s", "world")
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello world")
	assert.Contains(t, string(data), `"category":"session"`)
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codex.log")
	require.NoError(t, Init(path, LevelWarn))
	defer Close()

	Debug(CatAPI, "too quiet")
	Info(CatAPI, "still too quiet")
	Warn(CatAPI, "loud enough")
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.NotContains(t, text, "too quiet")
	assert.Contains(t, text, "loud enough")
	assert.Equal(t, 1, strings.Count(text, "\n"))
}

func TestCloseWithoutInit(t *testing.T) {
	Close()
	Close()
}

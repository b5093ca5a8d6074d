package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diddht/internal/platform/config"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.Log{Level: "warn", Format: "json"}, &buf)

	log.Info("dropped")
	log.Warn("kept", "did", "did:dht:abc")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "diddht", line["service"])
	assert.Equal(t, "did:dht:abc", line["did"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	New(config.Log{Level: "debug", Format: "TEXT"}, &buf).Debug("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelError, parseLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, parseLevel("loud"))
}

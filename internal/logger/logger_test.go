package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(&Config{Level: "info", Format: "json", Output: &buf})

	log.Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "hello", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&Config{Level: "warn", Format: "json", Output: &buf})

	log.Debug("dropped")
	log.Info("dropped too")
	log.Warn("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "kept")
}

func TestNew_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&Config{Level: "verbose", Format: "json", Output: &buf})

	log.Debug("dropped")
	log.Info("kept")

	assert.Contains(t, buf.String(), "kept")
	assert.NotContains(t, buf.String(), "dropped")
}

func TestWith_BindsFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&Config{Level: "debug", Format: "json", Output: &buf})

	child := log.With().Str("op", "list-tables").Int("attempt", 2).Logger()
	child.Error("operation failed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "list-tables", entry["op"])
	assert.Equal(t, float64(2), entry["attempt"])
	assert.Equal(t, "error", entry["level"])
}

func TestWith_Err(t *testing.T) {
	var buf bytes.Buffer
	log := New(&Config{Level: "debug", Format: "json", Output: &buf})

	log.With().Err(errors.New("boom")).Logger().Warn("degraded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "boom", entry[zerolog.ErrorFieldName])
}

func TestFormattedVariants(t *testing.T) {
	var buf bytes.Buffer
	log := New(&Config{Level: "debug", Format: "json", Output: &buf})

	log.Infof("attempt %d of %d", 1, 3)

	assert.Contains(t, buf.String(), "attempt 1 of 3")
}

func TestNew_NilConfigUsesDefaults(t *testing.T) {
	assert.NotPanics(t, func() {
		log := New(nil)
		_ = log
	})
}

func TestNop_Discards(t *testing.T) {
	assert.NotPanics(t, func() {
		log := Nop()
		log.Debug("x")
		log.With().Str("k", "v").Logger().Error("y")
	})
}

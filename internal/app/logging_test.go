package app

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dshills/eventgate/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	log, _, err := NewLogger(config.LogConfig{Level: "info", Format: config.FormatJSON}, &buf)
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("component", "test").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "test", entry["component"])
	assert.Contains(t, entry, "time")
}

func TestNewLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	log, _, err := NewLogger(config.LogConfig{Level: "warn", Format: config.FormatConsole}, &buf)
	require.NoError(t, err)

	log.Info().Msg("hidden")
	log.Warn().Msg("careful")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "careful")
	assert.Contains(t, out, "WRN")
}

func TestNewLoggerBadLevel(t *testing.T) {
	_, _, err := NewLogger(config.LogConfig{Level: "loud"}, nil)
	assert.Equal(t, config.CodeInvalid, config.Code(err))
}

func TestLevelFilterFollowsChildren(t *testing.T) {
	var buf bytes.Buffer
	log, filter, err := NewLogger(config.LogConfig{Level: "error", Format: config.FormatJSON}, &buf)
	require.NoError(t, err)

	child := log.With().Str("component", "gateway").Logger()
	child.Debug().Msg("before")
	assert.Empty(t, buf.String())

	filter.Set(zerolog.DebugLevel)
	child.Debug().Msg("after")
	assert.Contains(t, buf.String(), `"message":"after"`)
	assert.NotContains(t, buf.String(), "before")

	buf.Reset()
	filter.Set(zerolog.WarnLevel)
	child.Info().Msg("quiet")
	log.Warn().Msg("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
	assert.Equal(t, zerolog.WarnLevel, filter.Level())
}

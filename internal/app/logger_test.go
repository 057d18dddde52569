package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Text(t *testing.T) {
	// --- Arrange ---
	var buf bytes.Buffer
	logger, err := newLogger(&Config{LogLevel: "INFO"}, &buf)
	require.NoError(t, err)

	// --- Act ---
	logger.Debug("hidden")
	logger.Info("Evaluated.", "input", "1+1")

	// --- Assert ---
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.NotContains(t, out, "time=")
	assert.Contains(t, out, `level=INFO msg=Evaluated. input=1+1`)
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&Config{LogFormat: "json", LogLevel: "debug"}, &buf)
	require.NoError(t, err)

	logger.Debug("Loaded.", "modules", 4)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "Loaded.", rec["msg"])
	assert.EqualValues(t, 4, rec["modules"])
	assert.Contains(t, rec, "time")
}

func TestNewLogger_Invalid(t *testing.T) {
	_, err := newLogger(&Config{LogFormat: "xml"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, `invalid log format "xml"`)

	_, err = newLogger(&Config{LogLevel: "loud"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, `invalid log level "loud"`)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelWarn,
		"debug": slog.LevelDebug,
		"Info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := parseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

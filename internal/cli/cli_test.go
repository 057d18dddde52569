package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/phasorcalc/internal/app"
)

func TestParse_Defaults(t *testing.T) {
	cfg, exit, err := Parse(nil, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)
	assert.Equal(t, &app.Config{LogFormat: "text", LogLevel: "warn", Precision: -1}, cfg)
}

func TestParse_AllFlags(t *testing.T) {
	args := []string{
		"-c", "pycalc.hcl",
		"-e", "1 + 1",
		"-e", "sqrt(4)",
		"-log-format", "JSON",
		"-log-level", "debug",
		"-history", "h.db",
		"-angle-unit", "deg",
		"-glyph", "unicode",
		"-precision", "4",
		"-no-banner",
		"pi",
	}
	cfg, exit, err := Parse(args, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)
	want := &app.Config{
		ConfigPath:  "pycalc.hcl",
		Expressions: []string{"1 + 1", "sqrt(4)", "pi"},
		LogFormat:   "json",
		LogLevel:    "debug",
		HistoryPath: "h.db",
		AngleUnit:   "deg",
		Glyph:       "unicode",
		Precision:   4,
		NoBanner:    true,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_LongConfigFlagWins(t *testing.T) {
	cfg, _, err := Parse([]string{"-config", "a.hcl", "-c", "b.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "a.hcl", cfg.ConfigPath)
}

func TestParse_Help(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, exit, err := Parse([]string{"-h"}, out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_Errors(t *testing.T) {
	cases := map[string][]string{
		"unknown flag": {"-nope"},
		"log format":   {"-log-format", "xml"},
		"log level":    {"-log-level", "trace"},
		"angle unit":   {"-angle-unit", "gradian"},
		"glyph":        {"-glyph", "fancy"},
		"precision":    {"-precision", "-5"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, exit, err := Parse(args, &bytes.Buffer{})
			require.Error(t, err)
			assert.False(t, exit)

			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr))
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"user@email.com", "u***@email.com"},
		{"a@b.io", "a***@b.io"},
		{"", ""},
		{"no-at-sign", "***"},
		{"@email.com", "***"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskEmail(tt.in))
		})
	}
}

func TestNewWithOptions_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOptions(Options{Level: slog.LevelInfo, Output: &buf})

	logger.Info("saved", "email", "user@email.com", "error", errors.New("boom"))
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "email=u***@email.com")
	assert.NotContains(t, out, "user@email.com")
	assert.Contains(t, out, "err=boom")
	assert.NotContains(t, out, "hidden")
}

func TestNewWithOptions_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOptions(Options{Level: slog.LevelDebug, Format: "json", Output: &buf})

	logger.Debug("saved", "email", "user@email.com")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "saved", entry["msg"])
	assert.Equal(t, "u***@email.com", entry["email"])
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)

	lvl, err = ParseLevel("warning")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NilWriterDiscards(t *testing.T) {
	logger := New(Config{Level: slog.LevelInfo})
	require.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.Info("nobody hears this") })
}

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{format: "json", want: `"msg":"surah loaded"`},
		{format: "JSON", want: `"msg":"surah loaded"`},
		{format: "text", want: `msg="surah loaded"`},
		{format: "", want: `msg="surah loaded"`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Writer: &buf, Format: tt.format, Level: slog.LevelInfo})
			logger.Info("surah loaded", "chapter", 1)

			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), "chapter")
		})
	}
}

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Writer: &buf, Format: "json", Level: slog.LevelWarn})

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "warad-t.log")

	logger, err := NewFile(path, Config{Format: "json", Level: slog.LevelDebug})
	require.NoError(t, err)
	logger.Debug("first")
	require.NoError(t, logger.Close())

	// Reopening appends.
	logger, err = NewFile(path, Config{Format: "json", Level: slog.LevelDebug})
	require.NoError(t, err)
	logger.Debug("second")
	require.NoError(t, logger.Close())
	assert.NoError(t, logger.Close(), "second close is a no-op")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Writer: &buf, Format: "json", Level: slog.LevelInfo})

	logger.WithError(errors.New("disk full")).Error("failed to save last read position")
	assert.Contains(t, buf.String(), `"error":"disk full"`)
}

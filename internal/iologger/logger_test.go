package iologger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmikk/adegenet/pkg/config"
	"github.com/vmikk/adegenet/pkg/errcode"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in  string
		out slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"trace", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, parseLevel(tt.in), tt.in)
	}
}

func TestInitFile(t *testing.T) {
	orig := slog.Default()
	t.Cleanup(func() { slog.SetDefault(orig) })

	dir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "debug", Destination: "file"}
	require.NoError(t, Init(dir, cfg))

	slog.Debug("grid built", "points", 2000)

	data, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"grid built"`)
	assert.Contains(t, string(data), `"points":2000`)
}

func TestInitMissingDir(t *testing.T) {
	orig := slog.Default()
	t.Cleanup(func() { slog.SetDefault(orig) })

	dir := filepath.Join(t.TempDir(), "nope")
	err := Init(dir, config.LogConfig{Destination: "file"})
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
}

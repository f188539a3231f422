package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected slog.Level
	}{
		{"trace", LevelTrace},
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.in))
		})
	}
}

func TestSetupLoggerSplitsConsoleStreams(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, closers, err := setupLogger(&stdout, &stderr, "info", "")
	require.NoError(t, err)
	assert.Empty(t, closers)

	logger.Debug("hidden")
	logger.Info("progress", "entries", 3)
	logger.Error("boom")

	assert.Contains(t, stdout.String(), "msg=progress entries=3")
	assert.NotContains(t, stdout.String(), "hidden")
	assert.NotContains(t, stdout.String(), "boom")
	assert.Contains(t, stderr.String(), "msg=boom")
	assert.NotContains(t, stderr.String(), "progress")
}

func TestSetupLoggerTraceAndFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "gen.log")

	logger, closers, err := setupLogger(&stdout, &stderr, "trace", path)
	require.NoError(t, err)
	require.Len(t, closers, 1)

	logger.Log(t.Context(), LevelTrace, "very verbose")
	require.NoError(t, closers[0].Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "level=TRACE")
	assert.Contains(t, stderr.String(), "very verbose")
	assert.Empty(t, stdout.String())
}

func TestRawLogger(t *testing.T) {
	var buf bytes.Buffer
	raw := NewRaw(&buf)

	raw.Log(true, []byte("#include <drm/drm_fourcc.h>\n"))
	raw.Log(false, []byte("#define DRM_FORMAT_C8 1"))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "-> stdin: 28 bytes")
	assert.Equal(t, "#include <drm/drm_fourcc.h>", lines[1])
	assert.Contains(t, lines[2], "<- stdout: 23 bytes")
	assert.Equal(t, "#define DRM_FORMAT_C8 1", lines[3])

	assert.NotPanics(t, func() { NewRaw(nil).Log(true, []byte("x")) })
}

package logging

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileHandler_LineFormat(t *testing.T) {
	var buf strings.Builder
	h := newFileHandler(&buf, &Redactor{})
	logger := slog.New(h)

	logger.Info("config merged", "server", "desktop-commander")

	line := strings.TrimSuffix(buf.String(), "\n")
	parts := strings.SplitN(line, " ", 2)
	require.Len(t, parts, 2)

	_, err := time.Parse(time.RFC3339, parts[0])
	assert.NoError(t, err, "line must start with an RFC 3339 timestamp")
	assert.Equal(t, "config merged server=desktop-commander", parts[1])
}

func TestFileHandler_ErrorMarker(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(newFileHandler(&buf, &Redactor{}))

	logger.Error("persist failed")
	assert.Contains(t, buf.String(), " ERROR: persist failed")
}

func TestFileHandler_RedactsLines(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(newFileHandler(&buf, &Redactor{home: "/home/alice"}))

	logger.Error("persist failed", "path", "/home/alice/.config/Claude/claude_desktop_config.json")
	assert.NotContains(t, buf.String(), "/home/alice")
	assert.Contains(t, buf.String(), "[path]")
}

func TestFileHandler_WithAttrs(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(newFileHandler(&buf, &Redactor{})).With("run_id", "abc123")

	logger.Info("starting")
	assert.Contains(t, buf.String(), "run_id=abc123")
}

func TestMultiHandler_FansOut(t *testing.T) {
	var a, b strings.Builder
	h := multiHandler{
		newFileHandler(&a, &Redactor{}),
		newFileHandler(&b, &Redactor{}),
	}
	require.True(t, h.Enabled(context.Background(), slog.LevelInfo))

	slog.New(h).Info("hello")
	assert.Contains(t, a.String(), "hello")
	assert.Contains(t, b.String(), "hello")
}

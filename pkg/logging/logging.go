// Package logging wires the console logger and the diagnostic log file
// behind a single slog front. Console output goes through
// charmbracelet/log; the file sink writes plain timestamped lines to a
// rotated file under the tool's home directory, with path fragments and
// secrets redacted.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ToolDir is the per-user directory holding the diagnostic log and
// optional settings file.
const ToolDir = ".desktop-commander"

// Options configures New.
type Options struct {
	Debug    bool
	Console  io.Writer // defaults to os.Stderr
	FilePath string    // defaults to DefaultLogPath(); NoFile disables
	NoFile   bool
}

// DefaultLogPath returns ~/.desktop-commander/setup.log.
func DefaultLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ToolDir, "setup.log"), nil
}

// New builds the run logger. File sink failures degrade to console-only
// logging; setup must not abort because a log file is unavailable.
func New(opts Options) *slog.Logger {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	level := log.InfoLevel
	if opts.Debug {
		level = log.DebugLevel
	}
	ch := log.NewWithOptions(console, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           level,
	})

	handlers := []slog.Handler{ch}
	if !opts.NoFile {
		path := opts.FilePath
		if path == "" {
			p, err := DefaultLogPath()
			if err == nil {
				path = p
			}
		}
		if path != "" {
			sink := &lumberjack.Logger{
				Filename:   path,
				MaxSize:    5, // megabytes
				MaxBackups: 2,
				MaxAge:     30, // days
			}
			handlers = append(handlers, newFileHandler(sink, NewRedactor()))
		}
	}

	return slog.New(multiHandler(handlers))
}

// Discard returns a logger that drops everything. For tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// multiHandler fans records out to every child handler.
type multiHandler []slog.Handler

func (m multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range m {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(multiHandler, len(m))
	for i, h := range m {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (m multiHandler) WithGroup(name string) slog.Handler {
	out := make(multiHandler, len(m))
	for i, h := range m {
		out[i] = h.WithGroup(name)
	}
	return out
}

// fileHandler writes one line per event: an RFC 3339 timestamp, an
// ERROR: marker for error-level records, the message, then key=value
// attrs. Lines pass through the redactor before hitting disk.
type fileHandler struct {
	w        io.Writer
	redactor *Redactor
	attrs    []slog.Attr
}

func newFileHandler(w io.Writer, r *Redactor) *fileHandler {
	return &fileHandler{w: w, redactor: r}
}

func (h *fileHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelDebug
}

func (h *fileHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Time.UTC().Format(time.RFC3339))
	b.WriteByte(' ')
	if r.Level >= slog.LevelError {
		b.WriteString("ERROR: ")
	}
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	})

	line := h.redactor.Redact(b.String())
	_, err := io.WriteString(h.w, line+"\n")
	return err
}

func (h *fileHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &fileHandler{w: h.w, redactor: h.redactor, attrs: merged}
}

func (h *fileHandler) WithGroup(string) slog.Handler {
	// Groups are flattened; the file log is a plain line format.
	return h
}

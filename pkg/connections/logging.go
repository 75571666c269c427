package connections

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Structured outcome logging. Records carry a level, a message and key-value
// context (config path, connection name, rejected input, ...). The sink is
// whatever slog handler the caller wires in; these helpers cover the two
// common cases: discard everything, or append to a local file.

const defaultLogFilename = "pve-connect.log"

// DiscardLogger returns a logger that drops every record. It is the default
// for Selector so that logging can never affect selection results.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// DefaultLogPath returns the default log file location under the app config
// directory.
func DefaultLogPath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultLogFilename), nil
}

// NewFileLogger opens path for appending and returns a debug-level
// text-handler logger writing to it, plus a close function. If the file
// cannot be opened the returned logger discards records and close is a
// no-op: a broken log sink must never break the selection flow.
func NewFileLogger(path string) (*slog.Logger, func() error) {
	nop := func() error { return nil }

	path = expandPath(strings.TrimSpace(path))
	if path == "" {
		return DiscardLogger(), nop
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return DiscardLogger(), nop
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return DiscardLogger(), nop
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), f.Close
}

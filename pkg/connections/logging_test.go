package connections

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFileLoggerWritesRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pve-connect.log")

	logger, closeLog := NewFileLogger(path)
	logger.Info("connection selected", "connection", "prod", "index", 1)
	if err := closeLog(); err != nil {
		t.Fatalf("close log: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{"level=INFO", "connection selected", "connection=prod", "index=1"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("expected log to contain %q, got:\n%s", want, data)
		}
	}
}

func TestNewFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pve-connect.log")

	logger, closeLog := NewFileLogger(path)
	logger.Info("first")
	_ = closeLog()

	logger, closeLog = NewFileLogger(path)
	logger.Info("second")
	_ = closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "first") || !strings.Contains(string(data), "second") {
		t.Fatalf("expected both records, got:\n%s", data)
	}
}

func TestNewFileLoggerUnopenablePathDiscards(t *testing.T) {
	// Parent "dir" is a regular file, so MkdirAll must fail.
	parent := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(parent, []byte("x"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	logger, closeLog := NewFileLogger(filepath.Join(parent, "pve-connect.log"))
	logger.Info("dropped")
	if err := closeLog(); err != nil {
		t.Fatalf("expected no-op close, got %v", err)
	}
}

func TestDefaultLogPathUnderConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	path, err := DefaultLogPath()
	if err != nil {
		t.Fatalf("default log path: %v", err)
	}
	want := filepath.Join("/tmp/xdg", defaultConfigDirName, defaultLogFilename)
	if path != want {
		t.Fatalf("expected %q, got %q", want, path)
	}
}

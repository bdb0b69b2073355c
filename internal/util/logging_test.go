package util

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "seedx.log")
	logger, err := NewLogger(path, "info", false)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	LogError(logger, "fetch treasury balance", errors.New("boom"))
	logger.Debug("hidden at info level")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "fetch treasury balance") || !strings.Contains(out, "boom") {
		t.Fatalf("expected error entry, got %q", out)
	}
	if strings.Contains(out, "hidden at info level") {
		t.Fatalf("debug entry should be filtered at info level")
	}
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	if _, err := NewLogger(filepath.Join(t.TempDir(), "x.log"), "loud", false); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}

func TestNewLoggerEmptyPathIsNop(t *testing.T) {
	logger, err := NewLogger("", "", true)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	LogError(logger, "ignored", errors.New("x"))
	LogError(nil, "ignored", errors.New("x"))
}

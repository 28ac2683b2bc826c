package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testConfig struct {
	level string
	file  string
}

func (c testConfig) GetLogLevel() string { return c.level }
func (c testConfig) GetLogFile() string  { return c.file }

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nowplaying.log")

	logger, err := New(testConfig{level: "info", file: path}, "stderr")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	logger.Info("Test logger initialization")
	logger.Debug("filtered out")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "Test logger initialization") {
		t.Errorf("expected info message in log, got: %s", data)
	}
	if strings.Contains(string(data), "filtered out") {
		t.Error("debug message should be filtered at info level")
	}
}

func TestNew_DisabledWithoutOutput(t *testing.T) {
	logger, err := New(testConfig{level: "info"}, "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if logger.Core().Enabled(0) {
		t.Error("expected a no-op logger")
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(testConfig{level: "loud"}, "stderr"); err == nil {
		t.Error("Expected error for invalid level, got nil")
	}
}

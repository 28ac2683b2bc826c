package config

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	defaultLogLevel = "info"
	defaultLogFile  = ""
)

// AppConfig holds diagnostic settings. Plugin behavior itself is fixed.
type AppConfig struct {
	logLevel string
	logFile  string
}

// NewAppConfig reads the configuration from the environment
func NewAppConfig() *AppConfig {
	// Read from environment variables or use defaults
	logLevel := strings.ToLower(strings.TrimSpace(os.Getenv("NOWPLAYING_LOG_LEVEL")))
	if logLevel == "" {
		logLevel = defaultLogLevel
	}

	logFile := os.Getenv("NOWPLAYING_LOG_FILE")
	if logFile == "" {
		logFile = defaultLogFile
	}

	return &AppConfig{
		logLevel: logLevel,
		logFile:  expandPath(logFile),
	}
}

// expandPath expands environment variables and a leading ~
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return p
}

// Log records the loaded configuration
func (c *AppConfig) Log(logger *zap.Logger) {
	logger.Info("Configuration loaded",
		zap.String("logLevel", c.logLevel),
		zap.String("logFile", c.logFile))
}

// GetLogLevel returns the minimum enabled log level
func (c *AppConfig) GetLogLevel() string {
	return c.logLevel
}

// GetLogFile returns the log destination, empty when unset
func (c *AppConfig) GetLogFile() string {
	return c.logFile
}

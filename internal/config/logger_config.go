package config

import (
	"fmt"
	"strings"
)

type logLevel string

// Accepted log levels
const (
	LevelInfo    logLevel = "INFO"
	LevelDebug   logLevel = "DEBUG"
	LevelWarning logLevel = "WARNING"
	LevelError   logLevel = "ERROR"
	LevelFatal   logLevel = "FATAL"
)

// LoggerConfig configures the process logger
type LoggerConfig struct {
	LogLevel   logLevel `mapstructure:"log_level"`
	OutputFile string   `mapstructure:"output_file"`
}

func (config LoggerConfig) validate() error {
	switch logLevel(strings.ToUpper(string(config.LogLevel))) {
	case LevelInfo, LevelDebug, LevelWarning, LevelError, LevelFatal:
		return nil
	}
	return fmt.Errorf("invalid log_level %q", config.LogLevel)
}

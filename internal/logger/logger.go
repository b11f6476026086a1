// Package logger configures the process-wide logrus logger.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"jobboard-backend/internal/config"
	"jobboard-backend/internal/metrics"
)

// ErrorTypeField is the entry field the prometheus hook labels errors by
const ErrorTypeField = "error_type"

// Error types
const (
	ErrorTypeDb           = "db"
	ErrorTypeAuth         = "auth"
	ErrorTypeNotification = "notification"
	ErrorTypeScheduler    = "scheduler"
	ErrorTypeHTTP         = "http"
)

var logFile *os.File

type prometheusHook struct{}

func (h *prometheusHook) Fire(entry *log.Entry) error {
	errorType, ok := entry.Data[ErrorTypeField].(string)
	if !ok {
		errorType = "unknown"
	}

	metrics.ErrorsCounter.WithLabelValues(errorType).Inc()
	return nil
}

func (h *prometheusHook) Levels() []log.Level {
	return []log.Level{
		log.ErrorLevel,
		log.FatalLevel,
		log.PanicLevel,
	}
}

// Setup applies cfg to the standard logrus logger.
func Setup(cfg config.LoggerConfig) {
	var out io.Writer = os.Stdout

	if cfg.OutputFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.OutputFile), 0o755); err != nil {
			log.Fatalf("Failed to create log directory: %v", err)
		}
		f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		logFile = f
		out = io.MultiWriter(os.Stdout, f)
	}
	log.SetOutput(out)

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000 -0700",
	})
	log.AddHook(&prometheusHook{})
	log.SetLevel(ParseLevel(string(cfg.LogLevel)))
}

// ParseLevel maps a configured level name onto a logrus level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToUpper(level) {
	case string(config.LevelDebug):
		return log.DebugLevel
	case string(config.LevelWarning):
		return log.WarnLevel
	case string(config.LevelError):
		return log.ErrorLevel
	case string(config.LevelFatal):
		return log.FatalLevel
	}
	return log.InfoLevel
}

// Cleanup closes the log file if Setup opened one
func Cleanup() {
	if logFile != nil {
		_ = logFile.Close()
	}
}

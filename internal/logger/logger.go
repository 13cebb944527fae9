// Package logger owns the process-wide slog logger. The CLI logs to stderr;
// the TUI must log to a file because stderr is the screen.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects where and how the logger writes.
type Config struct {
	Level   string
	Format  string
	File    string
	TUIMode bool
}

var (
	mu        sync.RWMutex
	logger    *slog.Logger
	logLevel  slog.Level
	logFormat string
	logFile   string
	tuiMode   bool
	sink      io.WriteCloser
	once      sync.Once
)

// newSink opens the rotating log file.
var newSink = func(file string) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}
}

// ErrTUILogging is returned when the TUI cannot get a log file.
var ErrTUILogging = errors.New("TUI mode requires file-based logging")

func init() {
	Initialize()
}

// Initialize sets up stderr logging from LOG_LEVEL, QEYDAR_DEBUG and
// LOG_FORMAT. Only the first call has an effect.
func Initialize() {
	once.Do(func() {
		_ = InitializeWithConfig(ConfigFromEnv())
	})
}

// ConfigFromEnv reads the logging environment variables.
func ConfigFromEnv() Config {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		switch os.Getenv("QEYDAR_DEBUG") {
		case "1", "true":
			level = "DEBUG"
		default:
			level = "INFO"
		}
	}
	return Config{
		Level:  level,
		Format: os.Getenv("LOG_FORMAT"),
	}
}

// InitializeWithConfig replaces the global logger. In TUI mode without an
// explicit file it logs to ~/.qeydar/logs/qeydar.log.
func InitializeWithConfig(cfg Config) error {
	level := parseLevel(cfg.Level)
	format := strings.ToLower(cfg.Format)
	if format == "" {
		format = "text"
	}

	file := cfg.File
	if file == "" && cfg.TUIMode {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrTUILogging, err)
		}
		file = filepath.Join(home, ".qeydar", "logs", "qeydar.log")
	}

	var (
		out  io.Writer = os.Stderr
		next io.WriteCloser
	)
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			if cfg.TUIMode {
				return fmt.Errorf("%w: %v", ErrTUILogging, err)
			}
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		next = newSink(file)
		out = next
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	mu.Lock()
	prev := sink
	logger = slog.New(handler)
	logLevel = level
	logFormat = format
	logFile = file
	tuiMode = cfg.TUIMode
	sink = next
	mu.Unlock()

	if prev != nil {
		_ = prev.Close()
	}
	return nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Close flushes and closes the log file, if any. It is safe to call twice.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if sink == nil {
		return nil
	}
	return sink.Close()
}

func GetLogger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func GetLevel() slog.Level {
	mu.RLock()
	defer mu.RUnlock()
	return logLevel
}

func GetFormat() string {
	mu.RLock()
	defer mu.RUnlock()
	return logFormat
}

func GetLogFile() string {
	mu.RLock()
	defer mu.RUnlock()
	return logFile
}

func IsTUIMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return tuiMode
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

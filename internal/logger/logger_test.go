package logger

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"
)

// restoreLogger puts the global logger back on stderr when the test ends.
func restoreLogger(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		_ = InitializeWithConfig(Config{Level: "INFO"})
	})
}

type trackingSink struct {
	io.WriteCloser
	closed int
}

func (s *trackingSink) Close() error {
	s.closed++
	return s.WriteCloser.Close()
}

// trackSinks records every sink opened until the test ends.
func trackSinks(t *testing.T) *[]*trackingSink {
	t.Helper()
	orig := newSink
	var sinks []*trackingSink
	newSink = func(file string) io.WriteCloser {
		s := &trackingSink{WriteCloser: orig(file)}
		sinks = append(sinks, s)
		return s
	}
	t.Cleanup(func() { newSink = orig })
	return &sinks
}

func currentSink() io.WriteCloser {
	mu.RLock()
	defer mu.RUnlock()
	return sink
}

func TestTUIModeWritesToRotatingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	restoreLogger(t)

	require.NoError(t, InitializeWithConfig(Config{Level: "DEBUG", TUIMode: true}))

	want := filepath.Join(home, ".qeydar", "logs", "qeydar.log")
	assert.Equal(t, want, GetLogFile())
	assert.True(t, IsTUIMode())
	assert.Equal(t, slog.LevelDebug, GetLevel())
	assert.Equal(t, "text", GetFormat())

	lj, ok := currentSink().(*lumberjack.Logger)
	require.True(t, ok, "TUI mode logs through lumberjack, got %T", currentSink())
	assert.Equal(t, want, lj.Filename)
	assert.Equal(t, 10, lj.MaxSize)
	assert.Equal(t, 3, lj.MaxBackups)

	Debug("picker: event", "event", "focus_gained")
	require.NoError(t, Close())

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Contains(t, string(data), "picker: event")
	assert.Contains(t, string(data), "event=focus_gained")
}

func TestExplicitFileWritesJSON(t *testing.T) {
	restoreLogger(t)
	file := filepath.Join(t.TempDir(), "nested", "qd.log")

	require.NoError(t, InitializeWithConfig(Config{Level: "info", Format: "JSON", File: file}))
	assert.Equal(t, "json", GetFormat())
	assert.False(t, IsTUIMode())

	Debug("dropped below level")
	Info("emission recorded", "calendar", "jalali")
	require.NoError(t, Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "emission recorded", entry["msg"])
	assert.Equal(t, "jalali", entry["calendar"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestReinitializeClosesPreviousSink(t *testing.T) {
	restoreLogger(t)
	sinks := trackSinks(t)
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	require.NoError(t, InitializeWithConfig(Config{File: first}))
	Info("to first")

	require.NoError(t, InitializeWithConfig(Config{File: second}))
	require.Len(t, *sinks, 2)
	assert.Equal(t, 1, (*sinks)[0].closed, "the replaced sink is closed")
	assert.Equal(t, 0, (*sinks)[1].closed)
	Info("to second")

	require.NoError(t, InitializeWithConfig(Config{Level: "INFO"}))
	assert.Equal(t, 1, (*sinks)[1].closed, "switching back to stderr closes the file")
	assert.Nil(t, currentSink())

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to first")
	assert.NotContains(t, string(data), "to second")

	data, err = os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to second")
}

func TestLogDirectoryFailure(t *testing.T) {
	restoreLogger(t)
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	before := GetLogger()

	t.Setenv("HOME", blocker)
	err := InitializeWithConfig(Config{TUIMode: true})
	require.ErrorIs(t, err, ErrTUILogging)
	assert.Same(t, before, GetLogger(), "a failed init keeps the previous logger")

	err = InitializeWithConfig(Config{TUIMode: true, File: filepath.Join(blocker, "logs", "qd.log")})
	assert.ErrorIs(t, err, ErrTUILogging)

	err = InitializeWithConfig(Config{File: filepath.Join(blocker, "logs", "qd.log")})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTUILogging)
	assert.Contains(t, err.Error(), "failed to create log directory")

	t.Setenv("HOME", "")
	err = InitializeWithConfig(Config{TUIMode: true})
	assert.ErrorIs(t, err, ErrTUILogging, "no home directory")
}

func TestCloseIsIdempotent(t *testing.T) {
	restoreLogger(t)

	require.NoError(t, InitializeWithConfig(Config{}))
	assert.NoError(t, Close(), "stderr has nothing to close")

	require.NoError(t, InitializeWithConfig(Config{File: filepath.Join(t.TempDir(), "qd.log")}))
	Info("before close")
	assert.NoError(t, Close())
	assert.NoError(t, Close())
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"DEBUG":   slog.LevelDebug,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"WARNING": slog.LevelWarn,
		"Error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("QEYDAR_DEBUG", "")
	t.Setenv("LOG_FORMAT", "")
	assert.Equal(t, Config{Level: "INFO"}, ConfigFromEnv())

	t.Setenv("QEYDAR_DEBUG", "1")
	t.Setenv("LOG_FORMAT", "json")
	assert.Equal(t, Config{Level: "DEBUG", Format: "json"}, ConfigFromEnv())

	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, "warn", ConfigFromEnv().Level, "LOG_LEVEL wins over QEYDAR_DEBUG")
}

func TestConcurrentReinitialize(t *testing.T) {
	restoreLogger(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = InitializeWithConfig(Config{Level: "ERROR"})
		}()
		go func() {
			defer wg.Done()
			Debug("filtered", "level", GetLevel(), "format", GetFormat())
			_ = GetLogFile()
			_ = IsTUIMode()
		}()
	}
	wg.Wait()

	assert.Equal(t, slog.LevelError, GetLevel())
	assert.NotNil(t, GetLogger())
}

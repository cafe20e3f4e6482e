package logger

import (
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/torch-corp/glare/internal/cache"
)

var (
	defaultLogger *slog.Logger
	once          sync.Once
)

// Get returns the global logger instance, initializing it once
func Get() *slog.Logger {
	once.Do(func() {
		defaultLogger = initLogger()
	})
	return defaultLogger
}

// initLogger creates the global logger that writes to glare.log in the cache directory.
// Uses lumberjack so the file is rotated once it reaches 1 MB.
// Every record carries a per-invocation run id so interleaved runs can be told apart.
// If the cache directory cannot be determined, returns a logger that discards all output
func initLogger() *slog.Logger {
	cacheDir, err := cache.GetCacheDir()
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	logWriter := &lumberjack.Logger{
		Filename:   filepath.Join(cacheDir, "glare.log"),
		MaxSize:    1,
		MaxBackups: 0,
		MaxAge:     0,
		Compress:   false,
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	return slog.New(handler).With("run", uuid.NewString())
}

package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Config holds the logging settings shared by every component logger.
type Config struct {
	// Level is the minimum level: "debug", "info", "warn" or "error".
	Level string
	// Format is "text" or "json".
	Format string
	// Output defaults to stderr.
	Output io.Writer
}

var (
	config     = Config{Level: "info", Format: "text"}
	configLock sync.Mutex
)

// Configure sets the global logging configuration. Loggers obtained earlier keep their settings.
func Configure(cfg Config) {
	configLock.Lock()
	defer configLock.Unlock()

	config = cfg
	slog.SetLogLoggerLevel(ParseLevel(cfg.Level))
}

// GetLogger returns a logger tagged with the component name.
func GetLogger(name string) *slog.Logger {
	configLock.Lock()
	cfg := config
	configLock.Unlock()

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler).With("logger", name)
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

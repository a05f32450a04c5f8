package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	slogmulti "github.com/samber/slog-multi"
)

// Logger wraps slog.Logger with cleanup of the files it writes to.
type Logger struct {
	*slog.Logger
	cleanupFuncs []func() error
}

// Close runs every cleanup and reports all failures together.
func (l *Logger) Close() error {
	var result *multierror.Error
	for _, cleanup := range l.cleanupFuncs {
		if err := cleanup(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// With returns a new logger with additional attributes
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger:       l.Logger.With(args...),
		cleanupFuncs: l.cleanupFuncs,
	}
}

// Option configures a logger
type Option func(*config) error

type config struct {
	level        slog.Level
	console      []io.Writer
	files        []io.Writer
	cleanupFuncs []func() error
}

// New creates a logger. Console output is human-readable text; file output
// is JSON. With no outputs configured it logs text to stderr.
func New(opts ...Option) (*Logger, error) {
	cfg := &config{
		level: slog.LevelInfo,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			for _, cleanup := range cfg.cleanupFuncs {
				_ = cleanup()
			}
			return nil, err
		}
	}

	if len(cfg.console) == 0 && len(cfg.files) == 0 {
		cfg.console = []io.Writer{os.Stderr}
	}

	hopts := &slog.HandlerOptions{Level: cfg.level}
	var handlers []slog.Handler
	if len(cfg.console) > 0 {
		handlers = append(handlers, slog.NewTextHandler(io.MultiWriter(cfg.console...), hopts))
	}
	if len(cfg.files) > 0 {
		handlers = append(handlers, slog.NewJSONHandler(io.MultiWriter(cfg.files...), hopts))
	}

	return &Logger{
		Logger:       slog.New(slogmulti.Fanout(handlers...)),
		cleanupFuncs: cfg.cleanupFuncs,
	}, nil
}

// Level sets the log level
func Level(level slog.Level) Option {
	return func(c *config) error {
		c.level = level
		return nil
	}
}

// Debug sets debug level
func Debug() Option {
	return Level(slog.LevelDebug)
}

// Console logs text to w
func Console(w io.Writer) Option {
	return func(c *config) error {
		c.console = append(c.console, w)
		return nil
	}
}

// File appends JSON logs to path (path is required)
func File(path string) Option {
	return func(c *config) error {
		if path == "" {
			return fmt.Errorf("log file path is required")
		}

		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %q: %w", path, err)
		}

		c.files = append(c.files, file)
		c.cleanupFuncs = append(c.cleanupFuncs, file.Close)
		return nil
	}
}

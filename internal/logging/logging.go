package logging

import (
	"context"
	"io"
	"log/slog"
	"slices"

	"github.com/padtext/pad/internal/pubsub"
	"github.com/padtext/pad/internal/resource"
	"golang.org/x/exp/maps"
)

const DefaultLevel = "info"

var levels = map[string]slog.Level{
	"debug":      slog.LevelDebug,
	DefaultLevel: slog.LevelInfo,
	"warn":       slog.LevelWarn,
	"error":      slog.LevelError,
}

// ValidLevels returns valid strings for choosing a log level. Returns the
// default log level first.
func ValidLevels() []string {
	keys := maps.Keys(levels)
	slices.SortFunc(keys, func(a, b string) int {
		if a == DefaultLevel {
			return -1
		}
		if b == DefaultLevel {
			return 1
		}
		// Sort remaining in alphabetical order.
		if a < b {
			return -1
		}
		return 1
	})
	return keys
}

// Interface is the logging interface accepted by pad services.
type Interface interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type Options struct {
	// The log level of the logger
	Level string
	// Any additional writers the log handler should write to.
	AdditionalWriters []io.Writer
}

// Logger wraps slog, keeping log records in memory and emitting them as pad
// events.
type Logger struct {
	*slog.Logger

	writer *writer
	broker *pubsub.Broker[Message]
}

// NewLogger constructs Logger, a slog wrapper with additional functionality.
func NewLogger(opts Options) *Logger {
	logger := &Logger{}
	// The broker must not log via this logger: it publishes while the writer
	// holds its lock.
	logger.broker = pubsub.NewBroker[Message](nil)
	logger.writer = &writer{broker: logger.broker}

	level, ok := levels[opts.Level]
	if !ok {
		level = levels[DefaultLevel]
	}
	handler := slog.NewTextHandler(
		io.MultiWriter(append(opts.AdditionalWriters, logger.writer)...),
		&slog.HandlerOptions{Level: level},
	)
	logger.Logger = slog.New(handler)

	return logger
}

// Messages lists the log messages received thus far.
func (l *Logger) Messages() []Message {
	return l.writer.list()
}

// Subscribe to log messages.
func (l *Logger) Subscribe(ctx context.Context) <-chan resource.Event[Message] {
	return l.broker.Subscribe(ctx)
}

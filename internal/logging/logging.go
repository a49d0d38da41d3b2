package logging

import (
	"io"
	"log/slog"
	"slices"

	"github.com/leg100/postie/internal/pubsub"
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

// Interface is the logging interface shared by services.
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

// Logger wraps slog, keeping log records in memory and emitting them as
// events.
type Logger struct {
	*slog.Logger
	*pubsub.Broker[Message]

	writer *writer
}

// NewLogger constructs Logger with the given options.
func NewLogger(opts Options) *Logger {
	logger := &Logger{}
	// A full subscriber cannot be reported through the logger whose records
	// it is subscribed to.
	logger.Broker = pubsub.NewBroker[Message](Discard)
	logger.writer = &writer{pub: logger.Broker}

	handler := slog.NewTextHandler(
		io.MultiWriter(append(opts.AdditionalWriters, logger.writer)...),
		&slog.HandlerOptions{
			Level: levels[opts.Level],
		},
	)
	logger.Logger = slog.New(handler)
	return logger
}

// Messages lists the log messages received thus far.
func (l *Logger) Messages() []Message {
	return l.writer.list()
}

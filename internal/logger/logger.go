package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configures a Logger. A nil Output writes to stdout.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

type implLogger struct {
	zl zerolog.Logger
}

// New creates a text Logger on stdout at the given level.
func New(level string) Logger {
	return NewWithOptions(Options{Level: level, Format: FormatText})
}

// NewWithOptions creates a Logger backed by zerolog. Unknown levels fall
// back to info.
func NewWithOptions(opts Options) Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var zl zerolog.Logger
	if strings.ToLower(opts.Format) == FormatJSON {
		zl = zerolog.New(out)
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: time.DateTime})
	}

	return &implLogger{zl: zl.Level(parseLevel(opts.Level)).With().Timestamp().Logger()}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}

func (l *implLogger) enabled(level zerolog.Level) bool {
	return level >= l.zl.GetLevel()
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	if l.enabled(zerolog.DebugLevel) {
		l.zl.Debug().Msgf(msg, args...)
	}
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.enabled(zerolog.InfoLevel) {
		l.zl.Info().Msgf(msg, args...)
	}
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.enabled(zerolog.WarnLevel) {
		l.zl.Warn().Msgf(msg, args...)
	}
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.enabled(zerolog.ErrorLevel) {
		l.zl.Error().Msgf(msg, args...)
	}
}

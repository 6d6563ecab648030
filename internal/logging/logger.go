// Package logging provides the simulator's ambient diagnostic logger:
// a small leveled surface (Debug/Info/Warn/Error plus Printf-style
// convenience methods) backed by zerolog, with a process-global default.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// LogLevel mirrors zerolog.Level under names call sites can use without
// knowing the backing library.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Config holds logging configuration.
type Config struct {
	Level  LogLevel
	Output io.Writer
}

// DefaultConfig returns a sensible default configuration: Info level,
// human-readable console output on stderr.
func DefaultConfig() *Config {
	return &Config{
		Level:  LevelInfo,
		Output: os.Stderr,
	}
}

// Logger wraps a zerolog.Logger with the simulator's leveled surface.
type Logger struct {
	z zerolog.Logger
}

var (
	defaultLogger *Logger
	mu            sync.RWMutex
)

// NewLogger creates a new logger writing human-readable console lines.
func NewLogger(config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}
	output := config.Output
	if output == nil {
		output = os.Stderr
	}
	cw := zerolog.ConsoleWriter{Out: output, TimeFormat: "15:04:05.000", NoColor: !isTerminal(output)}
	z := zerolog.New(cw).Level(config.Level.zerolog()).With().Timestamp().Logger()
	return &Logger{z: z}
}

// Default returns the process-wide default logger, creating it lazily.
func Default() *Logger {
	mu.RLock()
	if defaultLogger != nil {
		defer mu.RUnlock()
		return defaultLogger
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewLogger(nil)
	}
	return defaultLogger
}

// SetDefault replaces the process-wide default logger.
func SetDefault(logger *Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = logger
}

func (l *Logger) event(lvl LogLevel) *zerolog.Event {
	switch lvl {
	case LevelDebug:
		return l.z.Debug()
	case LevelWarn:
		return l.z.Warn()
	case LevelError:
		return l.z.Error()
	default:
		return l.z.Info()
	}
}

func withArgs(e *zerolog.Event, args []any) *zerolog.Event {
	for i := 0; i+1 < len(args); i += 2 {
		key, _ := args[i].(string)
		if key == "" {
			continue
		}
		e = e.Interface(key, args[i+1])
	}
	return e
}

func (l *Logger) Debug(msg string, args ...any) { withArgs(l.event(LevelDebug), args).Msg(msg) }
func (l *Logger) Info(msg string, args ...any)  { withArgs(l.event(LevelInfo), args).Msg(msg) }
func (l *Logger) Warn(msg string, args ...any)  { withArgs(l.event(LevelWarn), args).Msg(msg) }
func (l *Logger) Error(msg string, args ...any) { withArgs(l.event(LevelError), args).Msg(msg) }

// Debugf, Infof, Warnf, Errorf provide printf-style logging for call
// sites ported directly from the config/metadata parsers.
func (l *Logger) Debugf(format string, args ...any) { l.event(LevelDebug).Msgf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.event(LevelInfo).Msgf(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.event(LevelWarn).Msgf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.event(LevelError).Msgf(format, args...) }

// Printf is kept for compatibility with code written against the
// Logger interface in internal/interfaces.
func (l *Logger) Printf(format string, args ...any) { l.Infof(format, args...) }

// Global convenience functions operating on the default logger.
func Debug(msg string, args ...any) { Default().Debug(msg, args...) }
func Info(msg string, args ...any)  { Default().Info(msg, args...) }
func Warn(msg string, args ...any)  { Default().Warn(msg, args...) }
func Error(msg string, args ...any) { Default().Error(msg, args...) }

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

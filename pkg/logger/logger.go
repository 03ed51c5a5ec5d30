package logger

import (
	"io"
	"log"
	"os"
)

type LogLevel int

const (
	LevelInfo LogLevel = iota
	LevelDebug
	LevelTrace
)

// Logger wraps the standard library logger with level filtering.
// Warn and Fatal always print regardless of the configured level.
type Logger struct {
	*log.Logger
	level LogLevel
}

type Option func(*Logger)

func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.Logger = log.New(w, l.Logger.Prefix(), l.Logger.Flags())
	}
}

func WithPrefix(prefix string) Option {
	return func(l *Logger) {
		l.Logger = log.New(l.Logger.Writer(), prefix, l.Logger.Flags())
	}
}

func WithFlags(flags int) Option {
	return func(l *Logger) {
		l.Logger = log.New(l.Logger.Writer(), l.Logger.Prefix(), flags)
	}
}

func WithLevel(level LogLevel) Option {
	return func(l *Logger) {
		l.level = level
	}
}

func New(options ...Option) *Logger {
	l := &Logger{
		Logger: log.New(os.Stdout, "", log.LstdFlags),
		level:  LevelInfo,
	}

	for _, opt := range options {
		opt(l)
	}

	return l
}

func (l *Logger) SetLevel(level LogLevel) {
	l.level = level
}

// SetVerbose is shorthand for raising the level to debug.
func (l *Logger) SetVerbose(verbose bool) {
	if verbose && l.level < LevelDebug {
		l.level = LevelDebug
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.printf(LevelInfo, "INFO: ", format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.Logger.Printf("WARN: "+format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.printf(LevelDebug, "DEBUG: ", format, args...)
}

func (l *Logger) Trace(format string, args ...interface{}) {
	l.printf(LevelTrace, "TRACE: ", format, args...)
}

func (l *Logger) printf(level LogLevel, prefix, format string, args ...interface{}) {
	if l.level < level {
		return
	}
	l.Logger.Printf(prefix+format, args...)
}

func (l *Logger) Fatal(format string, args ...interface{}) {
	l.Logger.Fatalf("FATAL: "+format, args...)
}

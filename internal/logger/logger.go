package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type Config struct {
	Level  Level  `toml:"level" yaml:"level"`
	Format Format `toml:"format" yaml:"format"`
	Output string `toml:"output" yaml:"output"`
}

type Logger struct {
	*slog.Logger
}

// New builds a logger writing to config.Output, which is "stdout",
// "stderr", "discard" or a file path opened in append mode. Unknown values
// fall back to stderr so command output on stdout stays clean.
func New(config Config) *Logger {
	opts := &slog.HandlerOptions{
		Level: slogLevel(config.Level),
	}

	writer := output(config.Output)

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, opts)
	case FormatText:
		fallthrough
	default:
		handler = slog.NewTextHandler(writer, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

func output(name string) io.Writer {
	switch name {
	case "stdout":
		return os.Stdout
	case "stderr", "":
		return os.Stderr
	case "discard":
		return io.Discard
	}

	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fail to open custom logger file. Using 'stderr' error: %s\n", err.Error())
		return os.Stderr
	}
	return file
}

func slogLevel(level Level) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelInfo:
		fallthrough
	default:
		return slog.LevelInfo
	}
}

// With returns a logger that adds args to every record.
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}

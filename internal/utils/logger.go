package utils

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a wrapper around zerolog.Logger
type Logger struct {
	zerolog.Logger
}

// LoggerOptions contains options for creating a logger
type LoggerOptions struct {
	Level   string
	Format  string // "pretty" or "json"
	Output  io.Writer
	Verbose bool
}

// NewLogger creates a new logger with the given options. Unknown levels
// fall back to info; Verbose forces debug.
func NewLogger(opts LoggerOptions) *Logger {
	var output io.Writer = os.Stderr
	if opts.Output != nil {
		output = opts.Output
	}
	if opts.Format == "pretty" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	return &Logger{Logger: zerolog.New(output).Level(level).With().Timestamp().Logger()}
}

// NewNopLogger creates a logger that discards everything
func NewNopLogger() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

func (l *Logger) with(key, value string) *Logger {
	return &Logger{Logger: l.Logger.With().Str(key, value).Logger()}
}

// WithComponent tags entries with the package that logged them
func (l *Logger) WithComponent(component string) *Logger {
	return l.with("component", component)
}

// WithFile tags entries with the stylesheet, asset or output file concerned
func (l *Logger) WithFile(path string) *Logger {
	return l.with("file", path)
}

// WithPhase tags entries with the collection phase: stylesheets, configuration or layout
func (l *Logger) WithPhase(phase string) *Logger {
	return l.with("phase", phase)
}

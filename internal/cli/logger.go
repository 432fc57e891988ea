package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

const verbosePrefix = "[VERBOSE]"

// Logger provides logging functionality with verbose support
type Logger struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool
}

// NewLogger creates a new Logger instance
func NewLogger(verbose bool) *Logger {
	return &Logger{
		out:     os.Stdout,
		errOut:  os.Stderr,
		verbose: verbose,
	}
}

// Info prints an informational message to stdout
func (l *Logger) Info(format string, args ...any) {
	fmt.Fprintf(l.out, format+"\n", args...)
}

// Error prints an error message to stderr
func (l *Logger) Error(format string, args ...any) {
	fmt.Fprintf(l.errOut, format+"\n", args...)
}

// Verbose prints a verbose debug message to stdout if verbose mode is enabled
func (l *Logger) Verbose(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.diagnostics().Debug().Msgf(format, args...)
}

// VerboseFields prints a verbose message followed by key=value fields if verbose mode is enabled
func (l *Logger) VerboseFields(msg string, fields map[string]any) {
	if !l.verbose {
		return
	}
	l.diagnostics().Debug().Fields(fields).Msg(msg)
}

// SetVerbose enables or disables verbose logging
func (l *Logger) SetVerbose(verbose bool) {
	l.verbose = verbose
}

// IsVerbose returns whether verbose mode is enabled
func (l *Logger) IsVerbose() bool {
	return l.verbose
}

// diagnostics returns a zerolog logger rendering "[VERBOSE] message key=value" lines on l.out.
func (l *Logger) diagnostics() *zerolog.Logger {
	w := zerolog.ConsoleWriter{
		Out:          l.out,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
		FormatLevel: func(any) string {
			return verbosePrefix
		},
	}

	zl := zerolog.New(w).Level(zerolog.DebugLevel)
	return &zl
}

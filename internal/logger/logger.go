package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that writes to a file
func NewFileLogger(path string) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})

	cleanup := func() {
		f.Close()
	}

	return &Logger{Logger: l}, cleanup, nil
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ConversionStarted logs the start of a format conversion
func (l *Logger) ConversionStarted(from, to string) {
	l.Debug("conversion started",
		"from", from,
		"to", to)
}

// ConversionCompleted logs a successful format conversion
func (l *Logger) ConversionCompleted(from, to string, duration time.Duration) {
	l.Info("conversion completed",
		"from", from,
		"to", to,
		"duration", duration.Round(time.Millisecond))
}

// ConversionFailed logs a failed format conversion
func (l *Logger) ConversionFailed(from, to string, err error) {
	l.Error("conversion failed",
		"from", from,
		"to", to,
		"error", err)
}

// FileConverted logs a successful file conversion
func (l *Logger) FileConverted(source, dest string) {
	l.Info("file converted",
		"source", source,
		"dest", dest)
}

// FormatInferred logs a format inferred from a file extension
func (l *Logger) FormatInferred(path, format string) {
	l.Debug("format inferred",
		"path", path,
		"format", format)
}

// PandocDetected logs the detected pandoc version
func (l *Logger) PandocDetected(version string) {
	l.Debug("pandoc detected",
		"version", version)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(pandocPath string, preserveAttributes bool) {
	l.Debug("config loaded",
		"pandoc_path", pandocPath,
		"preserve_attributes", preserveAttributes)
}

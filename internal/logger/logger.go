package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the structured logger used across the application. Component
// names the subsystem emitting the entry ("TenantService", "Storage", ...).
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

// Options selects the destination and verbosity of the application log.
type Options struct {
	Level string
	JSON  bool
	File  string
}

// New builds a zerolog-backed logger. A log file always receives JSON lines;
// otherwise output goes to stderr, pretty-printed unless JSON is requested.
// The returned closer releases the log file and is a no-op for stderr.
func New(opts Options) (*ZerologAdapter, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return NewZerolog(f, level), f, nil
	}

	if opts.JSON {
		return NewZerolog(os.Stderr, level), nopCloser{}, nil
	}
	return NewConsoleLogger(level), nopCloser{}, nil
}

// ParseLevel accepts zerolog level names plus "warning"; empty means info.
func ParseLevel(name string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return zerolog.InfoLevel, nil
	case "warning":
		return zerolog.WarnLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

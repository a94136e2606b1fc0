// Package logger holds the process-wide zerolog logger for the portal.
//
// cmd/api and cmd/seed call Init once after configuration is loaded; packages
// that are handed a logger explicitly should prefer that over Get.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Level is one of trace, debug, info, warn, error, fatal. Unknown values
	// fall back to info.
	Level string
	// Pretty switches to zerolog's console writer for local development.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// Service and Env are stamped on every line when set.
	Service string
	Env     string
}

var (
	mu       sync.Mutex
	instance *zerolog.Logger
)

// Init builds the process logger. Only the first call has any effect; later
// calls return the logger built by the first.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if instance != nil {
		return *instance
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	lvl := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	fields := zerolog.New(out).Level(lvl).With().Timestamp().Caller()
	if opts.Service != "" {
		fields = fields.Str("service", opts.Service)
	}
	if opts.Env != "" {
		fields = fields.Str("env", opts.Env)
	}
	l := fields.Logger()
	instance = &l
	return l
}

// Get returns the process logger. It panics when Init has not run.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		panic("logger: Get() called before Init()")
	}
	return *instance
}

// Component derives a child logger tagged with the subsystem that owns it,
// e.g. "sessions" or "mail_queue".
func Component(parent zerolog.Logger, name string) zerolog.Logger {
	return parent.With().Str("component", name).Logger()
}

// Reset drops the process logger so the next Init rebuilds it. Tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

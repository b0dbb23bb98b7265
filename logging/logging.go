// Package logging builds the zerolog.Logger instances every other
// package in this module accepts as a plain *zerolog.Logger field.
// LOG_LEVEL/LOG_PRETTY-driven setup: JSON to stdout by default, a
// pretty console writer when LOG_PRETTY=1, and a Component helper for
// the per-package child loggers (transport, submitter, mirror) each
// take.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFieldName = "ts"
	zerolog.LevelFieldName = "level"
	zerolog.MessageFieldName = "msg"
}

// New builds a root logger from LOG_LEVEL (trace/debug/info/warn/error/
// fatal/panic/disabled, default info) and LOG_PRETTY (any truthy value
// switches stdout to a ConsoleWriter instead of JSON).
func New(environ []string) zerolog.Logger {
	level := parseLevel(lookup(environ, "LOG_LEVEL"))

	var out io.Writer = os.Stdout
	if pretty, ok := lookupOK(environ, "LOG_PRETTY"); ok && isTruthy(pretty) {
		cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05.000"}
		cw.FormatLevel = func(i interface{}) string {
			if ll, ok := i.(string); ok {
				return strings.ToUpper(ll)
			}
			return "?"
		}
		out = cw
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Component returns a child logger tagged with the given component
// name, for handing to a Submitter, transport.UnaryOptions, or
// mirror.Client as their Logger field.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
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
	case "panic":
		return zerolog.PanicLevel
	case "disabled", "off", "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

var truthyValues = map[string]bool{"1": true, "true": true, "yes": true, "on": true, "enable": true}

func isTruthy(s string) bool {
	return truthyValues[strings.ToLower(strings.TrimSpace(s))]
}

// lookup scans a KEY=VALUE slice (os.Environ()'s shape) rather than
// calling os.Getenv directly, so callers can pass a fixed slice in
// tests without mutating process environment.
func lookup(environ []string, key string) string {
	v, _ := lookupOK(environ, key)
	return v
}

func lookupOK(environ []string, key string) (string, bool) {
	prefix := key + "="
	for _, kv := range environ {
		if strings.HasPrefix(kv, prefix) {
			return strings.TrimPrefix(kv, prefix), true
		}
	}
	return "", false
}

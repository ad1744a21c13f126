// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package logger

import (
	"io"
	"log/slog"
	"slices"
	"strings"
)

const redacted = "[REDACTED]"

// ValidLogLevels lists the level names accepted by New and SetLevel.
var ValidLogLevels = []string{"debug", "info", "notice", "warning", "error", "critical", "alert", "emergency"}

// ValidLogFormats lists the supported handler formats.
var ValidLogFormats = []string{"text", "json"}

// sensitiveKeys are attribute keys whose values never reach the log output.
var sensitiveKeys = []string{"password", "uri", "api_key", "apikey", "token", "authorization"}

// Service holds the logger and its dynamic level controller.
type Service struct {
	*slog.Logger
	level *slog.LevelVar
}

// SetLevel dynamically changes the logging level.
func (s *Service) SetLevel(level string) {
	s.level.Set(parseLevel(level))
}

// Level returns the current level.
func (s *Service) Level() slog.Level {
	return s.level.Level()
}

// Component returns a child logger tagged with the component name. The child shares the level controller.
func (s *Service) Component(name string) *Service {
	return &Service{
		Logger: s.Logger.With("component", name),
		level:  s.level,
	}
}

// New creates a new logging service.
func New(level, format string, writer io.Writer) *Service {
	levelVar := &slog.LevelVar{}
	levelVar.Set(parseLevel(level))

	opts := &slog.HandlerOptions{
		Level:       levelVar,
		ReplaceAttr: replaceAttr,
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(writer, opts)
	default:
		handler = slog.NewTextHandler(writer, opts)
	}

	return &Service{
		Logger: slog.New(handler),
		level:  levelVar,
	}
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *Service {
	return New("emergency", "text", io.Discard)
}

const (
	LevelNotice    = slog.Level(2)  // Between Info and Warn
	LevelCritical  = slog.Level(10) // Between Error and Alert
	LevelAlert     = slog.Level(12)
	LevelEmergency = slog.Level(16)
)

// parseLevel converts a string to a slog.Level, falling back to info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "notice":
		return LevelNotice
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "critical":
		return LevelCritical
	case "alert":
		return LevelAlert
	case "emergency":
		return LevelEmergency
	default:
		return slog.LevelInfo
	}
}

var levelNames = map[slog.Level]string{
	slog.LevelDebug: "DEBUG",
	slog.LevelInfo:  "INFO",
	LevelNotice:     "NOTICE",
	slog.LevelWarn:  "WARN",
	slog.LevelError: "ERROR",
	LevelCritical:   "CRITICAL",
	LevelAlert:      "ALERT",
	LevelEmergency:  "EMERGENCY",
}

func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if level, ok := a.Value.Any().(slog.Level); ok {
			if name, found := levelNames[level]; found {
				a.Value = slog.StringValue(name)
			}
		}
		return a
	}
	if slices.Contains(sensitiveKeys, strings.ToLower(a.Key)) {
		a.Value = slog.StringValue(redacted)
	}
	return a
}

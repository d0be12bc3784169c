package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/untoldecay/fossiluse/internal/config"
)

// runLogger is the structured run log. Progress meant for the user goes to
// stdout separately; this is the record of what a run did.
type runLogger struct {
	logger *slog.Logger
}

func (l runLogger) log(format string, args ...interface{}) {
	l.slog().Info(fmt.Sprintf(format, args...))
}

func (l runLogger) warn(format string, args ...interface{}) {
	l.slog().Warn(fmt.Sprintf(format, args...))
}

// slog returns the underlying logger, discarding when unset.
func (l runLogger) slog() *slog.Logger {
	if l.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.logger
}

// logSettings configures newRunLogger
type logSettings struct {
	File       string
	Level      slog.Level
	JSON       bool
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func logSettingsFromConfig(file string, verbose bool) logSettings {
	s := logSettings{
		File:       file,
		Level:      parseLogLevel(config.GetString("log.level")),
		JSON:       config.GetBool("log.json"),
		MaxSizeMB:  config.GetInt("log.max-size"),
		MaxBackups: config.GetInt("log.max-backups"),
		MaxAgeDays: config.GetInt("log.max-age"),
		Compress:   config.GetBool("log.compress"),
	}
	if verbose {
		s.Level = slog.LevelDebug
	}
	return s
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newRunLogger builds the run logger. With no file it logs warnings and
// above to stderr (everything at debug level); with a file it writes through
// a lumberjack rotating writer that the returned closer releases.
func newRunLogger(s logSettings) (runLogger, io.Closer) {
	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)

	if s.File != "" {
		lj := &lumberjack.Logger{
			Filename:   s.File,
			MaxSize:    s.MaxSizeMB,
			MaxBackups: s.MaxBackups,
			MaxAge:     s.MaxAgeDays,
			Compress:   s.Compress,
		}
		w, closer = lj, lj
	} else if s.Level > slog.LevelDebug {
		// Keep the terminal quiet unless something went wrong.
		s.Level = max(s.Level, slog.LevelWarn)
	}

	opts := &slog.HandlerOptions{Level: s.Level}
	var handler slog.Handler
	if s.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return runLogger{logger: slog.New(handler)}, closer
}

// Package logging provides the structured debug logger and the user-facing
// status printers used by claude-forge.
//
// Debug output goes through slog and is only emitted at debug level when
// verbose mode is enabled:
//
//	logging.Debug("resolved language", "language", lang)
//
// User output is printed with a status glyph:
//
//	logging.UserSuccess("Wrote %s", path)
//	logging.UserWarning("%s not installed", tool)
package logging

import (
	"io"
	"log/slog"
	"os"
)

var (
	// Logger is the global structured logger.
	Logger *slog.Logger

	// Verbose enables debug logging.
	Verbose bool
)

func init() {
	Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// Setup configures the logger for the given verbosity and output format.
// Without verbose only warnings and errors are logged, since user-facing
// progress goes through the User* printers. A nil writer logs to stderr.
func Setup(verbose bool, jsonOutput bool, w io.Writer) {
	Verbose = verbose

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if w == nil {
		w = os.Stderr
	}

	if jsonOutput {
		Logger = slog.New(slog.NewJSONHandler(w, opts))
	} else {
		Logger = slog.New(slog.NewTextHandler(w, opts))
	}
}

func Debug(msg string, args ...any) { Logger.Debug(msg, args...) }

func Info(msg string, args ...any) { Logger.Info(msg, args...) }

func Warn(msg string, args ...any) { Logger.Warn(msg, args...) }

func Error(msg string, args ...any) { Logger.Error(msg, args...) }

// With returns a logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}

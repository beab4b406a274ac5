// Package logging configures the process-wide slog logger.
package logging

import (
	"log/slog"
	"os"
)

// Init installs a text logger on stderr. Warnings and errors only unless
// verbose, in which case everything down to debug is shown.
func Init(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

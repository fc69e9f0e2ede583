package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the process-wide logger. Diagnostics go to w (stderr in
// practice) so they never interleave with tables or prompts on stdout.
// verbose lowers the level to debug, which the core packages use to narrate
// skipped directories and fallbacks.
func Setup(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
	return logger
}

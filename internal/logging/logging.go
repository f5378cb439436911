// Package logging configures the process-wide slog logger.
//
// Diagnostic traces go through slog with a tint handler on stderr. The
// report lines and the fixed warning texts are printed directly by the
// cli package and never pass through here, so their wording stays stable
// for downstream consumers.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// DebugEnv is the environment variable that enables debug traces.
const DebugEnv = "GETYIELD_DEBUG"

// Setup installs the default logger. Colour is enabled only when the
// writer is a terminal. Default level is Warn so a normal invocation
// emits nothing beyond the report itself.
func Setup(w io.Writer) {
	level := slog.LevelWarn
	if os.Getenv(DebugEnv) != "" {
		level = slog.LevelDebug
	}

	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}

	slog.SetDefault(slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		NoColor:    noColor,
		TimeFormat: time.TimeOnly,
	})))
}

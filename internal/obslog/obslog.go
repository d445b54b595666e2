// Package obslog builds the process-wide *slog.Logger once, in main,
// and nothing downstream reads a global: every constructor that needs
// to log takes one explicitly. This keeps internal/planner,
// internal/simulator and internal/scheduler unit-testable without
// having to capture or silence log output.
package obslog

import (
	"log/slog"
	"os"
	"strings"
)

// LevelEnvVar overrides the default Info level when set to "debug"
// (case-insensitive), the same way -v does.
const LevelEnvVar = "CLEANBOT_LOG_LEVEL"

// New builds a text-handler *slog.Logger writing to os.Stderr. verbose
// forces Debug level regardless of the environment variable.
func New(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose || strings.EqualFold(os.Getenv(LevelEnvVar), "debug") {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

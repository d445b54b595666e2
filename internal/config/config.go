// Package config resolves the harness's run configuration from CLI
// flags and an optional TOML file (github.com/BurntSushi/toml,
// grounded on the pack's config-loading style), with flags always
// winning over file defaults.
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
)

// DefaultDeadlinePerStepMs is the wall-clock budget, in milliseconds,
// granted per allowed simulation step when no config file overrides
// it.
const DefaultDeadlinePerStepMs = 1

// fileConfig is the shape of an optional -config TOML file. Every
// field is optional; a flag value always overrides it.
type fileConfig struct {
	HousePath         string `toml:"house_path"`
	AlgoPath          string `toml:"algo_path"`
	NumThreads        int    `toml:"num_threads"`
	SummaryOnly       bool   `toml:"summary_only"`
	DeadlinePerStepMs int    `toml:"deadline_per_step_ms"`
}

// RunConfig is the fully resolved configuration driving one invocation
// of cmd/cleanbotsim.
type RunConfig struct {
	HousePath         string
	AlgoPath          string
	NumThreads        int
	SummaryOnly       bool
	DeadlinePerStepMs int
}

// Flags carries the CLI flag values as parsed by pflag, before any
// TOML file is merged in. Zero values mean "not set on the command
// line" for NumThreads and DeadlinePerStepMs; HousePath/AlgoPath empty
// string means unset.
type Flags struct {
	HousePath         string
	AlgoPath          string
	NumThreads        int
	SummaryOnly       bool
	ConfigPath        string
	DeadlinePerStepMs int
}

// Resolve builds a RunConfig from flags, merging in configPath's TOML
// defaults (if set) for anything the flags left unset, and finally
// filling in built-in defaults for anything still unset.
func Resolve(flags Flags) (RunConfig, error) {
	var fc fileConfig
	if flags.ConfigPath != "" {
		if _, err := toml.DecodeFile(flags.ConfigPath, &fc); err != nil {
			return RunConfig{}, fmt.Errorf("config: reading %s: %w", flags.ConfigPath, err)
		}
	}

	cfg := RunConfig{
		HousePath:         firstNonEmpty(flags.HousePath, fc.HousePath),
		AlgoPath:          firstNonEmpty(flags.AlgoPath, fc.AlgoPath),
		NumThreads:        firstNonZero(flags.NumThreads, fc.NumThreads, runtime.NumCPU()),
		SummaryOnly:       flags.SummaryOnly || fc.SummaryOnly,
		DeadlinePerStepMs: firstNonZero(flags.DeadlinePerStepMs, fc.DeadlinePerStepMs, DefaultDeadlinePerStepMs),
	}

	if cfg.HousePath == "" {
		return RunConfig{}, fmt.Errorf("config: house_path is required")
	}
	if cfg.AlgoPath == "" {
		return RunConfig{}, fmt.Errorf("config: algo_path is required")
	}
	if cfg.NumThreads < 1 {
		return RunConfig{}, fmt.Errorf("config: num_threads must be >= 1, got %d", cfg.NumThreads)
	}
	if _, err := os.Stat(cfg.HousePath); err != nil {
		return RunConfig{}, fmt.Errorf("config: house_path: %w", err)
	}
	if _, err := os.Stat(cfg.AlgoPath); err != nil {
		return RunConfig{}, fmt.Errorf("config: algo_path: %w", err)
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

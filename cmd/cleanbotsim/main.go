// Command cleanbotsim runs a batch of cleaning-robot navigation
// planners against a batch of house environments and reports a score
// per (planner, house) pair.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/elektrokombinacija/cleanbot-sim/internal/battery"
	"github.com/elektrokombinacija/cleanbot-sim/internal/config"
	"github.com/elektrokombinacija/cleanbot-sim/internal/envfile"
	"github.com/elektrokombinacija/cleanbot-sim/internal/house"
	"github.com/elektrokombinacija/cleanbot-sim/internal/obslog"
	_ "github.com/elektrokombinacija/cleanbot-sim/internal/planner/builtin"
	"github.com/elektrokombinacija/cleanbot-sim/internal/planner/loader"
	"github.com/elektrokombinacija/cleanbot-sim/internal/planner/registry"
	"github.com/elektrokombinacija/cleanbot-sim/internal/report"
	"github.com/elektrokombinacija/cleanbot-sim/internal/scheduler"
	"github.com/elektrokombinacija/cleanbot-sim/internal/simulator"
)

var flags config.Flags
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "cleanbotsim",
	Short: "Run cleaning-robot navigation planners against house environments",
	RunE:  run,
}

func init() {
	var pf *pflag.FlagSet = rootCmd.Flags()
	pf.StringVar(&flags.HousePath, "house_path", "", "directory scanned for *.house files")
	pf.StringVar(&flags.AlgoPath, "algo_path", "", "directory scanned for dynamically-loadable planner modules (*.so)")
	pf.IntVar(&flags.NumThreads, "num_threads", 0, "worker pool size (default runtime.NumCPU())")
	pf.BoolVar(&flags.SummaryOnly, "summary_only", false, "suppress per-simulation artifacts; still emit CSV")
	pf.StringVar(&flags.ConfigPath, "config", "", "optional TOML file providing defaults for the other flags")
	pf.BoolVarP(&verbose, "verbose", "v", false, "raise log level to debug")
}

func main() {
	// Long options are accepted with a single dash (-house_path=dir) as
	// well as with two; pflag alone reads a single dash as a cluster of
	// shorthand flags, so single-dash long options are rewritten first.
	args := os.Args[1:]
	for i, a := range args {
		if len(a) > 2 && a[0] == '-' && a[1] != '-' {
			name, _, _ := strings.Cut(a[1:], "=")
			if name == "help" || rootCmd.Flags().Lookup(name) != nil {
				args[i] = "-" + a
			}
		}
	}
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := obslog.New(verbose)

	cfg, err := config.Resolve(flags)
	if err != nil {
		return err
	}

	if names, err := loader.LoadDir(cfg.AlgoPath); err != nil {
		logger.Warn("plugin directory load failed", slog.String("error", err.Error()))
	} else {
		for _, n := range names {
			logger.Info("loaded planner module", slog.String("module", n))
		}
	}

	sources, loadErrs := loadHouses(cfg.HousePath)
	for module, loadErr := range loadErrs {
		logger.Error("house failed to parse", slog.String("house", module), slog.String("error", loadErr.Error()))
		if !cfg.SummaryOnly {
			_ = report.WriteErrorArtifact(".", module, loadErr)
		}
	}

	plannerNames := registry.Names()
	if len(plannerNames) == 0 {
		return fmt.Errorf("cleanbotsim: no planners registered (checked %s and built-ins)", cfg.AlgoPath)
	}

	specs := make([]scheduler.Spec, 0, len(plannerNames)*len(sources))
	for _, plannerName := range plannerNames {
		for houseName, src := range sources {
			p, ok := registry.New(plannerName)
			if !ok {
				continue
			}
			h := house.New(src.Grid)
			bat := battery.New(src.MaxBattery)
			sim := simulator.New(p, h, bat, src.MaxSteps)
			specs = append(specs, scheduler.Spec{
				PlannerName: plannerName,
				HouseName:   houseName,
				Sim:         sim,
				MaxSteps:    src.MaxSteps,
				InitialDirt: h.InitialDirt(),
			})
		}
	}

	sched := scheduler.New(cfg.NumThreads, cfg.DeadlinePerStepMs, logger)
	outcomes := sched.Run(context.Background(), specs)

	summary := report.NewSummary()
	for i, outcome := range outcomes {
		spec := specs[i]
		if outcome.Err != nil {
			logger.Error("simulation error",
				slog.String("planner", spec.PlannerName),
				slog.String("house", spec.HouseName),
				slog.String("error", outcome.Err.Error()))
			if !cfg.SummaryOnly {
				_ = report.WriteErrorArtifact(".", spec.PlannerName+"-"+spec.HouseName, outcome.Err)
			}
			continue
		}

		summary.Record(spec.PlannerName, spec.HouseName, outcome.Score)
		if outcome.TimedOut {
			// A timed-out task has a score but no simulation statistics;
			// there is nothing truthful to put in a per-simulation artifact.
			continue
		}
		if !cfg.SummaryOnly {
			if err := report.WriteSimulationReport(cfg.HousePath, spec.PlannerName, spec.HouseName, outcome.Result); err != nil {
				logger.Error("failed to write report", slog.String("error", err.Error()))
			}
		}
	}

	if err := summary.WriteCSV(cfg.HousePath); err != nil {
		return fmt.Errorf("cleanbotsim: %w", err)
	}
	return nil
}

// loadHouses scans dir non-recursively for *.house files and parses
// each. Parse failures are returned alongside successes, keyed by
// module name, so the caller can emit an error artifact for each
// failed house without aborting the rest of the run.
func loadHouses(dir string) (map[string]*envfile.Source, map[string]error) {
	sources := make(map[string]*envfile.Source)
	errs := make(map[string]error)

	entries, err := os.ReadDir(dir)
	if err != nil {
		errs["house_path"] = err
		return sources, errs
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".house") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".house")
		path := filepath.Join(dir, entry.Name())

		f, err := os.Open(path)
		if err != nil {
			errs[name] = err
			continue
		}
		src, err := envfile.Parse(f)
		f.Close()
		if err != nil {
			errs[name] = err
			continue
		}
		sources[name] = src
	}
	return sources, errs
}

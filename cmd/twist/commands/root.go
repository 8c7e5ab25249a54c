// SPDX-License-Identifier: MIT

// Package commands holds the cobra command tree of the twist binary.
package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goirijo/casm-utilities-sub000/config"
	"github.com/goirijo/casm-utilities-sub000/logger"
	"github.com/goirijo/casm-utilities-sub000/twist"
)

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "twist",
		Short: "Periodic approximants of twisted bilayers",
		Long: `twist builds the Moiré lattice of a 2D layer twisted against a copy of
itself and searches supercells of it for the periodic approximant that
needs the least strain.

Available commands:
  moire       - exact Moiré geometry of the twist
  approximate - best approximant for every zone and layer
  bilayer     - atomic bilayer of the chosen approximant
  version     - build information

Examples:
  twist moire --config run.yaml
  twist approximate --config run.yaml --budget 5000 -vv
  twist bilayer --config run.yaml --zone rotated > bilayer.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "run configuration file (yaml, toml or json)")
	root.PersistentFlags().CountP("verbose", "v", "increase log verbosity (-v, -vv)")
	root.PersistentFlags().Bool("json-logs", false, "write logs as JSON")
	root.PersistentFlags().Float64("angle", 0, "twist angle in degrees (overrides config)")
	root.PersistentFlags().Int("budget", 0, "maximum lattice sites per approximant (overrides config)")
	root.PersistentFlags().Int("workers", 0, "concurrent candidate evaluations, 0 = GOMAXPROCS (overrides config)")
	root.PersistentFlags().StringP("output", "o", "", "output format: table or yaml (overrides config)")

	root.AddCommand(newMoireCmd(), newApproximateCmd(), newBilayerCmd(), newVersionCmd())
	return root
}

// run is the resolved state every search command starts from.
type run struct {
	cfg *config.Config
	log *zap.Logger
}

// loadRun reads --config, applies flag overrides and validates the result.
func loadRun(cmd *cobra.Command) (*run, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	if path == "" {
		return nil, errors.WithHint(errors.New("--config is required"), "see the config package documentation for the file layout")
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, err
	}

	if flags.Changed("angle") {
		cfg.Angle, _ = flags.GetFloat64("angle")
	}
	if flags.Changed("budget") {
		cfg.Budget, _ = flags.GetInt("budget")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("output") {
		cfg.Output, _ = flags.GetString("output")
	}
	if f := flags.Lookup("zone"); f != nil && f.Changed {
		cfg.Zone = f.Value.String()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	verbosity, _ := flags.GetCount("verbose")
	jsonLogs, _ := flags.GetBool("json-logs")
	log := logger.New(verbosity, jsonLogs)
	log.Info("run configured",
		zap.String("config", path),
		zap.Float64("angle", cfg.Angle),
		zap.Int("budget", cfg.Budget),
	)
	return &run{cfg: cfg, log: log}, nil
}

func (r *run) options() []twist.Option {
	return append(r.cfg.Options(), twist.WithLogger(r.log))
}

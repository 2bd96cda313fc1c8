// Package cmd implements the reelmatch command line.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/zfogg/reelmatch/internal/config"
	"github.com/zfogg/reelmatch/internal/kernel"
	"github.com/zfogg/reelmatch/internal/output"
)

// app carries the state shared by every command of one invocation.
type app struct {
	verbose    bool
	configPath string
	outputFmt  string

	cfg     *config.Config
	log     *log.Logger
	printer *output.Printer
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "reelmatch",
		Short: "Content-based movie recommendations",
		Long: `reelmatch recommends movies from a precomputed catalog, either by
similarity to a title you pick or by genre tag, and looks up posters,
details, and trailers on TMDB.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (default: ./reelmatch.{toml,yaml,json})")
	root.PersistentFlags().StringVarP(&a.outputFmt, "output", "o", "", "Output format: text, json (default from output.format)")

	root.AddCommand(
		newRecommendCmd(a),
		newGenresCmd(a),
		newDetailsCmd(a),
		newSeedCmd(a),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		output.Error(root.ErrOrStderr(), "%v", err)
		os.Exit(1)
	}
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("error initializing config: %w", err)
	}
	if a.outputFmt != "" {
		if !output.ValidFormat(a.outputFmt) {
			return fmt.Errorf("unknown output format %q (want text or json)", a.outputFmt)
		}
		cfg.Output.Format = a.outputFmt
	}

	a.cfg = cfg
	a.log = newLogger(cmd.ErrOrStderr(), a.verbose)
	a.printer = output.New(cmd.OutOrStdout(), output.ParseFormat(cfg.Output.Format))
	a.log.Debug("config loaded", "catalog", cfg.Catalog.Path, "format", cfg.Output.Format)
	return nil
}

// kernel loads the catalog and services. The caller must run the returned
// cleanup.
func (a *app) kernel() (*kernel.Kernel, func(), error) {
	k, err := kernel.Bootstrap(a.cfg)
	if err != nil {
		return nil, nil, err
	}
	a.log.Debug("catalog loaded", "movies", k.Catalog().Len())
	if k.Gateway() == nil {
		a.log.Warn("TMDB_API_KEY not set, posters and details are unavailable")
	}
	cleanup := func() {
		if err := k.Cleanup(context.Background()); err != nil {
			a.log.Warn("cleanup failed", "err", err)
		}
	}
	return k, cleanup, nil
}

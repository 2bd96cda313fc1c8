package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zfogg/reelmatch/internal/seed"
)

func newSeedCmd(a *app) *cobra.Command {
	var (
		movies int
		seedN  uint64
		out    string
		dsn    string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a demo catalog with fake movies and random scores",
		Long: `Generates a fixture catalog for development. Scores are random but
symmetric with a unit diagonal. Writes a JSON bundle to --out (default
catalog.path), or to the database named by --dsn.`,
		Example: `  reelmatch seed --movies 200 --out movies.json
  reelmatch seed --dsn movies.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fx := seed.NewSeeder(seed.Options{Movies: movies, Seed: seedN}).Generate()
			a.log.Debug("fixture generated", "movies", len(fx.Movies))

			if dsn != "" {
				if err := seed.WriteDatabase(dsn, fx); err != nil {
					return err
				}
				a.printer.Success("Wrote %d movies to the database", len(fx.Movies))
				return nil
			}

			if out == "" {
				out = a.cfg.Catalog.Path
			}
			if err := seed.WriteJSONFile(out, fx); err != nil {
				return err
			}
			a.printer.Success("Wrote %d movies to %s", len(fx.Movies), out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&movies, "movies", "n", seed.DefaultMovies, "Number of movies to generate")
	cmd.Flags().Uint64Var(&seedN, "seed", 0, "Random seed (0 picks one)")
	cmd.Flags().StringVar(&out, "out", "", "JSON bundle path (default catalog.path)")
	cmd.Flags().StringVar(&dsn, "dsn", "", "Write to this SQLite file or PostgreSQL DSN instead")
	return cmd
}

package cmd

import (
	"github.com/spf13/cobra"
)

func newGenresCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List the genre labels accepted by 'recommend genre'",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, cleanup, err := a.kernel()
			if err != nil {
				return err
			}
			defer cleanup()
			return a.printer.Genres(k.Engine().Genres())
		},
	}
}

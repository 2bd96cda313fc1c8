package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/zfogg/reelmatch/internal/output"
	"github.com/zfogg/reelmatch/internal/tags"
	"github.com/zfogg/reelmatch/internal/tmdb"
	"golang.org/x/sync/errgroup"
)

func newDetailsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "details <movie_id>",
		Short:   "Show a catalog movie with its TMDB details, poster, and trailer",
		Example: `  reelmatch details 19995`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid movie id %q", args[0])
			}
			return a.details(cmd.Context(), id)
		},
	}
}

func (a *app) details(ctx context.Context, id int64) error {
	k, cleanup, err := a.kernel()
	if err != nil {
		return err
	}
	defer cleanup()

	movie, ok := k.Engine().Movie(id)
	if !ok {
		return fmt.Errorf("movie %d is not in the catalog", id)
	}

	view := output.MovieDetails{
		MovieID:  movie.MovieID,
		Title:    movie.Title,
		Overview: movie.Overview,
		Tags:     tags.Extract(movie.Tags),
		Links:    tmdb.DirectLinks(movie.MovieID, movie.Title),
	}

	if gw := k.Gateway(); gw != nil {
		var g errgroup.Group
		g.Go(func() error {
			if d, ok := gw.FetchDetails(ctx, id); ok {
				view.Details = &d
			}
			return nil
		})
		g.Go(func() error {
			if p, ok := gw.FetchPoster(ctx, id); ok {
				view.PosterURL = &p
			}
			return nil
		})
		g.Go(func() error {
			if t, ok := gw.FetchTrailer(ctx, id); ok {
				view.TrailerURL = &t
				if e, ok := tmdb.EmbedURL(t); ok {
					view.EmbedURL = &e
				}
			}
			return nil
		})
		_ = g.Wait()
	}

	return a.printer.Movie(view)
}

package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zfogg/reelmatch/internal/output"
	"github.com/zfogg/reelmatch/internal/recommendations"
	"github.com/zfogg/reelmatch/internal/tags"
	"github.com/zfogg/reelmatch/internal/tmdb"
	"golang.org/x/sync/errgroup"
)

const posterConcurrency = 4

func newRecommendCmd(a *app) *cobra.Command {
	var posters bool

	recommendCmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend movies by title or genre",
	}
	recommendCmd.PersistentFlags().BoolVar(&posters, "posters", true, "Look up poster URLs on TMDB")

	titleCmd := &cobra.Command{
		Use:   "title <title>",
		Short: "Movies most similar to a catalog title",
		Long: `Ranks the catalog by similarity to the first movie with exactly this
title and prints up to 10 of the closest. An unknown title prints an empty
list.`,
		Example: `  reelmatch recommend title Avatar
  reelmatch recommend title "The Dark Knight" -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.recommend(cmd.Context(), recommendations.ModeTitle, strings.Join(args, " "), posters)
		},
	}

	genreCmd := &cobra.Command{
		Use:     "genre <genre>",
		Aliases: []string{"tag"},
		Short:   "The first catalog movies tagged with a genre",
		Example: `  reelmatch recommend genre Action`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.recommend(cmd.Context(), recommendations.ModeGenre, args[0], posters)
		},
	}

	recommendCmd.AddCommand(titleCmd, genreCmd)
	return recommendCmd
}

func (a *app) recommend(ctx context.Context, mode recommendations.Mode, query string, posters bool) error {
	k, cleanup, err := a.kernel()
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := k.Engine().Recommend(mode, query)
	if err != nil {
		return err
	}
	a.log.Debug("recommendations computed", "mode", mode, "query", query, "count", len(result.Movies))

	items := make([]output.MovieItem, len(result.Movies))
	for i, m := range result.Movies {
		items[i] = output.MovieItem{MovieID: m.MovieID, Title: m.Title, Tags: tags.Extract(m.Tags)}
	}
	if gw := k.Gateway(); posters && gw != nil {
		attachPosters(ctx, gw, items)
	}

	return a.printer.Recommendations(output.RecommendationList{
		Mode:   string(result.Mode),
		Query:  result.Query,
		Movies: items,
	})
}

func attachPosters(ctx context.Context, gw tmdb.Gateway, items []output.MovieItem) {
	var g errgroup.Group
	g.SetLimit(posterConcurrency)
	for i := range items {
		g.Go(func() error {
			if url, ok := gw.FetchPoster(ctx, items[i].MovieID); ok {
				items[i].PosterURL = &url
			}
			return nil
		})
	}
	_ = g.Wait()
}

package seed

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zfogg/reelmatch/internal/catalog"
	"github.com/zfogg/reelmatch/internal/recommendations"
	"github.com/zfogg/reelmatch/internal/tags"
)

func TestGenerateShape(t *testing.T) {
	fx := NewSeeder(Options{Movies: 12, Seed: 7}).Generate()

	require.Len(t, fx.Movies, 12)
	require.Len(t, fx.Matrix, 12)

	titles := map[string]bool{}
	ids := map[int64]bool{}
	for i, m := range fx.Movies {
		assert.False(t, titles[m.Title], "duplicate title %q", m.Title)
		assert.False(t, ids[m.MovieID], "duplicate id %d", m.MovieID)
		titles[m.Title] = true
		ids[m.MovieID] = true
		assert.NotEmpty(t, tags.Extract(m.Tags), "movie %d has no tags", i)
	}

	for i := range fx.Matrix {
		assert.Equal(t, 1.0, fx.Matrix[i][i])
		for j := range fx.Matrix[i] {
			assert.Equal(t, fx.Matrix[i][j], fx.Matrix[j][i])
			if i != j {
				assert.Less(t, fx.Matrix[i][j], 1.0)
				assert.GreaterOrEqual(t, fx.Matrix[i][j], 0.0)
			}
		}
	}
}

func TestGenerateMixesTagShapes(t *testing.T) {
	fx := NewSeeder(Options{Movies: 10, Seed: 1}).Generate()
	assert.Equal(t, tags.KindDelimited, fx.Movies[0].Tags.Kind())
	assert.Equal(t, tags.KindList, fx.Movies[4].Tags.Kind())
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	a := NewSeeder(Options{Movies: 8, Seed: 42}).Generate()
	b := NewSeeder(Options{Movies: 8, Seed: 42}).Generate()
	assert.Equal(t, a, b)
}

func TestDefaultMovieCount(t *testing.T) {
	fx := NewSeeder(Options{Seed: 3}).Generate()
	assert.Len(t, fx.Movies, DefaultMovies)
}

func TestGeneratedCatalogRecommends(t *testing.T) {
	fx := NewSeeder(Options{Movies: 15, Seed: 9}).Generate()
	c, err := catalog.New(fx.Movies, fx.Matrix)
	require.NoError(t, err)

	got := recommendations.NewEngine(c).RecommendByTitle(fx.Movies[0].Title)
	assert.Len(t, got, recommendations.MaxResults)
	for _, m := range got {
		assert.NotEqual(t, fx.Movies[0].Title, m.Title)
	}
}

func TestWriteJSONFile(t *testing.T) {
	fx := NewSeeder(Options{Movies: 5, Seed: 11}).Generate()
	path := filepath.Join(t.TempDir(), "movies.json")

	require.NoError(t, WriteJSONFile(path, fx))

	c, err := catalog.LoadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Len())
	assert.Equal(t, fx.Movies[2].Title, c.At(2).Title)
	assert.Equal(t, fx.Matrix[1], c.Row(1))
}

func TestWriteJSONFileBadPath(t *testing.T) {
	fx := NewSeeder(Options{Movies: 2, Seed: 1}).Generate()
	err := WriteJSONFile(filepath.Join(t.TempDir(), "missing", "movies.json"), fx)
	assert.Error(t, err)
}

func TestWriteDatabase(t *testing.T) {
	fx := NewSeeder(Options{Movies: 6, Seed: 5}).Generate()
	dsn := filepath.Join(t.TempDir(), "movies.db")

	require.NoError(t, WriteDatabase(dsn, fx))

	c, err := catalog.Load(catalog.Source{DSN: dsn})
	require.NoError(t, err)
	assert.Equal(t, 6, c.Len())
	assert.Equal(t, fx.Movies[5].MovieID, c.At(5).MovieID)
	assert.Equal(t, tags.Extract(fx.Movies[4].Tags), tags.Extract(c.At(4).Tags))
}

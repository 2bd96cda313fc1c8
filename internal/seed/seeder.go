// Package seed generates demo catalogs with fake movies and random
// similarity scores. The output is a development fixture; the scores carry
// no meaning beyond being symmetric with a unit diagonal.
package seed

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/zfogg/reelmatch/internal/catalog"
	"github.com/zfogg/reelmatch/internal/logger"
	"github.com/zfogg/reelmatch/internal/tags"
	"go.uber.org/zap"
)

// DefaultMovies is the catalog size when Options.Movies is not positive.
const DefaultMovies = 50

// Options controls generation. A zero Seed picks a random one.
type Options struct {
	Movies int
	Seed   uint64
}

// Fixture is a generated catalog ready to be written out.
type Fixture struct {
	Movies []catalog.Movie
	Matrix catalog.Matrix
}

// Seeder produces fixtures from a single fake data source.
type Seeder struct {
	faker *gofakeit.Faker
	count int
}

// NewSeeder creates a seeder. The same non-zero seed yields the same fixture.
func NewSeeder(opts Options) *Seeder {
	count := opts.Movies
	if count <= 0 {
		count = DefaultMovies
	}
	return &Seeder{faker: gofakeit.New(opts.Seed), count: count}
}

// Generate builds the movies and a matching matrix.
func (s *Seeder) Generate() Fixture {
	movies := s.movies()
	return Fixture{Movies: movies, Matrix: s.matrix(len(movies))}
}

func (s *Seeder) movies() []catalog.Movie {
	f := s.faker
	seen := make(map[string]bool, s.count)
	movies := make([]catalog.Movie, 0, s.count)

	id := int64(f.IntRange(100, 999))
	for i := 0; i < s.count; i++ {
		title := f.MovieName()
		for n := 2; seen[title]; n++ {
			title = fmt.Sprintf("%s %d", f.MovieName(), n)
		}
		seen[title] = true

		movies = append(movies, catalog.Movie{
			MovieID:  id,
			Title:    title,
			Overview: f.HipsterSentence(),
			Tags:     s.tags(i),
		})
		id += int64(f.IntRange(1, 50))
	}
	return movies
}

// tags mixes both stored shapes; every fifth movie gets a list.
func (s *Seeder) tags(i int) tags.Raw {
	f := s.faker
	n := f.IntRange(1, 3)
	picked := make([]string, 0, n+1)
	for j := 0; j < n; j++ {
		picked = append(picked, strings.ToLower(f.MovieGenre()))
	}
	picked = append(picked, strings.ToLower(f.Word()))

	if i%5 == 4 {
		return tags.List(picked...)
	}
	return tags.Delimited(strings.Join(picked, "|"))
}

func (s *Seeder) matrix(n int) catalog.Matrix {
	m := make(catalog.Matrix, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			score := math.Round(s.faker.Float64Range(0, 0.95)*1000) / 1000
			m[i][j] = score
			m[j][i] = score
		}
	}
	return m
}

// WriteJSONFile writes the fixture as a JSON bundle at path.
func WriteJSONFile(path string, fx Fixture) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := catalog.WriteJSON(f, fx.Movies, fx.Matrix); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Log.Info("Seed bundle written",
		zap.String("path", path),
		zap.Int("movies", len(fx.Movies)),
	)
	return nil
}

// WriteDatabase writes the fixture into the database named by dsn,
// replacing any existing rows.
func WriteDatabase(dsn string, fx Fixture) error {
	db, err := catalog.OpenDatabase(dsn, false)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := catalog.WriteDatabase(db, fx.Movies, fx.Matrix); err != nil {
		return err
	}

	logger.Log.Info("Seed database written", zap.Int("movies", len(fx.Movies)))
	return nil
}

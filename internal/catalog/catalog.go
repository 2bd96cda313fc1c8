// Package catalog holds the precomputed movie table and its similarity matrix.
// Both are loaded once and shared read-only; row i of the table is row i of
// the matrix.
package catalog

import (
	"errors"
	"fmt"

	"github.com/zfogg/reelmatch/internal/tags"
)

var (
	// ErrMissingColumns is returned when the artifact lacks a required column.
	ErrMissingColumns = errors.New("catalog is missing required columns")
	// ErrShapeMismatch is returned when the matrix is not N×N for N movies.
	ErrShapeMismatch = errors.New("similarity matrix does not match catalog")
)

// RequiredColumns lists the movie columns every artifact must carry.
var RequiredColumns = []string{"movie_id", "title", "overview", "tags"}

// Movie is one row of the catalog.
type Movie struct {
	MovieID  int64    `json:"movie_id"`
	Title    string   `json:"title"`
	Overview string   `json:"overview"`
	Tags     tags.Raw `json:"tags"`
}

// Matrix holds pairwise similarity scores; higher is more similar.
type Matrix [][]float64

// Catalog is the immutable movie table plus its similarity matrix.
type Catalog struct {
	movies     []Movie
	matrix     Matrix
	byTitle    map[string]int
	byID       map[int64]int
	vocabulary tags.Vocabulary
}

// New validates the shape of the artifact and builds the lookup indexes and
// tag vocabulary. The slices are copied; callers may reuse theirs.
func New(movies []Movie, matrix Matrix) (*Catalog, error) {
	if len(matrix) != len(movies) {
		return nil, fmt.Errorf("%w: %d rows for %d movies", ErrShapeMismatch, len(matrix), len(movies))
	}
	for i, row := range matrix {
		if len(row) != len(movies) {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShapeMismatch, i, len(row), len(movies))
		}
	}

	c := &Catalog{
		movies:  append([]Movie(nil), movies...),
		matrix:  make(Matrix, len(matrix)),
		byTitle: make(map[string]int, len(movies)),
		byID:    make(map[int64]int, len(movies)),
	}
	for i, row := range matrix {
		c.matrix[i] = append([]float64(nil), row...)
	}

	raws := make([]tags.Raw, 0, len(movies))
	for i, m := range c.movies {
		// Duplicate titles and ids resolve to the first row.
		if _, ok := c.byTitle[m.Title]; !ok {
			c.byTitle[m.Title] = i
		}
		if _, ok := c.byID[m.MovieID]; !ok {
			c.byID[m.MovieID] = i
		}
		raws = append(raws, m.Tags)
	}
	c.vocabulary = tags.BuildVocabulary(raws)

	return c, nil
}

// Len returns the number of movies.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// At returns the movie at row i.
func (c *Catalog) At(i int) Movie {
	return c.movies[i]
}

// Movies returns a copy of the table in row order.
func (c *Catalog) Movies() []Movie {
	return append([]Movie(nil), c.movies...)
}

// Row returns similarity row i. The slice must not be modified.
func (c *Catalog) Row(i int) []float64 {
	return c.matrix[i]
}

// IndexOfTitle returns the row of the first movie with exactly this title.
func (c *Catalog) IndexOfTitle(title string) (int, bool) {
	i, ok := c.byTitle[title]
	return i, ok
}

// ByID returns the first movie with the given id.
func (c *Catalog) ByID(id int64) (Movie, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Movie{}, false
	}
	return c.movies[i], true
}

// Titles returns every title in row order.
func (c *Catalog) Titles() []string {
	titles := make([]string, len(c.movies))
	for i, m := range c.movies {
		titles[i] = m.Title
	}
	return titles
}

// Vocabulary returns the capitalized tag labels, sorted.
func (c *Catalog) Vocabulary() tags.Vocabulary {
	return append(tags.Vocabulary(nil), c.vocabulary...)
}

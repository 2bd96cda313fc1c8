// Package recommendations answers "more like this title" and "movies with this
// genre" queries against a loaded catalog.
package recommendations

import (
	"fmt"

	"github.com/zfogg/reelmatch/internal/catalog"
)

// MaxResults caps every recommendation list.
const MaxResults = 10

// Mode names the kind of query that produced a result.
type Mode string

const (
	ModeTitle Mode = "title"
	ModeGenre Mode = "genre"
)

// ParseMode accepts "title" or "genre" (also "tag").
func ParseMode(s string) (Mode, error) {
	switch s {
	case "title":
		return ModeTitle, nil
	case "genre", "tag":
		return ModeGenre, nil
	default:
		return "", fmt.Errorf("unknown recommendation mode %q", s)
	}
}

// Result is one answered query.
type Result struct {
	Mode   Mode            `json:"mode"`
	Query  string          `json:"query"`
	Movies []catalog.Movie `json:"movies"`
}

// Engine is safe for concurrent use; the catalog is never mutated.
type Engine struct {
	catalog *catalog.Catalog
}

// NewEngine wraps a loaded catalog.
func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

// Catalog returns the underlying catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Recommend dispatches on mode.
func (e *Engine) Recommend(mode Mode, query string) (Result, error) {
	var movies []catalog.Movie
	switch mode {
	case ModeTitle:
		movies = e.RecommendByTitle(query)
	case ModeGenre:
		movies = e.RecommendByTag(query)
	default:
		return Result{}, fmt.Errorf("unknown recommendation mode %q", mode)
	}
	return Result{Mode: mode, Query: query, Movies: movies}, nil
}

// Genres returns the selectable genre labels.
func (e *Engine) Genres() []string {
	return e.catalog.Vocabulary()
}

// Titles returns the selectable titles in catalog order.
func (e *Engine) Titles() []string {
	return e.catalog.Titles()
}

// Movie looks up a catalog row by its external id.
func (e *Engine) Movie(id int64) (catalog.Movie, bool) {
	return e.catalog.ByID(id)
}

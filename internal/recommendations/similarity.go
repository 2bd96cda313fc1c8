package recommendations

import (
	"sort"

	"github.com/zfogg/reelmatch/internal/catalog"
)

// Neighbor is a catalog row paired with its score against the query row.
type Neighbor struct {
	Index int
	Movie catalog.Movie
	Score float64
}

// NeighborsByTitle ranks every row against the first movie titled title,
// drops the top-ranked entry, and returns at most n of the rest. The dropped
// entry is usually the query itself but is removed by position, so a tie at
// the top can evict another movie instead.
func (e *Engine) NeighborsByTitle(title string, n int) []Neighbor {
	idx, ok := e.catalog.IndexOfTitle(title)
	if !ok {
		return []Neighbor{}
	}

	row := e.catalog.Row(idx)
	order := make([]int, len(row))
	for j := range order {
		order[j] = j
	}
	sort.SliceStable(order, func(a, b int) bool {
		return row[order[a]] > row[order[b]]
	})

	if len(order) > 0 {
		order = order[1:]
	}
	if len(order) > n {
		order = order[:n]
	}

	out := make([]Neighbor, len(order))
	for i, j := range order {
		out[i] = Neighbor{Index: j, Movie: e.catalog.At(j), Score: row[j]}
	}
	return out
}

// RecommendByTitle returns up to MaxResults movies most similar to title.
// An unknown title yields an empty list.
func (e *Engine) RecommendByTitle(title string) []catalog.Movie {
	neighbors := e.NeighborsByTitle(title, MaxResults)
	movies := make([]catalog.Movie, len(neighbors))
	for i, nb := range neighbors {
		movies[i] = nb.Movie
	}
	return movies
}

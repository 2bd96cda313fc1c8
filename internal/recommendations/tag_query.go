package recommendations

import (
	"strings"

	"github.com/zfogg/reelmatch/internal/catalog"
	"github.com/zfogg/reelmatch/internal/tags"
)

// RecommendByTag returns the first MaxResults movies, in catalog order, whose
// extracted tags include tag. Matching is exact after lowercasing the query.
func (e *Engine) RecommendByTag(tag string) []catalog.Movie {
	query := strings.ToLower(tag)
	out := make([]catalog.Movie, 0, MaxResults)
	for i := 0; i < e.catalog.Len() && len(out) < MaxResults; i++ {
		m := e.catalog.At(i)
		if tags.Contains(m.Tags, query) {
			out = append(out, m)
		}
	}
	return out
}

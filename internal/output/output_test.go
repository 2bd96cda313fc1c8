package output

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zfogg/reelmatch/internal/tmdb"
)

func init() {
	color.NoColor = true
}

func strPtr(s string) *string { return &s }

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat("table"))
	assert.True(t, ValidFormat("json"))
	assert.False(t, ValidFormat("yaml"))
}

func TestRecommendationsText(t *testing.T) {
	var buf bytes.Buffer
	err := New(&buf, FormatText).Recommendations(RecommendationList{
		Mode:  "title",
		Query: "Avatar",
		Movies: []MovieItem{
			{MovieID: 1, Title: "Aliens", Tags: []string{"space", "war"}, PosterURL: strPtr("https://img/a.jpg")},
			{MovieID: 2, Title: "Titan A.E.", Tags: []string{"space"}},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `Recommendations for "Avatar" (title)`)
	assert.Contains(t, out, "Aliens")
	assert.Contains(t, out, "space, war")
	assert.Contains(t, out, "https://img/a.jpg")
	assert.Contains(t, out, " 2.")
}

func TestRecommendationsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatText).Recommendations(RecommendationList{Mode: "genre", Query: "noir"}))
	assert.Contains(t, buf.String(), "No matching movies.")

	buf.Reset()
	require.NoError(t, New(&buf, FormatJSON).Recommendations(RecommendationList{Mode: "genre", Query: "noir"}))

	var got RecommendationList
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.NotNil(t, got.Movies)
	assert.Equal(t, 0, got.Count)
	assert.JSONEq(t, `{"mode":"genre","query":"noir","movies":[],"count":0}`, buf.String())
}

func TestRecommendationsJSONNullPoster(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatJSON).Recommendations(RecommendationList{
		Mode:   "title",
		Query:  "A",
		Movies: []MovieItem{{MovieID: 2, Title: "B", Tags: []string{"space"}}},
	}))
	assert.JSONEq(t,
		`{"mode":"title","query":"A","count":1,"movies":[{"movie_id":2,"title":"B","tags":["space"],"poster_url":null}]}`,
		buf.String())
}

func TestGenres(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatText).Genres([]string{"Action", "Drama"}))
	assert.Equal(t, "Action\nDrama\n", buf.String())

	buf.Reset()
	require.NoError(t, New(&buf, FormatJSON).Genres(nil))
	assert.JSONEq(t, `{"genres":[],"count":0}`, buf.String())
}

func TestMovieText(t *testing.T) {
	var buf bytes.Buffer
	err := New(&buf, FormatText).Movie(MovieDetails{
		MovieID: 19995,
		Title:   "Avatar",
		Tags:    []string{"action"},
		Details: &tmdb.Details{
			Title:       "Avatar",
			Overview:    "Blue people.",
			Rating:      "7.6",
			ReleaseDate: "2009-12-15",
			Genres:      "Action, Adventure",
		},
		TrailerURL: strPtr("https://www.youtube.com/watch?v=abc"),
		Links:      tmdb.DirectLinks(19995, "Avatar"),
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Rating: 7.6")
	assert.Contains(t, out, "Released: 2009-12-15")
	assert.Contains(t, out, "Blue people.")
	assert.Contains(t, out, "Poster: unavailable")
	assert.Contains(t, out, "Trailer: https://www.youtube.com/watch?v=abc")
	assert.Contains(t, out, "https://www.themoviedb.org/movie/19995")
}

func TestMovieTextWithoutDetails(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatText).Movie(MovieDetails{MovieID: 1, Title: "A", Overview: "catalog text"}))
	assert.Contains(t, buf.String(), "Details unavailable.")
	assert.Contains(t, buf.String(), "catalog text")
}

func TestMovieJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatJSON).Movie(MovieDetails{MovieID: 1, Title: "A"}))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Nil(t, got["details"])
	assert.Nil(t, got["poster_url"])
	assert.Equal(t, "A", got["title"])
}

func TestStatusLines(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, FormatText).Success("wrote %d movies", 3)
	New(&buf, FormatText).Info("hello")
	assert.Equal(t, "wrote 3 movies\nhello\n", buf.String())

	buf.Reset()
	New(&buf, FormatJSON).Success("quiet")
	assert.Empty(t, buf.String())

	Error(&buf, "bad %s", "thing")
	assert.Equal(t, "Error: bad thing\n", buf.String())
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "one two\nthree\nfour five", wrap("one two three four five", 9))
	assert.Equal(t, "a\nverylongword\nb", wrap("a verylongword b", 4))
	assert.Equal(t, "keep  as is", wrap("keep  as is", 0))
	assert.Equal(t, "", wrap("", 10))
}

func TestBufferIsNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 0, New(&buf, FormatText).width)
}

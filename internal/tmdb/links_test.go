package tmdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbedURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"https://www.youtube.com/watch?v=abc123", "https://www.youtube.com/embed/abc123", true},
		{"https://youtube.com/watch?v=a&t=10", "https://www.youtube.com/embed/a&t=10", true},
		{"watch?v=x watch?v=y", "https://www.youtube.com/embed/y", true},
		{"https://vimeo.com/12345", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := EmbedURL(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestDirectLinks(t *testing.T) {
	links := DirectLinks(603, "The Matrix")

	assert.Equal(t, []Link{
		{Label: "IMDb", URL: "https://www.imdb.com/find?q=The+Matrix"},
		{Label: "TMDB", URL: "https://www.themoviedb.org/movie/603"},
		{Label: "Google", URL: "https://www.google.com/search?q=watch+The+Matrix+online"},
		{Label: "YouTube", URL: "https://www.youtube.com/results?search_query=The+Matrix+full+movie"},
		{Label: "Netflix", URL: "https://www.netflix.com/search?q=The+Matrix"},
		{Label: "Prime Video", URL: "https://www.primevideo.com/search?phrase=The+Matrix"},
	}, links)
}

func TestDirectLinksEscapesTitle(t *testing.T) {
	links := DirectLinks(1, "Fast & Furious #2")

	assert.Equal(t, "https://www.imdb.com/find?q=Fast+%26+Furious+%232", links[0].URL)
	assert.Equal(t, "https://www.google.com/search?q=watch+Fast+%26+Furious+%232+online", links[2].URL)
	assert.Equal(t, "https://www.primevideo.com/search?phrase=Fast+%26+Furious+%232", links[5].URL)
}

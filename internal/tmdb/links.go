package tmdb

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	youtubeWatchURL = "https://www.youtube.com/watch?v="
	youtubeEmbedURL = "https://www.youtube.com/embed/"
)

// EmbedURL turns a YouTube watch URL into its embeddable form. The key is
// whatever follows the last "watch?v=".
func EmbedURL(watchURL string) (string, bool) {
	const marker = "watch?v="
	i := strings.LastIndex(watchURL, marker)
	if i < 0 {
		return "", false
	}
	return youtubeEmbedURL + watchURL[i+len(marker):], true
}

// Link is a labelled external URL.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// DirectLinks returns search and info pages for a movie on common sites.
// The title is query-escaped, so spaces become "+".
func DirectLinks(movieID int64, title string) []Link {
	q := url.QueryEscape(title)
	return []Link{
		{Label: "IMDb", URL: "https://www.imdb.com/find?q=" + q},
		{Label: "TMDB", URL: fmt.Sprintf("https://www.themoviedb.org/movie/%d", movieID)},
		{Label: "Google", URL: "https://www.google.com/search?q=watch+" + q + "+online"},
		{Label: "YouTube", URL: "https://www.youtube.com/results?search_query=" + q + "+full+movie"},
		{Label: "Netflix", URL: "https://www.netflix.com/search?q=" + q},
		{Label: "Prime Video", URL: "https://www.primevideo.com/search?phrase=" + q},
	}
}

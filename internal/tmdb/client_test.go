package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(serverURL string) *Client {
	return NewClient(Config{
		APIKey:       "test-key",
		BaseURL:      serverURL,
		ImageBaseURL: "https://img.example/t/p",
		Timeout:      time.Second,
		Attempts:     3,
		RetryDelay:   10 * time.Millisecond,
	})
}

// countingServer serves handler and counts requests.
func countingServer(t *testing.T, handler func(n int32, w http.ResponseWriter, r *http.Request)) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&hits, 1)
		handler(n, w, r)
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func TestFetchPoster(t *testing.T) {
	server, hits := countingServer(t, func(_ int32, w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/550", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		writeJSON(w, `{"id":550,"poster_path":"/fight.jpg"}`)
	})

	url, ok := testClient(server.URL).FetchPoster(context.Background(), 550)
	require.True(t, ok)
	assert.Equal(t, "https://img.example/t/p/w500/fight.jpg", url)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestFetchPosterMissingPath(t *testing.T) {
	server, hits := countingServer(t, func(_ int32, w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, `{"id":1,"poster_path":null}`)
	})

	_, ok := testClient(server.URL).FetchPoster(context.Background(), 1)
	assert.False(t, ok)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestFetchSucceedsOnThirdAttempt(t *testing.T) {
	server, hits := countingServer(t, func(n int32, w http.ResponseWriter, _ *http.Request) {
		if n < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(w, `{"poster_path":"/p.jpg"}`)
	})

	url, ok := testClient(server.URL).FetchPoster(context.Background(), 7)
	require.True(t, ok)
	assert.Equal(t, "https://img.example/t/p/w500/p.jpg", url)
	assert.Equal(t, int32(3), atomic.LoadInt32(hits))
}

func TestFetchGivesUpAfterThreeAttempts(t *testing.T) {
	tests := []struct {
		name    string
		handler func(w http.ResponseWriter)
	}{
		{"server error", func(w http.ResponseWriter) { w.WriteHeader(http.StatusInternalServerError) }},
		{"not found", func(w http.ResponseWriter) { w.WriteHeader(http.StatusNotFound) }},
		{"malformed json", func(w http.ResponseWriter) { writeJSON(w, `{"poster_path":`) }},
		{"no content", func(w http.ResponseWriter) { w.WriteHeader(http.StatusNoContent) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, hits := countingServer(t, func(_ int32, w http.ResponseWriter, _ *http.Request) {
				tt.handler(w)
			})

			_, ok := testClient(server.URL).FetchPoster(context.Background(), 1)
			assert.False(t, ok)
			assert.Equal(t, int32(3), atomic.LoadInt32(hits))
		})
	}
}

func TestFetchTimeoutIsRetried(t *testing.T) {
	server, hits := countingServer(t, func(n int32, w http.ResponseWriter, _ *http.Request) {
		if n == 1 {
			time.Sleep(300 * time.Millisecond)
		}
		writeJSON(w, `{"poster_path":"/late.jpg"}`)
	})

	c := NewClient(Config{
		BaseURL:    server.URL,
		Timeout:    100 * time.Millisecond,
		Attempts:   3,
		RetryDelay: time.Millisecond,
	})

	url, ok := c.FetchPoster(context.Background(), 3)
	require.True(t, ok)
	assert.Equal(t, DefaultImageBaseURL+"/w500/late.jpg", url)
	assert.GreaterOrEqual(t, atomic.LoadInt32(hits), int32(2))
}

func TestFetchUnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	start := time.Now()
	_, ok := testClient(url).FetchTrailer(context.Background(), 1)
	assert.False(t, ok)
	// Two waits between three attempts.
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestFetchCancelledContext(t *testing.T) {
	server, _ := countingServer(t, func(_ int32, w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	c := NewClient(Config{BaseURL: server.URL, Attempts: 3, RetryDelay: 5 * time.Second})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, ok := c.FetchDetails(ctx, 1)
	assert.False(t, ok)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestFetchDetails(t *testing.T) {
	server, _ := countingServer(t, func(_ int32, w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/603", r.URL.Path)
		writeJSON(w, `{
			"title": "The Matrix",
			"overview": "A hacker learns the truth.",
			"vote_average": 8.2,
			"release_date": "1999-03-30",
			"genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}]
		}`)
	})

	d, ok := testClient(server.URL).FetchDetails(context.Background(), 603)
	require.True(t, ok)
	assert.Equal(t, Details{
		Title:       "The Matrix",
		Overview:    "A hacker learns the truth.",
		Rating:      "8.2",
		ReleaseDate: "1999-03-30",
		Genres:      "Action, Science Fiction",
	}, d)
}

func TestFetchDetailsDefaults(t *testing.T) {
	server, _ := countingServer(t, func(_ int32, w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, `{"title": "Untitled"}`)
	})

	d, ok := testClient(server.URL).FetchDetails(context.Background(), 1)
	require.True(t, ok)
	assert.Equal(t, "Untitled", d.Title)
	assert.Equal(t, NotAvailable, d.Rating)
	assert.Equal(t, NotAvailable, d.ReleaseDate)
	assert.Equal(t, "", d.Genres)
}

func TestFetchTrailer(t *testing.T) {
	server, _ := countingServer(t, func(_ int32, w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/27205/videos", r.URL.Path)
		writeJSON(w, `{"results": [
			{"key": "teaser1", "site": "YouTube", "type": "Teaser"},
			{"key": "vimeo1", "site": "Vimeo", "type": "Trailer"},
			{"key": "yt1", "site": "YouTube", "type": "Trailer"},
			{"key": "yt2", "site": "YouTube", "type": "Trailer"}
		]}`)
	})

	url, ok := testClient(server.URL).FetchTrailer(context.Background(), 27205)
	require.True(t, ok)
	assert.Equal(t, "https://www.youtube.com/watch?v=yt1", url)
}

func TestFetchTrailerNone(t *testing.T) {
	server, _ := countingServer(t, func(_ int32, w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, `{"results": [{"key": "t", "site": "YouTube", "type": "Clip"}]}`)
	})

	_, ok := testClient(server.URL).FetchTrailer(context.Background(), 1)
	assert.False(t, ok)
}

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "7.0", formatRating(7))
	assert.Equal(t, "7.25", formatRating(7.25))
	assert.Equal(t, "0.0", formatRating(0))
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{RetryDelay: -time.Second}.withDefaults()
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultImageBaseURL, cfg.ImageBaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.Attempts)
	assert.Equal(t, time.Duration(0), cfg.RetryDelay)
}

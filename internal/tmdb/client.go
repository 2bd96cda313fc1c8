// Package tmdb fetches posters, details, and trailers from The Movie Database.
// Every lookup is best effort: failures come back as an absent value, never
// as an error.
package tmdb

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/zfogg/reelmatch/internal/logger"
	"github.com/zfogg/reelmatch/internal/metrics"
	"go.uber.org/zap"
)

// Operation names, used for cache keys and metric labels.
const (
	OpPoster  = "poster"
	OpDetails = "details"
	OpTrailer = "trailer"
)

// NotAvailable stands in for a missing rating or release date.
const NotAvailable = "N/A"

// Details is the subset of a TMDB movie record shown in the detail view.
type Details struct {
	Title       string `json:"title"`
	Overview    string `json:"overview"`
	Rating      string `json:"rating"`
	ReleaseDate string `json:"release_date"`
	Genres      string `json:"genres"`
}

// Gateway is the metadata boundary used by handlers and the CLI.
type Gateway interface {
	FetchPoster(ctx context.Context, movieID int64) (string, bool)
	FetchDetails(ctx context.Context, movieID int64) (Details, bool)
	FetchTrailer(ctx context.Context, movieID int64) (string, bool)
}

type movieResponse struct {
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	PosterPath  *string  `json:"poster_path"`
	VoteAverage *float64 `json:"vote_average"`
	ReleaseDate *string  `json:"release_date"`
	Genres      []struct {
		Name string `json:"name"`
	} `json:"genres"`
}

type videosResponse struct {
	Results []struct {
		Key  string `json:"key"`
		Site string `json:"site"`
		Type string `json:"type"`
	} `json:"results"`
}

// Client talks to TMDB over HTTP with a fixed retry policy.
type Client struct {
	http         *resty.Client
	apiKey       string
	imageBaseURL string
}

var _ Gateway = (*Client)(nil)

// NewClient builds a client. A request is retried on transport errors,
// timeouts, non-200 statuses, and undecodable bodies, up to cfg.Attempts
// attempts in total with cfg.RetryDelay between them.
func NewClient(cfg Config) *Client {
	cfg = cfg.withDefaults()

	h := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "reelmatch/1.0").
		SetRetryCount(cfg.Attempts - 1).
		SetRetryWaitTime(cfg.RetryDelay).
		SetRetryMaxWaitTime(cfg.RetryDelay).
		SetLogger(restyLogger{})

	if cfg.Transport != nil {
		h.SetTransport(cfg.Transport)
	}

	h.AddRetryCondition(func(r *resty.Response, err error) bool {
		return err != nil || r == nil || r.StatusCode() != 200
	})
	h.AddRetryHook(func(r *resty.Response, err error) {
		fields := []zap.Field{zap.Error(err)}
		if r != nil {
			fields = append(fields, zap.Int("status", r.StatusCode()), zap.Int("attempt", r.Request.Attempt))
		}
		logger.Log.Debug("TMDB request failed, retrying", fields...)
	})

	return &Client{
		http:         h,
		apiKey:       cfg.APIKey,
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
	}
}

// get performs one retried GET and decodes the body into result.
func (c *Client) get(ctx context.Context, op, path string, result any) bool {
	start := time.Now()
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("api_key", c.apiKey).
		SetResult(result).
		ForceContentType("application/json")

	resp, err := req.Get(path)

	m := metrics.Get()
	m.MetadataAttemptsTotal.WithLabelValues(op).Add(float64(req.Attempt))

	ok := err == nil && resp != nil && resp.StatusCode() == 200
	m.RecordMetadataFetch(op, ok, time.Since(start).Seconds())

	if !ok {
		fields := []zap.Field{
			zap.String("operation", op),
			zap.String("path", path),
			zap.Int("attempts", req.Attempt),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		if resp != nil {
			fields = append(fields, zap.Int("status", resp.StatusCode()))
		}
		logger.Log.Warn("TMDB lookup gave up", fields...)
	}
	return ok
}

// FetchPoster returns the w500 poster URL.
func (c *Client) FetchPoster(ctx context.Context, movieID int64) (string, bool) {
	var movie movieResponse
	if !c.get(ctx, OpPoster, fmt.Sprintf("/movie/%d", movieID), &movie) {
		return "", false
	}
	if movie.PosterPath == nil || *movie.PosterPath == "" {
		return "", false
	}
	return c.imageBaseURL + "/w500" + *movie.PosterPath, true
}

// FetchDetails returns title, overview, rating, release date, and genres.
func (c *Client) FetchDetails(ctx context.Context, movieID int64) (Details, bool) {
	var movie movieResponse
	if !c.get(ctx, OpDetails, fmt.Sprintf("/movie/%d", movieID), &movie) {
		return Details{}, false
	}

	d := Details{
		Title:       movie.Title,
		Overview:    movie.Overview,
		Rating:      NotAvailable,
		ReleaseDate: NotAvailable,
	}
	if movie.VoteAverage != nil {
		d.Rating = formatRating(*movie.VoteAverage)
	}
	if movie.ReleaseDate != nil {
		d.ReleaseDate = *movie.ReleaseDate
	}
	names := make([]string, 0, len(movie.Genres))
	for _, g := range movie.Genres {
		names = append(names, g.Name)
	}
	d.Genres = strings.Join(names, ", ")
	return d, true
}

// FetchTrailer returns the watch URL of the first YouTube trailer.
func (c *Client) FetchTrailer(ctx context.Context, movieID int64) (string, bool) {
	var videos videosResponse
	if !c.get(ctx, OpTrailer, fmt.Sprintf("/movie/%d/videos", movieID), &videos) {
		return "", false
	}
	for _, v := range videos.Results {
		if v.Type == "Trailer" && v.Site == "YouTube" {
			return youtubeWatchURL + v.Key, true
		}
	}
	return "", false
}

// formatRating renders 7 as "7.0" and 7.25 as "7.25".
func formatRating(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// restyLogger routes resty's own messages to the debug log; failed lookups
// are reported once by Client.get.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) {
	logger.SugaredLog.Debugf("resty: "+format, v...)
}

func (restyLogger) Warnf(format string, v ...interface{}) {
	logger.SugaredLog.Debugf("resty: "+format, v...)
}

func (restyLogger) Debugf(format string, v ...interface{}) {
	logger.SugaredLog.Debugf("resty: "+format, v...)
}

// Package output renders CLI results as colored text or JSON.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/zfogg/reelmatch/internal/tmdb"
	"golang.org/x/term"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format represents the output format type
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat maps a configured format name to a Format. Unknown names
// fall back to text.
func ParseFormat(s string) Format {
	if strings.EqualFold(s, string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}

// ValidFormat reports whether s names a supported format.
func ValidFormat(s string) bool {
	return s == string(FormatText) || s == string(FormatJSON)
}

var (
	bold    = color.New(color.Bold)
	faint   = color.New(color.Faint)
	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed)
	info    = color.New(color.FgCyan)
	warning = color.New(color.FgYellow)
)

// MovieItem is one recommended movie.
type MovieItem struct {
	MovieID   int64    `json:"movie_id"`
	Title     string   `json:"title"`
	Tags      []string `json:"tags"`
	PosterURL *string  `json:"poster_url"`
}

// RecommendationList is a recommendation result ready for printing.
type RecommendationList struct {
	Mode   string      `json:"mode"`
	Query  string      `json:"query"`
	Movies []MovieItem `json:"movies"`
	Count  int         `json:"count"`
}

// MovieDetails is the detail view of one movie. Nil pieces are unavailable.
type MovieDetails struct {
	MovieID    int64         `json:"movie_id"`
	Title      string        `json:"title"`
	Overview   string        `json:"overview"`
	Tags       []string      `json:"tags"`
	Details    *tmdb.Details `json:"details"`
	PosterURL  *string       `json:"poster_url"`
	TrailerURL *string       `json:"trailer_url"`
	EmbedURL   *string       `json:"embed_url"`
	Links      []tmdb.Link   `json:"links"`
}

// Printer writes results to w in one format.
type Printer struct {
	w      io.Writer
	format Format
	// width wraps long text when positive; set when w is a terminal.
	width int
}

// New returns a printer writing to w. A nil w writes to color.Output.
func New(w io.Writer, format Format) *Printer {
	if w == nil {
		w = color.Output
	}
	return &Printer{w: w, format: format, width: terminalWidth(w)}
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// wrap breaks text into lines of at most width columns at spaces. Words
// longer than width get a line of their own.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if width <= 0 || len(words) == 0 {
		return text
	}
	var b strings.Builder
	line := 0
	for _, w := range words {
		switch {
		case line == 0:
		case line+1+len(w) > width:
			b.WriteByte('\n')
			line = 0
		default:
			b.WriteByte(' ')
			line++
		}
		b.WriteString(w)
		line += len(w)
	}
	return b.String()
}

// Format returns the printer's format.
func (p *Printer) Format() Format {
	return p.format
}

// JSON writes v as indented JSON.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Recommendations prints a result list. An empty list is not an error.
func (p *Printer) Recommendations(r RecommendationList) error {
	if r.Movies == nil {
		r.Movies = []MovieItem{}
	}
	r.Count = len(r.Movies)
	if p.format == FormatJSON {
		return p.JSON(r)
	}

	bold.Fprintf(p.w, "Recommendations for %q", r.Query)
	faint.Fprintf(p.w, " (%s)\n", r.Mode)
	if len(r.Movies) == 0 {
		warning.Fprintln(p.w, "No matching movies.")
		return nil
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	for i, m := range r.Movies {
		line := fmt.Sprintf("%2d.\t%s\t%s", i+1, m.Title, strings.Join(m.Tags, ", "))
		if m.PosterURL != nil {
			line += "\t" + *m.PosterURL
		}
		fmt.Fprintln(tw, line)
	}
	return tw.Flush()
}

// Genres prints the genre vocabulary.
func (p *Printer) Genres(genres []string) error {
	if genres == nil {
		genres = []string{}
	}
	if p.format == FormatJSON {
		return p.JSON(map[string]any{"genres": genres, "count": len(genres)})
	}
	for _, g := range genres {
		fmt.Fprintln(p.w, g)
	}
	return nil
}

// Movie prints a detail view.
func (p *Printer) Movie(d MovieDetails) error {
	if p.format == FormatJSON {
		return p.JSON(d)
	}

	bold.Fprintln(p.w, d.Title)
	faint.Fprintf(p.w, "id %d", d.MovieID)
	if len(d.Tags) > 0 {
		faint.Fprintf(p.w, " · %s", strings.Join(d.Tags, ", "))
	}
	fmt.Fprintln(p.w)

	if d.Details != nil {
		p.field("Rating", d.Details.Rating)
		p.field("Released", d.Details.ReleaseDate)
		p.field("Genres", d.Details.Genres)
		fmt.Fprintln(p.w)
		fmt.Fprintln(p.w, wrap(d.Details.Overview, p.width))
	} else {
		warning.Fprintln(p.w, "Details unavailable.")
		if d.Overview != "" {
			fmt.Fprintln(p.w, wrap(d.Overview, p.width))
		}
	}
	fmt.Fprintln(p.w)

	p.optionalField("Poster", d.PosterURL)
	p.optionalField("Trailer", d.TrailerURL)
	p.optionalField("Embed", d.EmbedURL)

	if len(d.Links) > 0 {
		fmt.Fprintln(p.w)
		bold.Fprintln(p.w, "Watch")
		for _, l := range d.Links {
			info.Fprintf(p.w, "  %s", l.Label)
			fmt.Fprintf(p.w, "  %s\n", l.URL)
		}
	}
	return nil
}

func (p *Printer) field(label, value string) {
	bold.Fprintf(p.w, "%s: ", label)
	fmt.Fprintln(p.w, value)
}

func (p *Printer) optionalField(label string, value *string) {
	if value == nil {
		bold.Fprintf(p.w, "%s: ", label)
		faint.Fprintln(p.w, "unavailable")
		return
	}
	p.field(label, *value)
}

// Success prints a green status line. JSON output stays silent.
func (p *Printer) Success(format string, args ...any) {
	if p.format == FormatText {
		success.Fprintf(p.w, format+"\n", args...)
	}
}

// Info prints a cyan status line. JSON output stays silent.
func (p *Printer) Info(format string, args ...any) {
	if p.format == FormatText {
		info.Fprintf(p.w, format+"\n", args...)
	}
}

// Error prints a red error line to w regardless of format.
func Error(w io.Writer, format string, args ...any) {
	failure.Fprintf(w, "Error: "+format+"\n", args...)
}

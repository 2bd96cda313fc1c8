package catalog

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// bundleFile is the on-disk JSON artifact.
type bundleFile struct {
	Movies     jsoniter.RawMessage `json:"movies"`
	Similarity Matrix              `json:"similarity"`
}

// LoadJSON reads a JSON bundle from path.
func LoadJSON(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bundle: %w", err)
	}
	defer f.Close()

	c, err := DecodeJSON(f)
	if err != nil {
		return nil, fmt.Errorf("load bundle %s: %w", path, err)
	}
	return c, nil
}

// DecodeJSON reads {"movies": [...], "similarity": [[...]]}. The column set
// is the union of keys across movie objects; a movie missing a key gets the
// zero value for it.
func DecodeJSON(r io.Reader) (*Catalog, error) {
	var bundle bundleFile
	if err := json.NewDecoder(r).Decode(&bundle); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}

	var columns []map[string]jsoniter.RawMessage
	if len(bundle.Movies) > 0 {
		if err := json.Unmarshal(bundle.Movies, &columns); err != nil {
			return nil, fmt.Errorf("decode movies: %w", err)
		}
	}
	present := make(map[string]bool)
	for _, row := range columns {
		for key := range row {
			present[key] = true
		}
	}
	if err := checkColumns(present); err != nil {
		return nil, err
	}

	var movies []Movie
	if err := json.Unmarshal(bundle.Movies, &movies); err != nil {
		return nil, fmt.Errorf("decode movies: %w", err)
	}

	return New(movies, bundle.Similarity)
}

// WriteJSON encodes movies and matrix as a bundle.
func WriteJSON(w io.Writer, movies []Movie, matrix Matrix) error {
	moviesJSON, err := json.Marshal(movies)
	if err != nil {
		return fmt.Errorf("encode movies: %w", err)
	}
	if matrix == nil {
		matrix = Matrix{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bundleFile{Movies: moviesJSON, Similarity: matrix}); err != nil {
		return fmt.Errorf("encode bundle: %w", err)
	}
	return nil
}

func checkColumns(present map[string]bool) error {
	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
}

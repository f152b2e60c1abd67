// Package dataset resolves dataset keys to their published JSON documents and
// loads those documents into raw node trees.
package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// ID identifies one of the published datasets.
type ID string

const (
	Kickstarter ID = "kickstarter"
	Movies      ID = "movies"
	VideoGames  ID = "videogames"
)

// Default is used when a key is empty or unknown.
const Default = Kickstarter

// urls is the fixed key → document table.
var urls = map[ID]string{
	Kickstarter: "https://cdn.freecodecamp.org/testable-projects-fcc/data/tree_map/kickstarter-funding-data.json",
	Movies:      "https://cdn.freecodecamp.org/testable-projects-fcc/data/tree_map/movie-data.json",
	VideoGames:  "https://cdn.freecodecamp.org/testable-projects-fcc/data/tree_map/video-game-sales-data.json",
}

// order is the listing order of the table.
var order = []ID{Kickstarter, Movies, VideoGames}

// IDs returns the known dataset keys in table order.
func IDs() []ID {
	out := make([]ID, len(order))
	copy(out, order)
	return out
}

// Known reports whether key names a dataset in the table.
func Known(key string) bool {
	_, ok := urls[ID(key)]
	return ok
}

// URL returns the document location for id, or "" if id is not in the table.
func URL(id ID) string {
	return urls[id]
}

// Resolve maps a key to its dataset and URL. Empty and unknown keys fall back
// to Default; this is not an error.
func Resolve(key string) (ID, string) {
	return ResolveWithDefault(key, Default)
}

// ResolveWithDefault is Resolve with a caller-chosen fallback. A fallback that
// is itself unknown is replaced by Default.
func ResolveWithDefault(key string, fallback ID) (ID, string) {
	if u, ok := urls[ID(key)]; ok {
		return ID(key), u
	}
	if u, ok := urls[fallback]; ok {
		return fallback, u
	}
	return Default, urls[Default]
}

// Loader fetches treemap documents over HTTP.
type Loader struct {
	client *http.Client
}

// NewLoader creates a Loader. A nil client means http.DefaultClient, so the
// only timeouts are the transport defaults.
func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{client: client}
}

// Load performs a single GET of url and parses the body. There is no retry.
func (l *Loader) Load(ctx context.Context, url string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}

	return newDocument(body, url)
}

// LoadFile reads a local document with the same schema as the published ones.
func LoadFile(path string) (*Document, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return newDocument(body, path)
}

func newDocument(body []byte, source string) (*Document, error) {
	root, err := Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}
	return &Document{
		Title:       root.NodeName(),
		Description: "Data from " + source,
		Source:      source,
		Root:        root,
	}, nil
}

package bank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ManifestName is the index file the bank builder writes.
const ManifestName = "index.json"

// Loader fetches the bank manifest and per-bank question files from a
// base location, either an http(s) URL or a local directory. A failed
// load returns an error and nothing else; callers keep whatever state
// they already had.
type Loader struct {
	base   string
	remote bool
	client *http.Client
}

// NewLoader creates a Loader for base. Bases starting with http:// or
// https:// are fetched over the network.
func NewLoader(base string) *Loader {
	remote := strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://")
	return &Loader{
		base:   strings.TrimRight(base, "/"),
		remote: remote,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Manifest loads and validates the bank index.
func (l *Loader) Manifest(ctx context.Context) (*Manifest, error) {
	raw, err := l.read(ctx, ManifestName)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}
	if err := validate(manifestSchema, raw); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", ManifestName, err)
	}

	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}

// Questions loads and validates one bank's question file.
func (l *Loader) Questions(ctx context.Context, info Info) (*File, error) {
	raw, err := l.read(ctx, info.QuestionsPath)
	if err != nil {
		return nil, fmt.Errorf("load bank %s: %w", info.ID, err)
	}
	if err := validate(questionsSchema, raw); err != nil {
		return nil, fmt.Errorf("bank %s: %w", info.ID, err)
	}

	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode bank %s: %w", info.ID, err)
	}
	return &f, nil
}

func (l *Loader) read(ctx context.Context, rel string) ([]byte, error) {
	if l.remote {
		return l.fetch(ctx, l.base+"/"+rel)
	}
	return os.ReadFile(filepath.Join(l.base, filepath.FromSlash(rel)))
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

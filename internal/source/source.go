// Package source acquires raw datasets from a local file, a remote URL or the
// bundled sample, and decodes them into untyped raw tables.
package source

import (
	"context"
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
)

// SampleRef selects the bundled sample dataset.
const SampleRef = "sample"

// SampleName is the logical name of the bundled sample.
const SampleName = "sample_messy_dataset.csv"

//go:embed sample_messy_dataset.csv
var sampleCSV []byte

// SampleCSV returns a copy of the bundled sample dataset.
func SampleCSV() []byte {
	return append([]byte(nil), sampleCSV...)
}

// IsRemote reports whether ref is an http(s) URL.
func IsRemote(ref string) bool {
	l := strings.ToLower(ref)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Acquire resolves ref to a name and byte buffer. fetcher may be nil for local refs.
func Acquire(ctx context.Context, ref string, fetcher *Fetcher) (string, []byte, error) {
	switch {
	case ref == SampleRef:
		return SampleName, SampleCSV(), nil
	case IsRemote(ref):
		if fetcher == nil {
			fetcher = NewFetcher(0, 0, 0, 0)
		}
		data, err := fetcher.Fetch(ctx, ref)
		if err != nil {
			return "", nil, err
		}
		return remoteName(ref), data, nil
	default:
		data, err := os.ReadFile(ref)
		if err != nil {
			return "", nil, fmt.Errorf("read input: %w", err)
		}
		return ref, data, nil
	}
}

// Load acquires and decodes ref into a raw table.
func Load(ctx context.Context, ref string, fetcher *Fetcher) (*dataset.RawTable, error) {
	name, data, err := Acquire(ctx, ref, fetcher)
	if err != nil {
		return nil, err
	}
	tbl, err := Decode(name, data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path.Base(name), err)
	}
	return tbl, nil
}

// remoteName derives a file name from the URL path, defaulting to input.csv.
func remoteName(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return "input.csv"
	}
	base := path.Base(u.Path)
	if base == "" || base == "/" || base == "." || !strings.Contains(base, ".") {
		return "input.csv"
	}
	return base
}

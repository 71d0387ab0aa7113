package catalog

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/handiism/sjt-catalog/internal/http"
)

// Format is the encoding of a dataset payload.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor picks a format from a file name or URL. Anything that does not
// end in .yaml or .yml is treated as JSON.
func FormatFor(name string) Format {
	if u, err := url.Parse(name); err == nil && u.Path != "" {
		name = u.Path
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Source delivers a raw dataset payload.
type Source interface {
	// Fetch retrieves the payload.
	Fetch(ctx context.Context) ([]byte, error)

	// Format reports how the payload is encoded.
	Format() Format

	// String names the source for logs.
	String() string
}

// FileSource reads a dataset from the local file system.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.Path)
}

func (s FileSource) Format() Format { return FormatFor(s.Path) }

func (s FileSource) String() string { return s.Path }

// HTTPSource retrieves a dataset with a GET request.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.NewClient()
	}
	return client.Get(ctx, s.URL)
}

func (s HTTPSource) Format() Format { return FormatFor(s.URL) }

func (s HTTPSource) String() string { return s.URL }

// StaticSource serves an in-memory payload.
type StaticSource struct {
	Data []byte
	Kind Format
}

func (s StaticSource) Fetch(ctx context.Context) ([]byte, error) {
	return s.Data, ctx.Err()
}

func (s StaticSource) Format() Format { return s.Kind }

func (s StaticSource) String() string { return "static" }

// SourceFor returns an HTTPSource for http(s) locations and a FileSource
// for everything else.
func SourceFor(location string, client *http.Client) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return HTTPSource{URL: location, Client: client}
	}
	return FileSource{Path: location}
}

// Fetch loads and parses a dataset. Every failure matches ErrDataUnavailable.
func Fetch(ctx context.Context, src Source) (*Dataset, error) {
	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %w", ErrDataUnavailable, src, err)
	}

	ds, err := Parse(data, src.Format())
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrDataUnavailable, src, err)
	}

	return ds, nil
}

// Parse decodes data in the given format.
func Parse(data []byte, f Format) (*Dataset, error) {
	if f == FormatYAML {
		return ParseYAML(data)
	}
	return ParseJSON(data)
}

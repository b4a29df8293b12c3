package feed

import (
	"context"
	"os"
	"strings"

	"github.com/skillboard/skillboard/pkg/errors"
)

// IsURL reports whether source is an HTTP or HTTPS feed source.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load reads a feed from a file path or an HTTP URL.
// URL sources go through the Fetcher, so they participate in caching.
func (f *Fetcher) Load(ctx context.Context, source string, refresh bool) ([]string, error) {
	if IsURL(source) {
		return f.Fetch(ctx, source, refresh)
	}
	return LoadFile(source)
}

// LoadFile reads and parses a feed from a local file.
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "feed file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "read feed %s", path)
	}
	return Parse(data)
}

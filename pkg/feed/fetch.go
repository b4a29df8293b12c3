package feed

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/skillboard/skillboard/pkg/cache"
	"github.com/skillboard/skillboard/pkg/errors"
	"github.com/skillboard/skillboard/pkg/observability"
)

// maxFeedBytes caps feed responses; a skill list has no business being
// larger than this.
const maxFeedBytes = 1 << 20

// Fetcher retrieves feeds over HTTP with response caching and retries.
//
// All methods are safe for concurrent use.
type Fetcher struct {
	http  *http.Client
	cache cache.Cache
	keyer cache.Keyer
	ttl   time.Duration
}

// NewFetcher creates a Fetcher backed by the given cache.
// Use cache.NewNullCache() to disable caching.
func NewFetcher(backend cache.Cache, ttl time.Duration) *Fetcher {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &Fetcher{
		http:  &http.Client{Timeout: 30 * time.Second},
		cache: backend,
		keyer: cache.NewDefaultKeyer(),
		ttl:   ttl,
	}
}

// TTL returns how long fetched feed payloads stay cached.
func (f *Fetcher) TTL() time.Duration {
	return f.ttl
}

// Fetch retrieves and parses the feed at url.
//
// If refresh is false, a fresh cached response is used without touching the
// network. On a successful fetch the raw payload is cached for the
// fetcher's TTL.
func (f *Fetcher) Fetch(ctx context.Context, url string, refresh bool) ([]string, error) {
	start := time.Now()
	key := f.keyer.FeedKey(url)

	if !refresh {
		if data, hit, _ := f.cache.Get(ctx, key); hit {
			observability.Cache().OnCacheHit(ctx, "feed")
			labels, err := Parse(data)
			if err == nil {
				observability.Feed().OnLoaded(ctx, url, len(labels), time.Since(start))
				return labels, nil
			}
			// A cached payload that no longer parses is dropped.
			_ = f.cache.Delete(ctx, key)
		}
		observability.Cache().OnCacheMiss(ctx, "feed")
	}

	observability.Feed().OnFetch(ctx, url)
	var data []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, err = f.get(ctx, url)
		return err
	})
	if err != nil {
		observability.Feed().OnError(ctx, url, err)
		return nil, err
	}

	labels, err := Parse(data)
	if err != nil {
		observability.Feed().OnError(ctx, url, err)
		return nil, err
	}

	if err := f.cache.Set(ctx, key, data, f.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "feed", len(data))
	}
	observability.Feed().OnLoaded(ctx, url, len(labels), time.Since(start))
	return labels, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "bad feed URL %s", url)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeFeedNotFound, "feed not found: %s", url)
	case resp.StatusCode >= 500:
		return nil, cache.Retryable(errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", url, resp.StatusCode))
	default:
		return nil, errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes+1))
	if err != nil {
		return nil, cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url))
	}
	if len(data) > maxFeedBytes {
		return nil, errors.New(errors.ErrCodeInvalidFeed, "feed %s exceeds %d bytes", url, maxFeedBytes)
	}
	return data, nil
}

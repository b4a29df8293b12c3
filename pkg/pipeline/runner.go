package pipeline

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/skillboard/skillboard/pkg/board"
	"github.com/skillboard/skillboard/pkg/cache"
	"github.com/skillboard/skillboard/pkg/feed"
	"github.com/skillboard/skillboard/pkg/measure"
	"github.com/skillboard/skillboard/pkg/render/layout"
)

// Runner executes the pipeline with caching. It is stateless apart from
// the cache, fetcher, and logger; concurrent runs with different options
// are safe.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Fetcher *feed.Fetcher
	Logger  *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses the default key scheme, and a nil logger uses log.Default(). feedTTL
// bounds how long fetched feed payloads are reused; 0 and below mean
// DefaultFeedTTL.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger, feedTTL time.Duration) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	if feedTTL <= 0 {
		feedTTL = DefaultFeedTTL
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Fetcher: feed.NewFetcher(c, feedTTL),
		Logger:  logger,
	}
}

// Execute runs the complete load → pack → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	loadStart := time.Now()
	labels, pool, err := r.LoadPool(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Labels = labels
	result.Pool = pool
	result.PoolHash = poolHash(pool)
	result.Stats.LoadTime = time.Since(loadStart)

	r.Logger.Info("loaded feed",
		"source", opts.Source,
		"labels", len(labels),
		"duration", result.Stats.LoadTime)

	packStart := time.Now()
	result.Layout = r.Pack(pool, opts)
	result.Stats.PackTime = time.Since(packStart)

	r.Logger.Info("packed board",
		"boxes", result.Layout.BoxCount(),
		"lines", len(result.Layout.Lines),
		"duration", result.Stats.PackTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.renderWithCache(ctx, result, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadPool loads the feed and measures it into a label pool.
func (r *Runner) LoadPool(ctx context.Context, opts Options) ([]string, []board.Label, error) {
	labels, err := r.Fetcher.Load(ctx, opts.Source, opts.Refresh)
	if err != nil {
		return nil, nil, err
	}
	m := measure.New(measure.Style{
		PadLeft:  opts.MeasurePadLeft,
		PadRight: opts.MeasurePadRight,
	})
	return labels, board.MeasureLabels(labels, m), nil
}

// Pack fills the board lines and positions every box.
func (r *Runner) Pack(pool []board.Label, opts Options) layout.Layout {
	cfg := opts.Board
	budget := opts.Width - 2*cfg.Padding
	rng := rand.New(rand.NewSource(opts.Seed))
	lines := board.FillLines(rng, pool, budget, cfg)
	return layout.Compute(lines, budget, cfg.Gap, cfg.Padding)
}

// poolHash identifies a measured pool regardless of feed ordering quirks;
// labels are already deduplicated, so the serialized pool is canonical.
func poolHash(pool []board.Label) string {
	data, _ := json.Marshal(pool)
	return cache.Hash(data)
}

package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sosatree/sosatree/pkg/cache"
	"github.com/sosatree/sosatree/pkg/chart"
	"github.com/sosatree/sosatree/pkg/gedcom"
	"github.com/sosatree/sosatree/pkg/observability"
	"github.com/sosatree/sosatree/pkg/theme"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Themes shape both the layout (box geometry) and the render (colors),
	// so resolve once up front.
	th, err := theme.Load(opts.Theme, opts.ThemeDir)
	if err != nil {
		return nil, err
	}

	// Stage 1: Parse
	parseStart := time.Now()
	tree, treeHash, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Tree = tree
	result.TreeHash = treeHash
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.Individuals = tree.Len()
	result.CacheInfo.ParseHit = parseHit

	r.Logger.Info("parsed gedcom",
		"individuals", tree.Len(),
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	c, layoutHit, err := r.ComputeChartWithCacheInfo(ctx, tree, treeHash, th, opts)
	if err != nil {
		return nil, err
	}
	result.Chart = c
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Boxes = len(c.Boxes)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed chart",
		"root", c.RootXref,
		"boxes", len(c.Boxes),
		"canvas", []int{c.Width, c.Height},
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, c, th, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo reads and parses the GEDCOM source, archiving the raw
// bytes in the cache keyed by content hash. The archived source lets the API
// serve chart requests against a previously uploaded tree hash without the
// original file. Returns the tree, the source hash, and cache hit info.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (*gedcom.Tree, string, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, "", false, err
	}
	r.applyLogger(&opts)

	data, err := ReadSource(opts)
	if err != nil {
		return nil, "", false, err
	}
	sourceHash := cache.Hash(data)
	cacheKey := r.Keyer.TreeKey(sourceHash)

	hit := false
	if !opts.Refresh {
		if _, ok, err := r.Cache.Get(ctx, cacheKey); err == nil && ok {
			hit = true
			observability.Cache().OnCacheHit(ctx, "tree")
		} else {
			observability.Cache().OnCacheMiss(ctx, "tree")
		}
	}

	tree, err := Parse(ctx, opts.Source, data)
	if err != nil {
		return nil, "", false, err
	}

	if !hit {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLTree); err == nil {
			observability.Cache().OnCacheSet(ctx, "tree", len(data))
		}
	}

	return tree, sourceHash, hit, nil
}

// ParseTree is a convenience wrapper that discards the cache hit info.
func (r *Runner) ParseTree(ctx context.Context, opts Options) (*gedcom.Tree, string, error) {
	tree, hash, _, err := r.ParseWithCacheInfo(ctx, opts)
	return tree, hash, err
}

// ParseFromCache rebuilds a tree from an archived source by its hash.
// Used by the API to serve chart requests for previously uploaded sources.
func (r *Runner) ParseFromCache(ctx context.Context, sourceHash string) (*gedcom.Tree, bool, error) {
	data, hit, err := r.Cache.Get(ctx, r.Keyer.TreeKey(sourceHash))
	if err != nil || !hit {
		return nil, false, err
	}
	tree, err := Parse(ctx, "", data)
	if err != nil {
		return nil, false, err
	}
	return tree, true, nil
}

// ComputeChartWithCacheInfo computes chart geometry with caching and returns
// cache hit info.
func (r *Runner) ComputeChartWithCacheInfo(ctx context.Context, tree *gedcom.Tree, treeHash string, th theme.Theme, opts Options) (chart.Chart, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return chart.Chart{}, false, err
	}
	r.applyLogger(&opts)

	geo := themeGeometry{
		BoxWidth:  th.BoxWidth,
		BoxHeight: th.BoxHeight,
		SpacingX:  th.SpacingX,
		SpacingY:  th.SpacingY,
	}
	cacheKey := r.Keyer.GeometryKey(treeHash, opts.Root, opts.GeometryKeyOpts(geo))

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		cached, err := chart.Unmarshal(data)
		if err == nil {
			observability.Cache().OnCacheHit(ctx, "geometry")
			return cached, true, nil
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "geometry")

	c, err := ComputeChart(ctx, tree, th, opts)
	if err != nil {
		return chart.Chart{}, false, err
	}

	if data, err := chart.Marshal(c); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLGeometry); err == nil {
			observability.Cache().OnCacheSet(ctx, "geometry", len(data))
		}
	}

	return c, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, c chart.Chart, th theme.Theme, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	chartData, err := chart.Marshal(c)
	if err != nil {
		return nil, false, err
	}
	geometryHash := cache.Hash(chartData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(geometryHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := RenderChart(ctx, c, th, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(geometryHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, c chart.Chart, th theme.Theme, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, c, th, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

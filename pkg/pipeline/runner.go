package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/etchlab/etchmark/pkg/cache"
	"github.com/etchlab/etchmark/pkg/errors"
	"github.com/etchlab/etchmark/pkg/profile"
	"github.com/etchlab/etchmark/pkg/render"
)

// artifactTTL bounds how long cached artifacts are kept. Rendering is
// deterministic, so entries only go stale when the renderer changes.
const artifactTTL = 30 * 24 * time.Hour

// Runner executes the pipeline with caching and stage logging.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DocumentID is a per-run identifier for logs and batch tracking.
	// It is never embedded in the SVG, which stays input-deterministic.
	DocumentID string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SlotCount   int
	BuildTime   time.Duration
	RenderTime  time.Duration
	ConvertTime time.Duration
}

// CacheInfo tracks cache hits per stage.
type CacheInfo struct {
	DocumentHit  bool            // rendered SVG came from cache
	ArtifactHits map[string]bool // per-format conversion hits
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete build → render → convert pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if !opts.validated {
		if err := opts.ValidateAndSetDefaults(); err != nil {
			return nil, err
		}
	}

	result := &Result{
		DocumentID: uuid.NewString(),
		Artifacts:  make(map[string][]byte),
		CacheInfo:  CacheInfo{ArtifactHits: make(map[string]bool)},
	}

	requestHash, err := r.requestHash(opts)
	if err != nil {
		return nil, err
	}

	// Stage 1: render the SVG document (cached by request hash).
	renderStart := time.Now()
	svg, hit, err := r.renderDocument(ctx, opts, requestHash, &result.Stats)
	if err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.DocumentHit = hit

	r.Logger.Info("rendered document",
		"id", result.DocumentID,
		"slots", result.Stats.SlotCount,
		"bytes", len(svg),
		"cached", hit,
		"duration", result.Stats.RenderTime)

	// Stage 2: convert to the requested formats.
	convertStart := time.Now()
	documentHash := cache.Hash(svg)
	for _, format := range opts.Formats {
		artifact, hit, err := r.convert(ctx, svg, documentHash, format, opts.PNGScale)
		if err != nil {
			return nil, err
		}
		result.Artifacts[format] = artifact
		result.CacheInfo.ArtifactHits[format] = hit
	}
	result.Stats.ConvertTime = time.Since(convertStart)

	r.Logger.Info("produced artifacts",
		"id", result.DocumentID,
		"formats", opts.Formats,
		"duration", result.Stats.ConvertTime)

	return result, nil
}

// requestHash hashes the serializable parts of the options. The hash keys
// the document cache, so everything that affects output bytes must be in it.
func (r *Runner) requestHash(opts Options) (string, error) {
	data, err := json.Marshal(struct {
		Request Request         `json:"request"`
		Profile profile.Profile `json:"profile"`
		Scale   float64         `json:"scale"`
	}{opts.Request, opts.Profile, opts.PNGScale})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash request")
	}
	return cache.Hash(data), nil
}

// renderDocument returns the SVG bytes for the request, consulting the
// cache first.
func (r *Runner) renderDocument(ctx context.Context, opts Options, requestHash string, stats *Stats) ([]byte, bool, error) {
	key := r.Keyer.DocumentKey(requestHash)
	if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
		stats.SlotCount = len(opts.Request.Slots)
		return data, true, nil
	}

	buildStart := time.Now()
	doc, err := BuildDocument(opts)
	if err != nil {
		return nil, false, err
	}
	stats.BuildTime = time.Since(buildStart)
	stats.SlotCount = len(opts.Request.Slots)

	svg, err := doc.Render(opts.Renderer)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, svg, artifactTTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
	}
	return svg, false, nil
}

// convert produces one output format from the rendered SVG.
func (r *Runner) convert(ctx context.Context, svg []byte, documentHash, format string, scale float64) ([]byte, bool, error) {
	if format == FormatSVG {
		return svg, false, nil
	}

	key := r.Keyer.ArtifactKey(documentHash, format, scale)
	if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}

	var (
		artifact []byte
		err      error
	)
	switch format {
	case FormatPNG:
		artifact, err = render.ToPNG(svg, scale)
	case FormatPDF:
		artifact, err = render.ToPDF(svg)
	default:
		return nil, false, errors.New(errors.ErrCodeInvalidConfiguration,
			"invalid format %q", format)
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeExternalRenderer, err,
			"convert document to %s", format)
	}

	if err := r.Cache.Set(ctx, key, artifact, artifactTTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
	}
	return artifact, false, nil
}

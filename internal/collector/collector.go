// Package collector builds the asset manifest of a presentation bundle.
//
// Collection runs three phases in a fixed order: stylesheets (in the order
// given by the caller), provider configuration, then the optional layout
// markup. The first missing or unreadable file aborts the whole run and no
// manifest is returned.
package collector

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/quantmind-br/deckpack/internal/assets"
	"github.com/quantmind-br/deckpack/internal/domain"
	"github.com/quantmind-br/deckpack/internal/extract"
	"github.com/quantmind-br/deckpack/internal/utils"
)

// Phase names used in log fields
const (
	PhaseStylesheets   = "stylesheets"
	PhaseConfiguration = "configuration"
	PhaseLayout        = "layout"
)

// DefaultConcurrency is the number of stylesheets read in parallel
const DefaultConcurrency = 4

// Collector builds manifests. It holds no per-run state and may be reused.
type Collector struct {
	fs          domain.FileSystem
	encoder     *assets.Encoder
	logger      *utils.Logger
	concurrency int
}

// Options contains options for creating a collector
type Options struct {
	Logger      *utils.Logger
	FS          domain.FileSystem
	Cache       domain.Cache
	CacheTTL    time.Duration
	Concurrency int
}

// New creates a new collector
func New(opts Options) *Collector {
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = utils.OSFileSystem{}
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	return &Collector{
		fs: fsys,
		encoder: assets.NewEncoder(assets.EncoderOptions{
			FS:       fsys,
			Cache:    opts.Cache,
			CacheTTL: opts.CacheTTL,
			Logger:   logger,
		}),
		logger:      logger.WithComponent("collector"),
		concurrency: concurrency,
	}
}

// Collect builds the manifest for a compiled configuration, its stylesheets
// and an optional layout template. basePath is the directory that
// configuration references resolve against.
func (c *Collector) Collect(ctx context.Context, cfg *domain.Configuration, stylesheets []string, basePath string, opts domain.CollectOptions) (*domain.Manifest, error) {
	return c.CollectWithTracker(ctx, cfg, stylesheets, basePath, opts, assets.NewTracker())
}

// CollectWithTracker is Collect with a caller-owned output path tracker.
// The tracker must not be shared with a concurrent run.
func (c *Collector) CollectWithTracker(ctx context.Context, cfg *domain.Configuration, stylesheets []string, basePath string, opts domain.CollectOptions, tracker *assets.Tracker) (*domain.Manifest, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if tracker == nil {
		tracker = assets.NewTracker()
	}

	r := &run{
		Collector: c,
		manifest:  domain.NewManifest(stylesheets),
		tracker:   tracker,
		threshold: opts.InlineThreshold,
	}

	if err := r.collectStylesheets(ctx, stylesheets); err != nil {
		return nil, err
	}
	if err := r.collectConfiguration(ctx, cfg, basePath); err != nil {
		return nil, err
	}
	if opts.HasLayout() {
		if err := r.collectLayout(ctx, opts.LayoutTemplate, opts.LayoutBasePath); err != nil {
			return nil, err
		}
	}

	for _, collision := range tracker.Collisions() {
		c.logger.Warn().
			Str("filename", collision.Filename).
			Str("existing", collision.ExistingSource).
			Str("incoming", collision.IncomingSource).
			Str("resolved", collision.ResolvedPath).
			Msg(assets.FormatCollision(collision))
	}

	stats := r.manifest.Stats()
	c.logger.Info().
		Int("assets", stats.TotalAssets).
		Int("inlined", stats.InlinedAssets).
		Int("copied", stats.CopiedAssets).
		Int("output_paths", tracker.Len()).
		Int("collisions", len(tracker.Collisions())).
		Msg("Asset collection complete")

	return r.manifest, nil
}

// run is the state of a single collection
type run struct {
	*Collector
	manifest  *domain.Manifest
	tracker   *assets.Tracker
	threshold int64
}

// pending is a reference waiting to be registered
type pending struct {
	reference string
	path      string
	source    domain.AssetSource
	inlinable bool
}

func (r *run) collectStylesheets(ctx context.Context, stylesheets []string) error {
	log := r.logger.WithPhase(PhaseStylesheets)

	// Reads may overlap; everything after them runs in input order.
	texts, readErrs := utils.ParallelMap(ctx, stylesheets, r.concurrency, func(ctx context.Context, path string) (string, error) {
		return utils.ReadText(r.fs.ReadFile, path)
	})

	for i, sheet := range stylesheets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := readErrs[i]; err != nil {
			return &domain.StylesheetReadError{Path: sheet, Err: err}
		}

		refs := extract.CSSReferencesWithLines(texts[i])
		log.Debug().Str("file", sheet).Int("references", len(refs)).Msg("Scanned stylesheet")

		for _, ref := range refs {
			err := r.register(ctx, pending{
				reference: ref.URL,
				path:      assets.Resolve(extract.StripQueryAndFragment(ref.URL), sheet),
				source: domain.AssetSource{
					File:   sheet,
					Kind:   domain.SourceStylesheetURL,
					Line:   ref.Line,
					Column: ref.Column,
				},
				inlinable: true,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *run) collectConfiguration(ctx context.Context, cfg *domain.Configuration, basePath string) error {
	found := extract.ConfigAssets(cfg, basePath, assets.ResolveFromDir)
	r.logger.WithPhase(PhaseConfiguration).Debug().Int("references", len(found)).Msg("Scanned provider settings")

	for _, asset := range found {
		err := r.register(ctx, pending{
			reference: asset.Reference,
			path:      asset.Path,
			source: domain.AssetSource{
				File: domain.OriginConfiguration,
				Kind: domain.SourceConfiguration,
			},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *run) collectLayout(ctx context.Context, markup, layoutPath string) error {
	refs, err := extract.ScanLayout(markup)
	if err != nil {
		return err
	}
	r.logger.WithPhase(PhaseLayout).Debug().
		Int("attributes", len(refs.Attributes)).
		Int("styles", len(refs.Styles)).
		Msg("Scanned layout template")

	groups := []struct {
		refs []string
		kind domain.SourceKind
	}{
		{refs.Attributes, domain.SourceLayoutSrc},
		{refs.Styles, domain.SourceLayoutURL},
	}
	for _, group := range groups {
		for _, ref := range group.refs {
			err := r.register(ctx, pending{
				reference: ref,
				path:      assets.Resolve(extract.StripQueryAndFragment(ref), layoutPath),
				source: domain.AssetSource{
					File: domain.OriginLayoutTemplate,
					Kind: group.kind,
				},
				inlinable: true,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// register adds a source to an existing entry or creates a new entry
func (r *run) register(ctx context.Context, p pending) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if entry, ok := r.manifest.Get(p.path); ok {
		entry.Sources = append(entry.Sources, p.source)
		return nil
	}

	info, err := r.stat(p)
	if err != nil {
		return err
	}

	mimeType := assets.MIMEType(p.path)
	entry := &domain.AssetEntry{
		Reference:  p.reference,
		SourcePath: p.path,
		Size:       info.Size(),
		MIMEType:   mimeType,
		Sources:    []domain.AssetSource{p.source},
	}

	if p.inlinable && assets.ShouldInline(filepath.Ext(p.path), info.Size(), r.threshold) {
		uri, err := r.encoder.Encode(ctx, p.path, mimeType, info)
		if err != nil {
			return err
		}
		entry.Inline = true
		entry.DataURI = uri
	}

	entry.OutputPath = r.tracker.Allocate(p.path)
	r.manifest.Add(entry)

	r.logger.Debug().
		Str("path", p.path).
		Str("output", entry.OutputPath).
		Int64("size", entry.Size).
		Bool("inline", entry.Inline).
		Msg("Collected asset")
	return nil
}

// stat checks that the referenced path exists and is a regular file
func (r *run) stat(p pending) (fs.FileInfo, error) {
	info, err := r.fs.Stat(p.path)
	if err == nil && info.IsDir() {
		err = fmt.Errorf("%s is a directory", p.path)
	}
	if err != nil {
		return nil, domain.NewAssetNotFoundError(p.path, p.reference, p.source.File, p.source.Kind, p.source.Line, p.source.Column, err)
	}
	return info, nil
}

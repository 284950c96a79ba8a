package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/quantmind-br/deckpack/internal/assets"
	"github.com/quantmind-br/deckpack/internal/cache"
	"github.com/quantmind-br/deckpack/internal/collector"
	"github.com/quantmind-br/deckpack/internal/config"
	"github.com/quantmind-br/deckpack/internal/domain"
	"github.com/quantmind-br/deckpack/internal/output"
	"github.com/quantmind-br/deckpack/internal/program"
	"github.com/quantmind-br/deckpack/internal/utils"
)

// maxParallelPrograms caps how many programs RunPrograms bundles at once
const maxParallelPrograms = 3

// Orchestrator coordinates loading a program, collecting its assets and
// writing the bundle
type Orchestrator struct {
	config    *config.Config
	logger    *utils.Logger
	cache     domain.Cache
	ownsCache bool
	fs        domain.FileSystem
	loader    *program.Loader
	collector *collector.Collector
	threshold int64
}

// OrchestratorOptions contains options for creating and running an orchestrator
type OrchestratorOptions struct {
	domain.CommonOptions
	Config *config.Config
	// NoCache disables the data URI cache regardless of configuration
	NoCache bool
	// Cache replaces the configured cache. It is not closed by Close.
	Cache domain.Cache
	// OutputDir overrides the program and configured output directory
	OutputDir string
	// InlineThreshold overrides the program and configured threshold
	InlineThreshold *int64
	// Archive is the tarball to write; empty uses output.archive
	Archive string
	// Progress receives progress bars. Nil disables them.
	Progress io.Writer
	// LogOutput receives log lines; defaults to stderr
	LogOutput io.Writer
	// FS reads program inputs; defaults to the OS filesystem
	FS domain.FileSystem

	// subdir is joined onto the output directory of one program of a batch
	subdir string
}

// Result describes one bundled program
type Result struct {
	Program    string
	OutputDir  string
	Manifest   *domain.Manifest
	Collisions []domain.Collision
	Written    output.WriteResult
	// Files and Bytes describe the output directory after writing
	Files    int
	Bytes    int64
	Archive  string
	Duration time.Duration
}

// NewOrchestrator creates a new orchestrator with the given configuration
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logLevel := config.DefaultLogLevel
	logFormat := config.DefaultLogFormat
	if cfg.Logging.Level != "" {
		logLevel = cfg.Logging.Level
	}
	if cfg.Logging.Format != "" {
		logFormat = cfg.Logging.Format
	}
	if opts.Verbose {
		logLevel = "debug"
	}

	logger := utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  logFormat,
		Output:  opts.LogOutput,
		Verbose: opts.Verbose,
	})

	threshold, err := cfg.InlineThresholdBytes()
	if err != nil {
		return nil, err
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = utils.OSFileSystem{}
	}

	o := &Orchestrator{
		config:    cfg,
		logger:    logger,
		cache:     opts.Cache,
		fs:        fsys,
		loader:    program.NewLoader(),
		threshold: threshold,
	}

	if o.cache == nil && cfg.Cache.Enabled && !opts.NoCache {
		cacheDir := cfg.Cache.Directory
		if cacheDir == "" {
			cacheDir = config.CacheDir()
		}
		c, err := cache.NewBadgerCache(cache.Options{Directory: utils.ExpandPath(cacheDir)})
		if err != nil {
			// A locked or unwritable cache only costs re-encoding
			logger.Warn().Err(err).Str("dir", cacheDir).Msg("Cache unavailable, continuing without it")
		} else {
			o.cache = c
			o.ownsCache = true
		}
	}

	o.collector = collector.New(collector.Options{
		Logger:      logger,
		FS:          fsys,
		Cache:       o.cache,
		CacheTTL:    cfg.Cache.TTL,
		Concurrency: cfg.Concurrency.Workers,
	})
	return o, nil
}

// Run bundles the program at programPath: a program file, or a directory
// holding one of ProgramFileNames
func (o *Orchestrator) Run(ctx context.Context, programPath string, opts OrchestratorOptions) (*Result, error) {
	startTime := time.Now()

	bundle, err := o.load(programPath)
	if err != nil {
		return nil, err
	}

	outputDir := o.outputDir(bundle, opts)
	o.logger.Info().
		Str("program", bundle.Path).
		Str("output", outputDir).
		Int("stylesheets", len(bundle.Stylesheets)).
		Bool("dry_run", opts.DryRun).
		Msg("Starting bundle")

	m, tracker, err := o.collect(ctx, bundle, opts)
	if err != nil {
		return nil, err
	}

	writer := output.NewWriter(output.WriterOptions{
		BaseDir:  outputDir,
		Force:    opts.Force || o.config.Output.Overwrite,
		DryRun:   opts.DryRun,
		Workers:  o.config.Concurrency.Workers,
		Progress: opts.Progress,
		Logger:   o.logger,
	})
	if err := writer.EnsureBaseDir(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrWriteFailed, outputDir, err)
	}

	result := &Result{
		Program:    bundle.Path,
		OutputDir:  outputDir,
		Manifest:   m,
		Collisions: tracker.Collisions(),
	}

	result.Written, err = writer.WriteAssets(ctx, m)
	if err != nil {
		if ctx.Err() != nil {
			o.logger.Warn().Msg("Bundle cancelled")
			return nil, ctx.Err()
		}
		return nil, err
	}

	if o.config.Bundle.CombineCSS && len(m.CSSSourceFiles) > 0 {
		if _, err := writer.WriteFile(output.CombinedCSSFileName, []byte(m.CombinedCSS)); err != nil {
			return nil, err
		}
	}

	if o.config.Output.Manifest {
		if _, err := writer.WriteManifest(m); err != nil {
			return nil, err
		}
	}

	if archive := o.archivePath(outputDir, opts); archive != "" && !opts.DryRun {
		if err := output.Archive(ctx, outputDir, archive); err != nil {
			return nil, fmt.Errorf("failed to archive bundle: %w", err)
		}
		result.Archive = archive
	}

	if !opts.DryRun {
		if result.Files, result.Bytes, err = writer.Stats(); err != nil {
			return nil, fmt.Errorf("failed to inspect output: %w", err)
		}
	}

	result.Duration = time.Since(startTime)
	o.logger.Info().
		Dur("duration", result.Duration).
		Int("copied", result.Written.Copied).
		Msg("Bundle completed")

	return result, nil
}

// Manifest collects the assets of a program without writing anything
func (o *Orchestrator) Manifest(ctx context.Context, programPath string, opts OrchestratorOptions) (*domain.Manifest, error) {
	bundle, err := o.load(programPath)
	if err != nil {
		return nil, err
	}
	m, _, err := o.collect(ctx, bundle, opts)
	return m, err
}

func (o *Orchestrator) load(programPath string) (*program.Bundle, error) {
	path, err := FindProgram(programPath)
	if err != nil {
		return nil, err
	}
	o.logger.Debug().
		Str("program", path).
		Str("format", string(DetectFormat(path))).
		Msg("Loading program")
	return o.loader.Load(path)
}

// collect builds the manifest and, when enabled, the combined stylesheet
func (o *Orchestrator) collect(ctx context.Context, bundle *program.Bundle, opts OrchestratorOptions) (*domain.Manifest, *assets.Tracker, error) {
	collectOpts := bundle.CollectOptions(o.threshold)
	if opts.InlineThreshold != nil {
		collectOpts.InlineThreshold = *opts.InlineThreshold
	}

	tracker := assets.NewTracker()
	m, err := o.collector.CollectWithTracker(ctx, bundle.Configuration, bundle.Stylesheets, bundle.BasePath, collectOpts, tracker)
	if err != nil {
		return nil, nil, err
	}

	if o.config.Bundle.CombineCSS {
		if err := output.CombineCSS(o.fs.ReadFile, m); err != nil {
			return nil, nil, err
		}
	}
	return m, tracker, nil
}

// outputDir picks the flag, then the program, then the configured directory.
// A program of a batch writes to its own subdirectory of it.
func (o *Orchestrator) outputDir(bundle *program.Bundle, opts OrchestratorOptions) string {
	var dir string
	switch {
	case opts.OutputDir != "":
		dir = opts.OutputDir
	case bundle.Output != "":
		dir = bundle.Output
	case o.config.Output.Directory != "":
		dir = utils.ExpandPath(o.config.Output.Directory)
	default:
		dir = config.DefaultOutputDir
	}
	if opts.subdir != "" {
		dir = filepath.Join(dir, opts.subdir)
	}
	return dir
}

func (o *Orchestrator) archivePath(outputDir string, opts OrchestratorOptions) string {
	if opts.Archive != "" {
		return opts.Archive
	}
	if o.config.Output.Archive {
		return filepath.Clean(outputDir) + ".tar.gz"
	}
	return ""
}

// Close releases all resources held by the orchestrator
func (o *Orchestrator) Close() error {
	if o.ownsCache && o.cache != nil {
		return o.cache.Close()
	}
	return nil
}

// ProgramResult represents the result of bundling one program of a batch
type ProgramResult struct {
	Program string
	Result  *Result
	Error   error
}

// RunPrograms bundles several programs concurrently. When there is more than
// one, each writes to a subdirectory of its output directory named after the
// program. Without continueOnError the first failure cancels the remaining
// programs.
func (o *Orchestrator) RunPrograms(ctx context.Context, programPaths []string, baseOpts OrchestratorOptions, continueOnError bool) ([]ProgramResult, error) {
	startTime := time.Now()
	total := len(programPaths)
	results := make([]ProgramResult, total)
	if total == 0 {
		return results, nil
	}

	concurrency := o.config.Concurrency.Workers
	if concurrency > maxParallelPrograms {
		concurrency = maxParallelPrograms
	}

	runCtx := ctx
	var cancel context.CancelFunc
	if !continueOnError {
		runCtx, cancel = context.WithCancel(ctx)
		defer cancel()
	}

	type indexed struct {
		path  string
		index int
	}
	items := make([]indexed, total)
	for i, path := range programPaths {
		items[i] = indexed{path: path, index: i}
	}
	names := programNames(programPaths)

	var (
		firstError error
		errMu      sync.Mutex
	)

	errs := utils.ParallelForEach(runCtx, items, concurrency, func(ctx context.Context, item indexed) error {
		opts := baseOpts
		if total > 1 {
			opts.subdir = names[item.index]
		}

		res, err := o.Run(ctx, item.path, opts)
		results[item.index] = ProgramResult{Program: item.path, Result: res, Error: err}

		if err != nil {
			o.logFailure(item.path, err)
			errMu.Lock()
			if firstError == nil {
				firstError = fmt.Errorf("program %s failed: %w", item.path, err)
			}
			errMu.Unlock()
			if cancel != nil {
				cancel()
			}
		}
		return err
	})

	if ctx.Err() != nil {
		return results, ctx.Err()
	}

	for i, r := range results {
		if r.Program == "" {
			// Never started because an earlier program failed
			results[i] = ProgramResult{Program: programPaths[i], Error: errs[i]}
		}
	}
	failed := len(utils.CollectErrors(errs))

	o.logger.Info().
		Dur("total_duration", time.Since(startTime)).
		Int("total", total).
		Int("success", total-failed).
		Int("failed", failed).
		Msg("Batch completed")

	if firstError != nil {
		return results, fmt.Errorf("batch completed with %d/%d failures: %w", failed, total, firstError)
	}
	return results, nil
}

// logFailure logs a failed program with the kind and location of collection errors
func (o *Orchestrator) logFailure(programPath string, err error) {
	event := o.logger.Error().Err(err).Str("program", programPath)
	if kind := domain.KindOf(err); kind != 0 {
		event = event.Stringer("kind", kind)
	}
	var notFound *domain.AssetNotFoundError
	if errors.As(err, &notFound) {
		event = event.Str("at", notFound.Location())
	}
	event.Msg("Bundle failed")
}

// programName is the program file name without extension, or the
// directory name for a program directory. A file with one of the
// ProgramFileNames is named after its directory.
func programName(path string) string {
	clean := filepath.Clean(path)
	base := filepath.Base(clean)
	if slices.Contains(ProgramFileNames, base) {
		return filepath.Base(filepath.Dir(clean))
	}
	if DetectFormat(base) != FormatUnknown {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base
}

// programNames returns a distinct subdirectory name for each program,
// numbering repeats in order: intro, intro-2, intro-3
func programNames(paths []string) []string {
	names := make([]string, len(paths))
	seen := make(map[string]int)
	taken := make(map[string]bool)
	for i, path := range paths {
		name := programName(path)
		candidate := name
		for taken[candidate] {
			seen[name]++
			candidate = fmt.Sprintf("%s-%d", name, seen[name]+1)
		}
		taken[candidate] = true
		names[i] = candidate
	}
	return names
}

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/tbhb/aitells/internal/catalog"
	"github.com/tbhb/aitells/internal/config"
	"github.com/tbhb/aitells/internal/domain"
	"github.com/tbhb/aitells/internal/strategies"
	"github.com/tbhb/aitells/internal/utils"
)

// StrategyFactory builds the strategy for a source kind
type StrategyFactory func(domain.Kind, *strategies.Dependencies) strategies.Strategy

// Orchestrator runs every catalog source through its strategy
type Orchestrator struct {
	config          *config.Config
	catalog         *catalog.Catalog
	deps            *strategies.Dependencies
	logger          *utils.Logger
	strategyFactory StrategyFactory
	progress        io.Writer
	opts            domain.CommonOptions
}

// OrchestratorOptions contains options for creating an orchestrator
type OrchestratorOptions struct {
	domain.CommonOptions
	Config  *config.Config
	Catalog *catalog.Catalog
	// Logger defaults to one built from Config.Logging
	Logger *utils.Logger
	// Dependencies defaults to ones built from Config
	Dependencies    *strategies.Dependencies
	StrategyFactory StrategyFactory
	// ProgressOutput receives the progress bar; nil means stderr. The bar is
	// only shown when not verbose.
	ProgressOutput io.Writer
}

// Result is the outcome of one source
type Result struct {
	Source   catalog.Source
	Sample   *domain.Sample
	Err      error
	Skipped  bool
	Duration time.Duration
}

// OK reports whether the source counts as processed successfully
func (r Result) OK() bool {
	return r.Err == nil
}

// Summary tallies a run
type Summary struct {
	Succeeded int
	Skipped   int
	Failed    int
	Total     int
	Results   []Result
	Duration  time.Duration
}

// Processed returns the number of sources that succeeded or were skipped
func (s *Summary) Processed() int {
	return s.Succeeded + s.Skipped
}

// OK reports whether every source succeeded or was skipped
func (s *Summary) OK() bool {
	return s.Processed() == s.Total
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if opts.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}

	logger := opts.Logger
	if logger == nil {
		logLevel := cfg.Logging.Level
		if logLevel == "" {
			logLevel = config.DefaultLogLevel
		}
		if opts.Verbose {
			logLevel = "debug"
		}
		logger = utils.NewLogger(utils.LoggerOptions{
			Level:   logLevel,
			Format:  cfg.Logging.Format,
			Verbose: opts.Verbose,
		})
	}

	deps := opts.Dependencies
	if deps == nil {
		cacheDir := cfg.Cache.Directory
		if cacheDir == "" {
			cacheDir = config.CacheDir()
		}

		var err error
		deps, err = strategies.NewDependencies(strategies.DependencyOptions{
			CommonOptions:     opts.CommonOptions,
			Timeout:           cfg.Fetch.Timeout,
			GovernmentTimeout: cfg.Fetch.GovernmentTimeout,
			MaxRetries:        cfg.Fetch.MaxRetries,
			EnableCache:       cfg.Cache.Enabled,
			CacheTTL:          cfg.Cache.TTL,
			CacheDir:          utils.ExpandPath(cacheDir),
			UserAgent:         cfg.Fetch.UserAgent,
			OutputDir:         cfg.Output.Directory,
			JSONMetadata:      cfg.Output.JSONMetadata,
			Bounds:            cfg.Excerpt.Bounds(),
			MinParagraphWords: cfg.Excerpt.MinParagraphWords,
			Language:          cfg.Excerpt.Language,
			Logger:            logger,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create dependencies: %w", err)
		}
	}

	strategyFactory := opts.StrategyFactory
	if strategyFactory == nil {
		strategyFactory = CreateStrategy
	}

	common := opts.CommonOptions
	common.Force = common.Force || cfg.Output.Overwrite

	return &Orchestrator{
		config:          cfg,
		catalog:         opts.Catalog,
		deps:            deps,
		logger:          logger,
		strategyFactory: strategyFactory,
		progress:        opts.ProgressOutput,
		opts:            common,
	}, nil
}

// kindGroup is the sources of one kind with their catalog positions
type kindGroup struct {
	kind    domain.Kind
	sources []catalog.Source
	indices []int
}

// Run processes the catalog sources of the given kinds, or of every kind
// when none are given. Kinds run in parallel; sources of one kind run in
// order with the configured delay between network fetches. Per-source
// failures are recorded in the summary; Run only returns an error when the
// context is cancelled or continue_on_error is off and a source fails.
func (o *Orchestrator) Run(ctx context.Context, kinds ...domain.Kind) (*Summary, error) {
	startTime := time.Now()

	for _, k := range kinds {
		if !IsValidStrategy(k) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownKind, k)
		}
	}

	selected := o.catalog.Filter(kinds...)
	total := len(selected.Sources)
	continueOnError := selected.Options.ShouldContinue()
	delay := o.delay(selected)

	o.logger.Info().
		Int("sources", total).
		Str("output", o.config.Output.Directory).
		Int("workers", o.config.Concurrency.Workers).
		Dur("delay", delay).
		Bool("continue_on_error", continueOnError).
		Bool("dry_run", o.opts.DryRun).
		Msg("Starting sample fetch")

	summary := &Summary{Total: total, Results: make([]Result, total)}
	if total == 0 {
		summary.Duration = time.Since(startTime)
		return summary, nil
	}

	groups := groupByKind(selected)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		done     = make([]bool, total)
		firstErr error
	)

	bar := o.newProgressBar(total)

	strategyOpts := strategies.Options{CommonOptions: o.opts}

	errs := utils.ParallelForEach(runCtx, groups, o.config.Concurrency.Workers, func(ctx context.Context, g kindGroup) error {
		o.logger.Info().
			Str("kind", string(g.kind)).
			Int("sources", len(g.sources)).
			Msg("Processing source kind")

		fetched := false
		for i, src := range g.sources {
			if fetched && delay > 0 {
				if err := utils.Sleep(ctx, delay); err != nil {
					return err
				}
			}

			result := o.processSource(ctx, src, strategyOpts)
			fetched = !result.Skipped

			mu.Lock()
			summary.Results[g.indices[i]] = result
			done[g.indices[i]] = true
			if !result.OK() && firstErr == nil {
				firstErr = result.Err
			}
			mu.Unlock()

			if bar != nil {
				bar.Add(1)
			}

			if !result.OK() {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if !continueOnError {
					cancel()
					return result.Err
				}
			}
		}
		return nil
	})

	if bar != nil {
		bar.Finish()
	}

	for i, src := range selected.Sources {
		if !done[i] {
			err := runCtx.Err()
			if err == nil {
				err = utils.FirstError(errs)
			}
			if err == nil {
				err = errors.New("not processed")
			}
			summary.Results[i] = Result{Source: src, Err: err}
		}
	}
	summary.tally()
	summary.Duration = time.Since(startTime)

	if err := o.deps.FlushMetadata(); err != nil {
		o.logger.Warn().Err(err).Msg("Failed to write sample index")
	}

	o.logger.Info().
		Dur("duration", summary.Duration).
		Int("total", summary.Total).
		Int("succeeded", summary.Succeeded).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Msg("Sample fetch completed")

	if ctx.Err() != nil {
		o.logger.Warn().Msg("Sample fetch cancelled")
		return summary, ctx.Err()
	}
	if !continueOnError && firstErr != nil {
		o.logger.Warn().Msg("Stopping execution (continue_on_error=false)")
		return summary, fmt.Errorf("stopped after failure: %w", firstErr)
	}

	return summary, nil
}

// processSource runs one source through its strategy
func (o *Orchestrator) processSource(ctx context.Context, src catalog.Source, opts strategies.Options) Result {
	start := time.Now()
	result := Result{Source: src}

	strategy := o.strategyFactory(src.Kind, o.deps)
	if strategy == nil || !strategy.CanHandle(src) {
		strategy = FindMatchingStrategy(src, o.deps)
	}
	if strategy == nil {
		result.Err = fmt.Errorf("%w: %s", domain.ErrUnknownKind, src.Kind)
		o.logger.Warn().Err(result.Err).Str("output", src.Output).Msg("No strategy for source")
		return result
	}

	sample, err := strategy.Execute(ctx, src, opts)
	result.Duration = time.Since(start)

	switch {
	case errors.Is(err, domain.ErrSkipped):
		result.Skipped = true
	case err != nil:
		result.Err = err
		o.logger.Warn().
			Err(err).
			Str("strategy", strategy.Name()).
			Str("output", src.Output).
			Dur("duration", result.Duration).
			Msg("Source failed")
	default:
		result.Sample = sample
	}

	return result
}

func (o *Orchestrator) delay(c *catalog.Catalog) time.Duration {
	if d := c.Options.Delay.Std(); d > 0 {
		return d
	}
	return o.config.Fetch.Delay
}

func (o *Orchestrator) newProgressBar(total int) interface {
	Add(int) error
	Finish() error
} {
	if o.opts.Verbose {
		return nil
	}
	return utils.NewProgressBar(total, utils.DescProcessing, o.progress)
}

// groupByKind splits sources into per-kind groups in processing order.
// Sources of any other kind form a last group so they are reported as failed.
func groupByKind(c *catalog.Catalog) []kindGroup {
	groups := make([]kindGroup, 0, len(domain.Kinds)+1)
	for _, kind := range domain.Kinds {
		groups = append(groups, kindGroup{kind: kind})
	}
	other := kindGroup{kind: domain.KindUnknown}

	for i, src := range c.Sources {
		g := &other
		if IsValidStrategy(src.Kind) {
			for j := range groups {
				if groups[j].kind == src.Kind {
					g = &groups[j]
					break
				}
			}
		}
		g.sources = append(g.sources, src)
		g.indices = append(g.indices, i)
	}
	groups = append(groups, other)

	nonEmpty := groups[:0]
	for _, g := range groups {
		if len(g.sources) > 0 {
			nonEmpty = append(nonEmpty, g)
		}
	}
	return nonEmpty
}

func (s *Summary) tally() {
	s.Succeeded, s.Skipped, s.Failed = 0, 0, 0
	for _, r := range s.Results {
		switch {
		case r.Skipped:
			s.Skipped++
		case r.Err == nil:
			s.Succeeded++
		default:
			s.Failed++
		}
	}
}

// Close releases all resources held by the orchestrator
func (o *Orchestrator) Close() error {
	if o.deps != nil {
		return o.deps.Close()
	}
	return nil
}

// Dependencies exposes the shared strategy dependencies
func (o *Orchestrator) Dependencies() *strategies.Dependencies {
	return o.deps
}

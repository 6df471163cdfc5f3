package strategies

import (
	"context"
	"fmt"
	"time"

	"github.com/tbhb/aitells/internal/cache"
	"github.com/tbhb/aitells/internal/catalog"
	"github.com/tbhb/aitells/internal/domain"
	"github.com/tbhb/aitells/internal/excerpt"
	"github.com/tbhb/aitells/internal/fetcher"
	"github.com/tbhb/aitells/internal/language"
	"github.com/tbhb/aitells/internal/output"
	"github.com/tbhb/aitells/internal/utils"
)

// Strategy extracts one excerpt from one kind of source
type Strategy interface {
	// Name returns the strategy name, which is also the source kind it serves
	Name() string
	// CanHandle returns true if this strategy can handle the given source
	CanHandle(src catalog.Source) bool
	// Execute fetches the source, selects an excerpt and writes it.
	// It returns domain.ErrSkipped when the output exists and Force is off.
	Execute(ctx context.Context, src catalog.Source, opts Options) (*domain.Sample, error)
}

// Options contains common options for all strategies
type Options struct {
	domain.CommonOptions
}

// DefaultOptions returns default strategy options
func DefaultOptions() Options {
	return Options{CommonOptions: domain.DefaultCommonOptions()}
}

// Dependencies contains shared dependencies for all strategies
type Dependencies struct {
	Fetcher   domain.Fetcher
	Cache     domain.Cache
	Writer    domain.Writer
	Collector *output.MetadataCollector
	Logger    *utils.Logger
	// Language is nil when no language check is configured
	Language          domain.LanguageDetector
	Bounds            excerpt.Bounds
	MinParagraphWords int
	GovernmentTimeout time.Duration
}

// DependencyOptions contains options for creating dependencies
type DependencyOptions struct {
	domain.CommonOptions
	Timeout           time.Duration
	GovernmentTimeout time.Duration
	MaxRetries        int
	EnableCache       bool
	CacheTTL          time.Duration
	CacheDir          string
	UserAgent         string
	OutputDir         string
	JSONMetadata      bool
	Bounds            excerpt.Bounds
	MinParagraphWords int
	Language          string
	Logger            *utils.Logger
}

// NewDependencies wires the fetcher, cache, writer and language guard
func NewDependencies(opts DependencyOptions) (*Dependencies, error) {
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}

	fetcherClient, err := fetcher.NewClient(fetcher.ClientOptions{
		Timeout:      opts.Timeout,
		MaxRetries:   opts.MaxRetries,
		EnableCache:  opts.EnableCache,
		CacheTTL:     opts.CacheTTL,
		RefreshCache: opts.RefreshCache,
		UserAgent:    opts.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	var cacheImpl domain.Cache
	if opts.EnableCache {
		badger, err := cache.NewBadgerCache(cache.Options{Directory: opts.CacheDir})
		if err != nil {
			fetcherClient.Close()
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		cacheImpl = badger
		fetcherClient.SetCache(cacheImpl)
	}

	var detector domain.LanguageDetector
	if d, err := language.New(opts.Language); err != nil {
		fetcherClient.Close()
		if cacheImpl != nil {
			cacheImpl.Close()
		}
		return nil, err
	} else if d != nil {
		detector = d
	}

	var collector *output.MetadataCollector
	if opts.JSONMetadata {
		collector = output.NewMetadataCollector(output.CollectorOptions{
			BaseDir: opts.OutputDir,
			Enabled: !opts.DryRun,
		})
	}

	writer := output.NewWriter(output.WriterOptions{
		BaseDir:      opts.OutputDir,
		JSONMetadata: opts.JSONMetadata,
		DryRun:       opts.DryRun,
		Collector:    collector,
	})

	bounds := opts.Bounds
	if bounds == (excerpt.Bounds{}) {
		bounds = excerpt.DefaultBounds()
	}
	minWords := opts.MinParagraphWords
	if minWords <= 0 {
		minWords = excerpt.DefaultMinParagraphWords
	}
	govTimeout := opts.GovernmentTimeout
	if govTimeout <= 0 {
		govTimeout = DefaultGovernmentTimeout
	}

	return &Dependencies{
		Fetcher:           fetcherClient,
		Cache:             cacheImpl,
		Writer:            writer,
		Collector:         collector,
		Logger:            logger,
		Language:          detector,
		Bounds:            bounds,
		MinParagraphWords: minWords,
		GovernmentTimeout: govTimeout,
	}, nil
}

// Close releases all resources
func (d *Dependencies) Close() error {
	if d.Fetcher != nil {
		d.Fetcher.Close()
	}
	if d.Cache != nil {
		d.Cache.Close()
	}
	return nil
}

// FlushMetadata writes the run index when JSON metadata is enabled
func (d *Dependencies) FlushMetadata() error {
	if d.Collector != nil {
		return d.Collector.Flush()
	}
	return nil
}

// strategyLogger returns the shared logger tagged with a strategy name.
// Dependencies built by hand may leave Logger nil.
func (d *Dependencies) strategyLogger(name string) *utils.Logger {
	logger := d.Logger
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}
	return logger.WithStrategy(name)
}

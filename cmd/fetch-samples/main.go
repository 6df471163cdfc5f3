package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tbhb/aitells/internal/app"
	"github.com/tbhb/aitells/internal/catalog"
	"github.com/tbhb/aitells/internal/config"
	"github.com/tbhb/aitells/internal/domain"
	"github.com/tbhb/aitells/internal/utils"
	"github.com/tbhb/aitells/pkg/version"
)

// errIncomplete signals a run where some sources failed; the summary line
// has already been printed.
var errIncomplete = errors.New("not all sources were processed")

var (
	cfgFile string
	verbose bool
	log     *utils.Logger

	// Dependencies for testing
	httpClient = &http.Client{Timeout: 5 * time.Second}
	stdout     io.Writer = os.Stdout
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errIncomplete) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fetch-samples",
	Short: "Fetch human-written prose samples",
	Long: `fetch-samples downloads public-domain and freely licensed prose from
Standard Ebooks, U.S. government sites, Project Gutenberg, and Wikibooks,
and saves a contiguous excerpt of each source as a plain-text sample.`,
	Version:       version.Short(),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	cobra.OnInitialize(initConfig)

	d := config.Default()
	flags := rootCmd.PersistentFlags()

	// Global flags
	flags.StringVar(&cfgFile, "config", "", "config file (default is ~/.aitells/config.yaml)")
	flags.String("catalog", "", "Catalog file (default is the built-in catalog)")
	flags.StringP("source", "s", "all", "Source kind: standard-ebooks, government, gutenberg, wikibooks, or all")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Output flags
	flags.StringP("output", "o", d.Output.Directory, "Output directory")
	flags.Bool("force", false, "Overwrite existing files")
	flags.Bool("dry-run", false, "Select excerpts without writing files")
	flags.Bool("json-meta", false, "Write JSON metadata next to each sample")

	// Fetch flags
	flags.Duration("timeout", d.Fetch.Timeout, "Request timeout")
	flags.Duration("delay", d.Fetch.Delay, "Delay between requests to the same source kind")
	flags.IntP("workers", "j", d.Concurrency.Workers, "Number of source kinds fetched in parallel")

	// Cache flags
	flags.Bool("no-cache", false, "Disable caching")
	flags.Duration("cache-ttl", d.Cache.TTL, "Cache TTL")
	flags.Bool("refresh-cache", false, "Force cache refresh")

	// Excerpt flags
	flags.Int("min-words", d.Excerpt.MinWords, "Minimum excerpt words")
	flags.Int("max-words", d.Excerpt.MaxWords, "Maximum excerpt words")
	flags.Int("min-paragraphs", d.Excerpt.MinParagraphs, "Minimum excerpt paragraphs")
	flags.Int("max-paragraphs", d.Excerpt.MaxParagraphs, "Maximum excerpt paragraphs")
	flags.String("language", "", "Reject excerpts not written in this language (e.g. english)")

	// Bind flags to viper
	_ = viper.BindPFlag("catalog", flags.Lookup("catalog"))
	_ = viper.BindPFlag("output.directory", flags.Lookup("output"))
	_ = viper.BindPFlag("output.overwrite", flags.Lookup("force"))
	_ = viper.BindPFlag("output.json_metadata", flags.Lookup("json-meta"))
	_ = viper.BindPFlag("fetch.timeout", flags.Lookup("timeout"))
	_ = viper.BindPFlag("fetch.delay", flags.Lookup("delay"))
	_ = viper.BindPFlag("concurrency.workers", flags.Lookup("workers"))
	_ = viper.BindPFlag("cache.ttl", flags.Lookup("cache-ttl"))
	_ = viper.BindPFlag("excerpt.min_words", flags.Lookup("min-words"))
	_ = viper.BindPFlag("excerpt.max_words", flags.Lookup("max-words"))
	_ = viper.BindPFlag("excerpt.min_paragraphs", flags.Lookup("min-paragraphs"))
	_ = viper.BindPFlag("excerpt.max_paragraphs", flags.Lookup("max-paragraphs"))
	_ = viper.BindPFlag("excerpt.language", flags.Lookup("language"))

	// Add subcommands
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// parseSources maps the --source value to the kinds to run.
// "all" and the empty string select every kind.
func parseSources(value string) ([]domain.Kind, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" || value == "all" {
		return nil, nil
	}

	var kinds []domain.Kind
	for _, part := range strings.Split(value, ",") {
		kind := domain.ParseKind(part)
		if kind == domain.KindUnknown {
			return nil, fmt.Errorf("%w: %q (want one of %s, all)", domain.ErrUnknownKind, strings.TrimSpace(part), kindNames())
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func kindNames() string {
	names := make([]string, len(domain.Kinds))
	for i, k := range domain.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// loadSettings loads the configuration and catalog and applies the flags
// that need more than a viper binding.
//
// The output directory and delay resolve as flag, then catalog options, then
// config file.
func loadSettings(cmd *cobra.Command) (*config.Config, *catalog.Catalog, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	cat, err := catalog.NewLoader().LoadOrDefault(cfg.Catalog)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	applyOverrides(cmd, cfg, cat)
	return cfg, cat, nil
}

func applyOverrides(cmd *cobra.Command, cfg *config.Config, cat *catalog.Catalog) {
	flags := cmd.Flags()

	if !flags.Changed("output") && cat.Options.Output != "" {
		cfg.Output.Directory = cat.Options.Output
	}
	if flags.Changed("delay") {
		cat.Options.Delay = 0
	}
	if noCache, _ := flags.GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, cat, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	// Initialize logger
	logLevel := cfg.Logging.Level
	if verbose {
		logLevel = "debug"
	}
	log = utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
	})

	source, _ := cmd.Flags().GetString("source")
	kinds, err := parseSources(source)
	if err != nil {
		return err
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			log.Info().Msg("Shutting down gracefully...")
			cancel()
		case <-ctx.Done():
		}
	}()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	force, _ := cmd.Flags().GetBool("force")
	refresh, _ := cmd.Flags().GetBool("refresh-cache")

	orchestrator, err := app.NewOrchestrator(app.OrchestratorOptions{
		CommonOptions: domain.CommonOptions{
			Verbose:      verbose,
			DryRun:       dryRun,
			Force:        force,
			RefreshCache: refresh,
		},
		Config:  cfg,
		Catalog: cat,
		Logger:  log,
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	defer orchestrator.Close()

	summary, runErr := orchestrator.Run(ctx, kinds...)
	if summary != nil {
		printSummary(stdout, summary)
	}
	if runErr != nil {
		return runErr
	}
	if !summary.OK() {
		return errIncomplete
	}
	return nil
}

func printSummary(w io.Writer, summary *app.Summary) {
	for _, r := range summary.Results {
		if r.Err != nil {
			fmt.Fprintf(w, "  FAILED %s: %v\n", r.Source.Output, r.Err)
		}
	}
	fmt.Fprintf(w, "\nCompleted: %d/%d sources processed successfully\n", summary.Processed(), summary.Total)
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List catalog sources",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, cat, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		source, _ := cmd.Flags().GetString("source")
		kinds, err := parseSources(source)
		if err != nil {
			return err
		}

		listSources(stdout, cat.Filter(kinds...), cfg.Output.Directory)
		return nil
	},
}

// listSources prints one line per source grouped by kind
func listSources(w io.Writer, cat *catalog.Catalog, outputDir string) {
	fmt.Fprintf(w, "Output directory: %s\n", outputDir)
	for _, kind := range domain.Kinds {
		sources := cat.ByKind(kind)
		if len(sources) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s (%d)\n", kind, len(sources))
		for _, src := range sources {
			title := src.DisplayTitle()
			if author := src.DisplayAuthor(); author != "" {
				title += " by " + author
			}
			fmt.Fprintf(w, "  %-32s %s\n", src.Output, title)
			fmt.Fprintf(w, "  %-32s %s\n", "", src.PageURL())
		}
	}
	fmt.Fprintf(w, "\nTotal: %d sources\n", len(cat.Sources))
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment",
	Long:  "Verifies connectivity, output permissions, configuration, catalog, and cache directory.",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(stdout, "Checking environment...")
		allPassed := true

		fmt.Fprint(stdout, "  Internet connection: ")
		if checkInternet("https://standardebooks.org") {
			fmt.Fprintln(stdout, "OK")
		} else {
			fmt.Fprintln(stdout, "FAILED")
			allPassed = false
		}

		fmt.Fprint(stdout, "  Config file: ")
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(stdout, "WARN (%v)\n", err)
			cfg = config.Default()
		} else {
			fmt.Fprintln(stdout, "OK")
		}

		fmt.Fprint(stdout, "  Catalog: ")
		if cat, err := catalog.NewLoader().LoadOrDefault(cfg.Catalog); err != nil {
			fmt.Fprintf(stdout, "FAILED (%v)\n", err)
			allPassed = false
		} else {
			fmt.Fprintf(stdout, "OK (%d sources)\n", len(cat.Sources))
		}

		fmt.Fprint(stdout, "  Write permissions: ")
		if err := checkWritePermissions(cfg.Output.Directory); err != nil {
			fmt.Fprintf(stdout, "FAILED (%v)\n", err)
			allPassed = false
		} else {
			fmt.Fprintf(stdout, "OK (%s)\n", cfg.Output.Directory)
		}

		fmt.Fprint(stdout, "  Cache directory: ")
		cacheDir := cfg.Cache.Directory
		if cacheDir == "" {
			cacheDir = config.CacheDir()
		}
		cacheDir = utils.ExpandPath(cacheDir)
		if checkCacheDir(cacheDir) {
			fmt.Fprintf(stdout, "OK (%s)\n", cacheDir)
		} else {
			fmt.Fprintln(stdout, "WARN (will be created on first use)")
		}

		fmt.Fprintln(stdout)
		if allPassed {
			fmt.Fprintln(stdout, "All critical checks passed!")
		} else {
			fmt.Fprintln(stdout, "Some checks failed. Please resolve the issues above.")
		}
		return nil
	},
}

// checkInternet reports whether url answers a HEAD request without error
func checkInternet(url string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 400
}

// checkWritePermissions checks that the output directory can be written,
// walking up to the nearest existing parent when it does not exist yet
func checkWritePermissions(dir string) error {
	dir = utils.ExpandPath(dir)
	for {
		if _, err := os.Stat(dir); err == nil {
			return utils.CheckWritable(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return fmt.Errorf("no existing parent for %s", dir)
		}
		dir = parent
	}
}

// checkCacheDir checks if the cache directory exists
func checkCacheDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(stdout, version.Full())
	},
}

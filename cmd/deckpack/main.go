package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/quantmind-br/deckpack/internal/app"
	"github.com/quantmind-br/deckpack/internal/cache"
	"github.com/quantmind-br/deckpack/internal/config"
	"github.com/quantmind-br/deckpack/internal/domain"
	"github.com/quantmind-br/deckpack/internal/output"
	"github.com/quantmind-br/deckpack/internal/utils"
	"github.com/quantmind-br/deckpack/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	quiet   bool
)

// Dependencies for testing
var (
	osStat = os.Stat

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	loadConfig = func() (*config.Config, error) {
		if cfgFile != "" {
			return config.LoadFile(cfgFile)
		}
		return config.Load()
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "deckpack",
	Short: "Bundle the assets of a presentation",
	Long: `Deckpack collects every local file a presentation references from its
stylesheets, provider settings and layout template, decides which ones to
inline as data URIs and copies the rest into a self-contained bundle.`,
	Version:       version.Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var bundleCmd = &cobra.Command{
	Use:   "bundle <program>...",
	Short: "Build the bundle of one or more programs",
	Long: `Build the bundle of a program file (YAML, JSON or TOML) or of a
directory containing deckpack.yaml. Several programs are bundled
concurrently, each into its own subdirectory of the output directory.

Rebuilding into the same directory replaces the assets, manifest and
combined stylesheet of the previous bundle and removes assets it no
longer references. Other files already present are never overwritten
unless --force is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBundle,
}

var manifestCmd = &cobra.Command{
	Use:   "manifest <program>",
	Short: "Print the asset manifest of a program as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runManifest,
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the local setup",
	Long:  "Verifies the configuration file, the cache directory and write permissions.",
	RunE:  runDoctor,
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the data URI cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entries and disk usage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCache(func(c *cache.BadgerCache, dir string) error {
			stats := c.Stats()
			lsm, _ := stats["lsm_size"].(int64)
			vlog, _ := stats["vlog_size"].(int64)
			fmt.Fprintf(stdout, "Directory: %s\n", dir)
			fmt.Fprintf(stdout, "Entries:   %s\n", humanize.Comma(c.Size()))
			fmt.Fprintf(stdout, "Disk:      %s\n", humanize.IBytes(uint64(lsm+vlog)))
			return nil
		})
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached data URI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCache(func(c *cache.BadgerCache, dir string) error {
			if err := c.Clear(); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			fmt.Fprintf(stdout, "Cleared %s\n", dir)
			return nil
		})
	},
}

// withCache opens the configured cache for the duration of fn
func withCache(fn func(c *cache.BadgerCache, dir string) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	dir := cfg.Cache.Directory
	if dir == "" {
		dir = config.CacheDir()
	}
	dir = utils.ExpandPath(dir)

	c, err := cache.NewBadgerCache(cache.Options{Directory: dir})
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer c.Close()
	return fn(c, dir)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(stdout, version.Full())
		if !version.Get().IsRelease() {
			fmt.Fprintln(stdout, "development build")
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.deckpack/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().IntP("concurrency", "j", config.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Disable the data URI cache")
	rootCmd.PersistentFlags().String("inline-threshold", "", "Inline assets up to this size, e.g. 50KB (0 disables inlining)")

	// Bundle flags
	bundleCmd.Flags().StringP("output", "o", "", "Output directory (default from program, then config)")
	bundleCmd.Flags().Bool("force", false, "Overwrite files the previous bundle did not write")
	bundleCmd.Flags().Bool("dry-run", false, "Collect and report without writing files")
	bundleCmd.Flags().Bool("archive", false, "Also write <output>.tar.gz")
	bundleCmd.Flags().String("archive-path", "", "Write the archive to this path")
	bundleCmd.Flags().Bool("continue-on-error", false, "Keep bundling other programs after a failure")
	bundleCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress and statistics")

	// Bind flags to viper
	_ = viper.BindPFlag("concurrency.workers", rootCmd.PersistentFlags().Lookup("concurrency"))
	_ = viper.BindPFlag("output.overwrite", bundleCmd.Flags().Lookup("force"))
	_ = viper.BindPFlag("output.archive", bundleCmd.Flags().Lookup("archive"))

	rootCmd.AddCommand(bundleCmd)
	rootCmd.AddCommand(manifestCmd)
	rootCmd.AddCommand(doctorCmd)
	cacheCmd.AddCommand(cacheStatsCmd, cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// orchestratorOptions builds run options from the command flags
func orchestratorOptions(cmd *cobra.Command, cfg *config.Config) (app.OrchestratorOptions, error) {
	noCache, _ := cmd.Flags().GetBool("no-cache")
	opts := app.OrchestratorOptions{
		CommonOptions: domain.CommonOptions{Verbose: verbose},
		Config:        cfg,
		NoCache:       noCache,
	}

	if cmd.Flags().Changed("inline-threshold") {
		raw, _ := cmd.Flags().GetString("inline-threshold")
		threshold, err := config.ParseSize(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid --inline-threshold: %w", err)
		}
		opts.InlineThreshold = &threshold
	}
	return opts, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runBundle(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	opts, err := orchestratorOptions(cmd, cfg)
	if err != nil {
		return err
	}
	opts.OutputDir, _ = cmd.Flags().GetString("output")
	opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
	opts.Force, _ = cmd.Flags().GetBool("force")
	opts.Archive, _ = cmd.Flags().GetString("archive-path")
	if !quiet {
		opts.Progress = stderr
	}

	orchestrator, err := app.NewOrchestrator(opts)
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	defer orchestrator.Close()

	ctx, cancel := signalContext()
	defer cancel()

	if len(args) == 1 {
		result, err := orchestrator.Run(ctx, args[0], opts)
		if err != nil {
			return err
		}
		printResult(result, opts.DryRun)
		return nil
	}

	continueOnError, _ := cmd.Flags().GetBool("continue-on-error")
	results, err := orchestrator.RunPrograms(ctx, args, opts, continueOnError)
	for _, r := range results {
		if r.Result != nil {
			printResult(r.Result, opts.DryRun)
		} else if r.Error != nil && !errors.Is(r.Error, context.Canceled) {
			fmt.Fprintf(stderr, "%s: %s\n", r.Program, describeError(r.Error))
		}
	}
	return err
}

func printResult(result *app.Result, dryRun bool) {
	if quiet {
		return
	}
	verb := "Bundled"
	if dryRun {
		verb = "Would bundle"
	}
	fmt.Fprintf(stdout, "%s %s into %s\n", verb, filepath.Base(result.Program), result.OutputDir)
	fmt.Fprint(stdout, output.FormatStats(result.Manifest.Stats(), len(result.Collisions)))
	if !dryRun {
		fmt.Fprintf(stdout, "Output:     %s files (%s)\n", humanize.Comma(int64(result.Files)), humanize.IBytes(uint64(result.Bytes)))
	}
	if result.Written.Removed > 0 {
		fmt.Fprintf(stdout, "Removed:    %d stale\n", result.Written.Removed)
	}
	if result.Archive != "" {
		fmt.Fprintf(stdout, "Archive:    %s\n", result.Archive)
	}
}

func runManifest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	opts, err := orchestratorOptions(cmd, cfg)
	if err != nil {
		return err
	}
	// Log lines must not mix with the JSON on stdout
	opts.LogOutput = stderr

	orchestrator, err := app.NewOrchestrator(opts)
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	defer orchestrator.Close()

	ctx, cancel := signalContext()
	defer cancel()

	m, err := orchestrator.Manifest(ctx, args[0], opts)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(stdout, "Checking deckpack setup...")
	allPassed := true

	// Check 1: Config file
	fmt.Fprint(stdout, "  Config file: ")
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(stdout, "FAILED (%v)\n", err)
		allPassed = false
		cfg = config.Default()
	} else if path := viper.ConfigFileUsed(); path != "" {
		fmt.Fprintf(stdout, "OK (%s)\n", path)
	} else {
		fmt.Fprintf(stdout, "OK (defaults, no %s)\n", config.ConfigFilePath())
	}

	// Check 2: Cache directory
	fmt.Fprint(stdout, "  Cache directory: ")
	cacheDir := cfg.Cache.Directory
	if cacheDir == "" {
		cacheDir = config.CacheDir()
	}
	cacheDir = utils.ExpandPath(cacheDir)
	switch {
	case !cfg.Cache.Enabled:
		fmt.Fprintln(stdout, "DISABLED")
	case checkCacheDir(cacheDir):
		fmt.Fprintf(stdout, "OK (%s)\n", cacheDir)
	default:
		fmt.Fprintln(stdout, "WARN (will be created on first use)")
	}

	// Check 3: Write permissions for the output directory's parent
	fmt.Fprint(stdout, "  Write permissions: ")
	target := filepath.Dir(filepath.Clean(utils.ExpandPath(cfg.Output.Directory)))
	if checkWritePermissions(target) {
		fmt.Fprintf(stdout, "OK (%s)\n", target)
	} else {
		fmt.Fprintf(stdout, "FAILED (%s)\n", target)
		allPassed = false
	}

	fmt.Fprintln(stdout)
	if allPassed {
		fmt.Fprintln(stdout, "All checks passed!")
	} else {
		fmt.Fprintln(stdout, "Some checks failed. Please resolve the issues above.")
	}
	return nil
}

// checkWritePermissions checks if a file can be created in dir
func checkWritePermissions(dir string) bool {
	f, err := os.CreateTemp(dir, ".deckpack_test_write")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}

// checkCacheDir checks if the cache directory exists
func checkCacheDir(path string) bool {
	info, err := osStat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// describeError prefixes collection failures with their kind
func describeError(err error) string {
	var collectErr domain.CollectError
	if errors.As(err, &collectErr) {
		return fmt.Sprintf("error[%s]: %s", collectErr.Kind(), collectErr.Error())
	}
	return "error: " + err.Error()
}

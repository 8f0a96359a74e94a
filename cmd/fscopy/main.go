package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fscopy/fscopy/internal/config"
	"github.com/fscopy/fscopy/internal/copy"
	"github.com/fscopy/fscopy/internal/filter"
	"github.com/fscopy/fscopy/internal/stats"
)

var version = "dev"

func main() {
	os.Exit(run())
}

// filterFlag is a custom pflag.Value that preserves CLI ordering of
// --exclude and --include rules by appending to a shared filter.Chain.
type filterFlag struct {
	chain   *filter.Chain
	include bool
}

func (*filterFlag) String() string { return "" }
func (*filterFlag) Type() string   { return "string" }

func (f *filterFlag) Set(val string) error {
	if f.include {
		return f.chain.AddInclude(val)
	}
	return f.chain.AddExclude(val)
}

//nolint:gocyclo,revive // cyclomatic,cognitive-complexity: main CLI entry point orchestrates all flag parsing and the copy run
func run() int {
	var (
		dereference  bool
		preserveTime bool
		force        bool
		errorOnExist bool
		useIOURing   bool
		verbose      bool
		quiet        bool
		showVersion  bool
		filterFile   string
		minSizeStr   string
		maxSizeStr   string
	)

	chain := filter.NewChain()

	rootCmd := &cobra.Command{
		Use:   "fscopy [flags] <source> <destination>",
		Short: "Recursively copy a file or directory tree",
		Args: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "fscopy %s\n", version)
				return nil
			}

			src, dst := args[0], args[1]

			cfg, err := config.Load()
			if err != nil {
				slog.Warn("failed to load config", "error", err)
			}
			applyConfigDefaults(cmd, cfg.Defaults,
				&dereference, &preserveTime, &force, &errorOnExist, &useIOURing)

			logLevel := slog.LevelWarn
			switch {
			case verbose:
				logLevel = slog.LevelDebug
			case !quiet:
				logLevel = slog.LevelInfo
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})))

			if filterFile != "" {
				if err := chain.LoadFile(filterFile); err != nil {
					return fmt.Errorf("load filter file: %w", err)
				}
			}
			if minSizeStr != "" {
				n, err := filter.ParseSize(minSizeStr)
				if err != nil {
					return fmt.Errorf("invalid --min-size: %w", err)
				}
				chain.SetMinSize(n)
			}
			if maxSizeStr != "" {
				n, err := filter.ParseSize(maxSizeStr)
				if err != nil {
					return fmt.Errorf("invalid --max-size: %w", err)
				}
				chain.SetMaxSize(n)
			}

			collector := stats.NewCollector()

			opts := copy.Options{
				Dereference:        dereference,
				PreserveTimestamps: preserveTime,
				Force:              force,
				ErrorOnExist:       errorOnExist,
				UseIOURing:         useIOURing,
				Stats:              collector,
			}
			if !chain.Empty() {
				opts.Filter = chainFilter(chain, src)
			}

			slog.Debug("starting copy",
				"src", src, "dst", dst,
				"dereference", dereference,
				"preserveTimestamps", preserveTime,
				"force", force,
				"iouring", useIOURing,
			)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := copy.Go(ctx, src, dst, opts)
			copyErr := <-errCh

			if !quiet {
				fmt.Fprintln(os.Stderr, collector.Snapshot().String())
			}

			if copyErr != nil {
				slog.Error("copy failed", "error", copyErr)
				return copyErr
			}
			return nil
		},
	}

	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")

	rootCmd.Flags().
		BoolVarP(&dereference, "dereference", "L", false, "follow symbolic links in source")
	rootCmd.Flags().
		BoolVarP(&preserveTime, "preserve-timestamps", "p", false, "preserve atime/mtime on copied entries")
	rootCmd.Flags().
		BoolVarP(&force, "force", "f", false, "overwrite existing destination entries")
	rootCmd.Flags().
		BoolVar(&errorOnExist, "error-on-exist", false, "fail instead of silently skipping an existing destination")
	rootCmd.Flags().
		BoolVar(&useIOURing, "iouring", false, "use io_uring for file copy (Linux only)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the final summary line")

	// Filter flags — use custom pflag.Value to preserve CLI ordering.
	rootCmd.Flags().
		VarP(&filterFlag{chain: chain, include: false}, "exclude", "", "exclude entries matching PATTERN (repeatable)")
	rootCmd.Flags().
		VarP(&filterFlag{chain: chain, include: true}, "include", "", "include entries matching PATTERN (repeatable)")
	rootCmd.Flags().StringVar(&filterFile, "filter", "", "read filter rules from FILE")
	rootCmd.Flags().
		StringVar(&minSizeStr, "min-size", "", "skip files smaller than SIZE (e.g. 1M, 100K)")
	rootCmd.Flags().
		StringVar(&maxSizeStr, "max-size", "", "skip files larger than SIZE (e.g. 1G, 500M)")

	rootCmd.AddCommand(docsCmd)

	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "exclude" || f.Name == "include" {
			f.NoOptDefVal = ""
		}
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	return 0
}

// chainFilter adapts a filter.Chain, which matches on a root-relative path
// plus directory-ness and size, to copy.FilterFunc, which only sees the
// absolute (src, dest) pair for each entry.
func chainFilter(chain *filter.Chain, root string) copy.FilterFunc {
	return func(src, _ string) bool {
		rel, err := filepath.Rel(root, src)
		if err != nil {
			rel = src
		}
		info, err := os.Lstat(src)
		if err != nil {
			return true
		}
		return chain.Match(rel, info.IsDir(), info.Size())
	}
}

// applyConfigDefaults applies config file defaults for flags not explicitly set on the CLI.
func applyConfigDefaults(
	cmd *cobra.Command,
	defaults config.DefaultsConfig,
	dereference, preserveTime, force, errorOnExist, useIOURing *bool,
) {
	if !cmd.Flags().Changed("dereference") && defaults.Dereference != nil {
		*dereference = *defaults.Dereference
	}
	if !cmd.Flags().Changed("preserve-timestamps") && defaults.PreserveTimestamps != nil {
		*preserveTime = *defaults.PreserveTimestamps
	}
	if !cmd.Flags().Changed("force") && defaults.Force != nil {
		*force = *defaults.Force
	}
	if !cmd.Flags().Changed("error-on-exist") && defaults.ErrorOnExist != nil {
		*errorOnExist = *defaults.ErrorOnExist
	}
	if !cmd.Flags().Changed("iouring") && defaults.IOURing != nil {
		*useIOURing = *defaults.IOURing
	}
}

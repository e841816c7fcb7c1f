package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/yuya-takeyama/photoset-sync/internal/config"
	"github.com/yuya-takeyama/photoset-sync/internal/fetch"
	"github.com/yuya-takeyama/photoset-sync/pkg/engine"
	"github.com/yuya-takeyama/photoset-sync/pkg/logger"
	"github.com/yuya-takeyama/photoset-sync/pkg/report"
	"github.com/yuya-takeyama/photoset-sync/pkg/s3client"
	"go.uber.org/zap"
)

const program = "photoset-sync"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

type cliOptions struct {
	engine         engine.Options
	configPath     string
	quiet          bool
	verbose        bool
	resultJSONFile string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts cliOptions

	rootCmd := &cobra.Command{
		Use:   program + " [flags] folder",
		Short: "Synchronize a local folder with the photoset of the same name",
		Long: `photoset-sync uploads the files of a folder to the photoset named after the
folder, creating the set on the first upload. Items of the set without a
local file can be deleted or downloaded.`,
		Version:      fmt.Sprintf("%s (commit: %s, built at: %s by %s)", version, commit, date, builtBy),
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, &opts, args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&opts.engine.DryRun, "dry-run", "n", false, "Show what would be done without changing anything")
	flags.BoolVarP(&opts.engine.Remove, "remove", "r", false, "Delete items of the set that have no local file")
	flags.BoolVarP(&opts.engine.DownloadMissing, "download-missing", "d", false, "Download items of the set that have no local file")
	flags.BoolVarP(&opts.engine.SortByTitle, "sort-by-title", "s", false, "Sort the items of the set by title")
	flags.BoolVarP(&opts.engine.SetTitlesByDateTaken, "set-titles-by-date-taken", "o", false, "Rename items to YYYYMMDD-HHMMSS of their capture date")
	flags.BoolVar(&opts.engine.CaseSensitive, "case-sensitive", false, "Match file names and titles case-sensitively")
	flags.StringSliceVar(&opts.engine.Excludes, "exclude", nil, "Exclude local files matching the pattern (multiple allowed)")
	flags.StringSliceVar(&opts.engine.Keep, "keep", nil, "Never delete or download items whose title matches the pattern (multiple allowed)")
	flags.StringVar(&opts.configPath, "config", config.DefaultPath(), "Path to the configuration file")
	flags.BoolVar(&opts.quiet, "quiet", false, "Suppress non-error output")
	flags.BoolVar(&opts.verbose, "verbose", false, "Log skipped files and other debug output")
	flags.StringVar(&opts.resultJSONFile, "result-json-file", "", "Path to output result as JSON file")
	rootCmd.MarkFlagsMutuallyExclusive("quiet", "verbose")

	return rootCmd
}

func run(ctx context.Context, opts *cliOptions, folder string, stdout, stderr io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			fmt.Fprint(stderr, config.SetupHelp(program, opts.configPath))
		}
		return err
	}

	info, err := os.Stat(folder)
	if err != nil {
		return fmt.Errorf("folder %s: %w", folder, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("folder %s: not a directory", folder)
	}
	folder, err = filepath.Abs(folder)
	if err != nil {
		return fmt.Errorf("failed to resolve folder: %w", err)
	}

	syncLogger, err := logger.New(logger.Options{
		DryRun:  opts.engine.DryRun,
		Quiet:   opts.quiet,
		Verbose: opts.verbose,
		Format:  cfg.LogFormat,
	})
	if err != nil {
		return err
	}
	defer syncLogger.Sync()

	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}

	osFs := afero.NewOsFs()
	eng, err := engine.New(store, osFs, fetch.New(osFs, nil), syncLogger, opts.engine)
	if err != nil {
		return err
	}

	syncLogger.Debug("starting sync")
	result, err := eng.Run(ctx, folder)
	if err != nil {
		syncLogger.Error("sync", folder, err)
		if result == nil {
			return err
		}
	}

	summary := report.NewSummary(result)
	fmt.Fprintln(stdout, summary.Line())
	if summary.Failed > 0 {
		syncLogger.Warn("some actions failed", zap.Int("failed", summary.Failed))
	}

	if opts.resultJSONFile != "" {
		if werr := report.WriteSyncResult(osFs, opts.resultJSONFile, report.NewSyncResult(result, opts.engine.DryRun)); werr != nil {
			return fmt.Errorf("failed to write result JSON: %w", werr)
		}
	}

	return err
}

func newStore(ctx context.Context, cfg *config.Config) (*s3client.Store, error) {
	var configOpts []func(*awsconfig.LoadOptions) error
	if cfg.Profile != "" {
		configOpts = append(configOpts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}
	if cfg.Region != "" {
		configOpts = append(configOpts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3client.NewFromConfig(awsCfg, s3client.Options{
		Bucket:     cfg.Bucket,
		Prefix:     cfg.Prefix,
		PresignTTL: cfg.PresignTTL,
		MaxRetries: cfg.MaxRetries,
	}, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = &cfg.Endpoint
		}
		o.UsePathStyle = cfg.PathStyle
	}), nil
}

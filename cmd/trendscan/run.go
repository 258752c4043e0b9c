package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nao1215/trendscan/internal/config"
	"github.com/nao1215/trendscan/internal/fetch"
	"github.com/nao1215/trendscan/internal/log"
	"github.com/nao1215/trendscan/internal/model"
	"github.com/nao1215/trendscan/internal/pipeline"
	"github.com/nao1215/trendscan/internal/report"
	"github.com/spf13/cobra"
)

// runReportCmd generates today's report.
func runReportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		return err
	}
	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose, logJSON)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	daily, err := runReport(ctx, cfg, logger)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), daily.ReportPath)

	if !cfg.Quiet {
		summary := report.NewSummaryWriter(cmd.ErrOrStderr(), report.WithSteps(cfg.Verbose))
		if _, err := summary.Write(daily); err != nil {
			logger.Warn("failed to print summary", "error", err)
		}
	}
	return nil
}

// buildConfig creates a Config from defaults, the configuration file, the
// GitHub token and the command flags, in increasing precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently keep the defaults if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	cfg.GitHubToken, err = config.LoadToken(filepath.Join(cfg.WorkDir, config.DefaultEnvFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", config.DefaultEnvFile, err)
	}

	return cfg, nil
}

// applyFlags copies explicitly set flags onto cfg. Flags left at their
// default do not override the configuration file.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("keyword") {
		if cfg.Keyword, err = flags.GetString("keyword"); err != nil {
			return err
		}
	}
	if flags.Changed("top") {
		if cfg.TopN, err = flags.GetInt("top"); err != nil {
			return err
		}
	}
	if flags.Changed("timeout") {
		if cfg.ListingTimeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("readme-timeout") {
		if cfg.DocumentTimeout, err = flags.GetDuration("readme-timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("no-readme") {
		noReadme, err := flags.GetBool("no-readme")
		if err != nil {
			return err
		}
		cfg.Enrich = !noReadme
	}
	if flags.Changed("proxy") {
		if cfg.ProxyAddress, err = flags.GetString("proxy"); err != nil {
			return err
		}
	}
	if flags.Changed("work-dir") {
		if cfg.WorkDir, err = flags.GetString("work-dir"); err != nil {
			return err
		}
	}
	if flags.Changed("html") {
		if cfg.HTMLReport, err = flags.GetBool("html"); err != nil {
			return err
		}
	}

	if cfg.Quiet, err = flags.GetBool("quiet"); err != nil {
		return err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	return nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger that masks secrets.
func setupLogger(w io.Writer, verbose, jsonFormat bool) *slog.Logger {
	if jsonFormat {
		return log.New(w, verbose, log.FormatJSON)
	}
	return log.NewSecureLogger(w, verbose)
}

// newClients creates the listing client and the README client. Only the
// README client carries the GitHub token.
func newClients(cfg *config.Config) (*fetch.Client, *fetch.Client, error) {
	common := []fetch.Option{
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithSOCKS5Proxy(cfg.ProxyAddress),
	}

	listing, err := fetch.NewClient(append(common, fetch.WithTimeout(cfg.ListingTimeout))...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	documents, err := fetch.NewClient(append(common,
		fetch.WithTimeout(cfg.DocumentTimeout),
		fetch.WithBearerToken(cfg.GitHubToken),
	)...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return listing, documents, nil
}

// runReport builds the pipeline and generates the report.
func runReport(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*model.DailyReport, error) {
	listing, documents, err := newClients(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("http clients ready",
		"listingTimeout", listing.Timeout(),
		"readmeTimeout", documents.Timeout(),
		"proxy", listing.ProxyAddress(),
	)

	logger.Info("starting report",
		"url", cfg.TrendingURL,
		"keyword", cfg.Keyword,
		"top", cfg.TopN,
		"enrich", cfg.Enrich,
		"proxy", cfg.ProxyAddress != "",
	)

	daily := model.NewDailyReport(cfg.TrendingURL, cfg.Keyword, cfg.TopN, time.Now())

	p := pipeline.DefaultPipeline(listing, documents,
		[]pipeline.Option{pipeline.WithLogger(logger)},
		pipeline.FromConfig(cfg),
		pipeline.WithPipelineVersion(getVersion()),
	)

	startTime := time.Now()
	if err := p.Execute(ctx, daily); err != nil {
		return nil, err
	}
	logger.Info("report completed",
		"path", daily.ReportPath,
		"elapsed", time.Since(startTime).Round(time.Millisecond),
	)

	return daily, nil
}

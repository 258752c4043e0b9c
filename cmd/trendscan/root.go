package main

import (
	"fmt"
	"os"

	"github.com/nao1215/trendscan/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for trendscan.
// Running it without a subcommand generates today's report.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trendscan",
		Short: "Daily report of AI repositories on GitHub trending",
		Long: `trendscan scans the GitHub trending page, keeps the repositories whose
name or description mentions a keyword (AI by default) and writes a dated
Markdown report to the reports directory. The index document (README.md)
is updated with a link to the newest report.

For each displayed repository the README is fetched from raw.githubusercontent.com
and its introduction, scenario, install, usage and motivation sections are
summarized. Use --no-readme to skip this step.

Examples:
  # Generate today's report in the current directory
  trendscan

  # Different keyword, fewer repositories, with an HTML rendition
  trendscan --keyword llm --top 5 --html

  # Write into another repository checkout
  trendscan --work-dir ~/src/ai-trending

  # Use a custom configuration file
  trendscan -c myconfig.yaml`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runReportCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Listing and filtering flags
	cmd.Flags().StringP("keyword", "k", config.DefaultKeyword,
		"Keyword matched case-insensitively against name and description")
	cmd.Flags().IntP("top", "n", config.DefaultTopN,
		"Number of matched repositories shown in the report")
	cmd.Flags().DurationP("timeout", "t", config.DefaultListingTimeout,
		"Timeout for the trending page request")

	// README enrichment flags
	cmd.Flags().Bool("no-readme", false,
		"Do not fetch README files of displayed repositories")
	cmd.Flags().Duration("readme-timeout", config.DefaultDocumentTimeout,
		"Timeout for each README request")

	// Connection flags
	cmd.Flags().StringP("proxy", "p", "",
		"Route requests through a SOCKS5 proxy (e.g., 127.0.0.1:1080)")

	// Output flags
	cmd.Flags().StringP("work-dir", "w", ".",
		"Directory holding the reports directory and the index document")
	cmd.Flags().Bool("html", false,
		"Also write an HTML rendition of the report")
	cmd.Flags().BoolP("quiet", "q", false,
		"Do not print the run summary to stderr")
	cmd.Flags().Bool("log-json", false,
		"Write log output as JSON lines")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .trendscan in current or home directory)")

	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}
}

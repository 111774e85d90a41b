package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhi11j/CodeCatalyst/internal/config"
	"github.com/abhi11j/CodeCatalyst/internal/logging"
	"github.com/abhi11j/CodeCatalyst/internal/output"
	"github.com/abhi11j/CodeCatalyst/internal/scan"
	"github.com/abhi11j/CodeCatalyst/internal/server"
	"github.com/abhi11j/CodeCatalyst/internal/suggest"
)

var (
	flagMaxResults   int
	flagSuggestionBy int
	flagGitHubToken  string
	flagFormat       string
	flagOut          string
)

var scanCmd = &cobra.Command{
	Use:   "scan <owner/repo>",
	Short: "Scan one repository and print the report as JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitUsageError
			return
		}
		logging.Setup("error", cfg.LogFormat)

		scanners := server.NewScannerFactory(cfg, logging.WithComponent("scan"))
		scanner, err := scanners(flagGitHubToken)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}

		report, err := scanner.Scan(cmd.Context(), scan.Request{
			Target:     args[0],
			MaxResults: flagMaxResults,
			Mode:       suggest.Mode(flagSuggestionBy),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}

		if err := output.WriteReport(report, flagFormat, flagOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
		}
	},
}

func init() {
	scanCmd.Flags().IntVar(&flagMaxResults, "max-results", 0, "Similar repositories to analyze (1-100)")
	scanCmd.Flags().IntVar(&flagSuggestionBy, "suggestion-by", 0, "Suggestion strategy: 1 rules, 2 ai, 3 ai-target, 4 offline")
	scanCmd.Flags().StringVar(&flagGitHubToken, "github-token", "", "GitHub token (overrides GITHUB_TOKEN)")
	scanCmd.Flags().StringVar(&flagFormat, "format", "json", "Output format (text, json)")
	scanCmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
}

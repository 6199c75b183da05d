package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/solana-repo-tracker/internal/config"
	"github.com/naka-gawa/solana-repo-tracker/internal/document"
	"github.com/naka-gawa/solana-repo-tracker/internal/format"
	"github.com/naka-gawa/solana-repo-tracker/internal/gateway"
	"github.com/naka-gawa/solana-repo-tracker/internal/usecase"
)

const tokenHelpURL = "https://github.com/settings/tokens"

func newUpdateCmd(stdout, stderr io.Writer, verbose *bool) *cobra.Command {
	var (
		configPath string
		readmePath string
		offline    bool
		useGraphQL bool
	)

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Refreshes repository stats, discovers new projects and rewrites the README table",
		Long: `Fetches fresh stats for every repository in the configuration, searches
GitHub for new Solana projects, rewrites the project table and "Last updated"
stamp in the README, and saves the configuration with the discovered projects.

With --offline no API calls are made: the stats stored in the configuration
are re-rendered and nothing new is discovered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(stderr, *verbose)
			store := config.NewStore(configPath, logger)

			var fetcher gateway.Fetcher
			if offline {
				cfg, err := store.Load()
				if err != nil {
					return fmt.Errorf("failed to load configuration: %w", err)
				}
				fetcher = gateway.NewSnapshotSource(cfg.Repositories)
			} else {
				token := os.Getenv("GITHUB_TOKEN")
				if token == "" {
					return fmt.Errorf("GITHUB_TOKEN environment variable is not set; create a token at %s or use --offline", tokenHelpURL)
				}
				githubGateway, err := gateway.NewGitHubGateway(gateway.Options{
					Token:      token,
					BaseURL:    os.Getenv("GITHUB_API_URL"),
					GraphQLURL: os.Getenv("GITHUB_GRAPHQL_URL"),
					UseGraphQL: useGraphQL,
				}, logger)
				if err != nil {
					return fmt.Errorf("failed to create GitHub gateway: %w", err)
				}
				fetcher = githubGateway
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			tracker := usecase.NewTracker(fetcher, store, document.NewUpdater(readmePath, nil), logger)
			summary, err := tracker.Run(ctx)
			if err != nil {
				return err
			}
			printSummary(stdout, summary)

			if summary.WriteFailed() {
				return errors.New("update finished but not every file was written")
			}
			if summary.Degraded() {
				logger.Warn().Msg("Update completed with degraded data")
			}
			return nil
		},
	}

	updateCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Configuration file (.yaml or .toml)")
	updateCmd.Flags().StringVarP(&readmePath, "readme", "r", document.DefaultPath, "Document containing the project table")
	updateCmd.Flags().BoolVar(&offline, "offline", false, "Re-render stored stats without calling the GitHub API")
	updateCmd.Flags().BoolVar(&useGraphQL, "graphql", false, "Resolve last activity with the GraphQL API")
	return updateCmd
}

func printSummary(w io.Writer, s *usecase.Summary) {
	fmt.Fprintf(w, "Total projects: %d (%d tracked, %d discovered)\n", s.Total, s.Tracked, s.Discovered)
	fmt.Fprintf(w, "Stats fetched: %d, not found: %d, failed: %d\n", s.Fetched, s.NotFound, s.Failed)
	if s.SearchFailures > 0 {
		fmt.Fprintf(w, "Failed searches: %d\n", s.SearchFailures)
	}
	fmt.Fprintf(w, "New projects: %d\n", s.NewRows)
	fmt.Fprintf(w, "Stars: %s total, %s median\n", format.Count(s.TotalStars), format.Count(int(s.MedianStars)))
	if s.Quota.Known {
		fmt.Fprintf(w, "Rate limit remaining: %d/%d\n", s.Quota.Remaining, s.Quota.Limit)
	}
}

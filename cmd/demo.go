package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/solana-repo-tracker/internal/classifier"
	"github.com/naka-gawa/solana-repo-tracker/internal/config"
	"github.com/naka-gawa/solana-repo-tracker/internal/format"
	"github.com/naka-gawa/solana-repo-tracker/internal/usecase"
)

var demoClassifications = []struct {
	description string
	topics      []string
}{
	{"Solana wallet for mobile devices", []string{"wallet", "mobile"}},
	{"DEX aggregator for Solana", []string{"defi", "trading"}},
	{"NFT marketplace on Solana", []string{"nft", "marketplace"}},
	{"Anchor framework for smart contracts", []string{"framework", "sdk"}},
	{"Solana validator node software", []string{"infrastructure"}},
	{"Oracle price feeds for DeFi", []string{"oracle", "price"}},
}

var demoNumbers = []int{42, 156, 1500, 12500, 125000}

func newDemoCmd(stdout, stderr io.Writer, verbose *bool) *cobra.Command {
	var configPath string

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Shows classification, formatting and configuration without calling the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(stderr, *verbose)
			cfg, err := config.NewStore(configPath, logger).Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			fmt.Fprintln(stdout, "Solana Projects Tracker - Demo Mode")
			fmt.Fprintf(stdout, "Loaded configuration with %d repositories\n", len(cfg.Repositories))

			fmt.Fprintln(stdout, "\nCategory Classification Examples:")
			for _, c := range demoClassifications {
				fmt.Fprintf(stdout, "  %q -> %s\n", c.description, classifier.Classify(c.description, c.topics))
			}

			fmt.Fprintln(stdout, "\nNumber Formatting Examples:")
			for _, n := range demoNumbers {
				fmt.Fprintf(stdout, "  %6d -> %s\n", n, format.Count(n))
			}

			fmt.Fprintln(stdout, "\nRepository Categories Breakdown:")
			for _, c := range usecase.CountByCategory(cfg.Repositories) {
				line := fmt.Sprintf("  %-20s %3d %s", c.Category, c.Count, strings.Repeat("#", min(20, c.Count/2)))
				fmt.Fprintln(stdout, strings.TrimRight(line, " "))
			}

			fmt.Fprintf(stdout, "\nConfigured Search Queries (%d):\n", len(cfg.SearchQueries))
			for i, q := range cfg.SearchQueries {
				fmt.Fprintf(stdout, "  %2d. %s\n", i+1, q)
			}

			fmt.Fprintln(stdout, "\nTo run with live data:")
			fmt.Fprintf(stdout, "  1. Get a GitHub token: %s\n", tokenHelpURL)
			fmt.Fprintln(stdout, "  2. export GITHUB_TOKEN='your_token_here'")
			fmt.Fprintln(stdout, "  3. solana-repo-tracker update")
			return nil
		},
	}

	demoCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Configuration file (.yaml or .toml)")
	return demoCmd
}

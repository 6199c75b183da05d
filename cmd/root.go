// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Execute builds the command tree and runs it against the process arguments.
// This is called by main.main().
func Execute() {
	os.Exit(Run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// Run executes the CLI with args (including the program name) and returns
// the process exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "solana-repo-tracker",
		Short: "Keeps a curated table of Solana GitHub projects up to date.",
		Long: `solana-repo-tracker refreshes the stars, contributor counts and last
activity of every tracked repository, discovers new Solana projects through
GitHub search, and rewrites the project table in README.md.`,
		SilenceUsage: true,
	}
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose/debug logging")

	rootCmd.AddCommand(
		newUpdateCmd(stdout, stderr, &verbose),
		newDemoCmd(stdout, stderr, &verbose),
	)
	rootCmd.SetArgs(args[1:])
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return 1
	}
	return 0
}

// newLogger writes human-readable logs to w. Debug output is only enabled
// when verbose is set.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	return zerolog.New(out).Level(level)
}

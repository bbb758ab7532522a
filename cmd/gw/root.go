package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/raphi011/gw/internal/config"
	"github.com/raphi011/gw/internal/log"
	"github.com/raphi011/gw/internal/output"
	"github.com/raphi011/gw/internal/ui/styles"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	dirFlag string
)

// Command group IDs for organizing help output
const (
	GroupCore    = "core"
	GroupBranch  = "branch"
	GroupConfig  = "config"
	GroupUtility = "utility"
)

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gw",
		Short: "A friendlier front end for everyday git",
		Long: `gw wraps the git binary and parses what it prints.

Diffs are split into files and hunks and rendered with colors and optional
word highlighting, status output is grouped by change kind, and branches
can be matched fuzzily.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip setup for completion and help commands
			if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
				return nil
			}

			// Flags are parsed now, so the logger can honor them.
			ctx := log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet))
			if dirFlag != "" {
				ctx = withWorkDir(ctx, resolveDir(ctx, dirFlag))
			}
			cmd.SetContext(ctx)
			return nil
		},
		// Run is not set - shows help when no subcommand provided
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show git commands being executed")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	root.PersistentFlags().StringVarP(&dirFlag, "dir", "C", "", "Run as if gw was started in this directory")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")
	root.MarkPersistentFlagDirname("dir")

	// Version flag
	root.Version = versionString()
	root.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	root.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupBranch, Title: "Branch Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
	)

	// Core commands
	root.AddCommand(newDiffCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newAddCmd())
	root.AddCommand(newResetCmd())
	root.AddCommand(newCommitCmd())
	root.AddCommand(newPullCmd())
	root.AddCommand(newPushCmd())

	// Branch commands
	root.AddCommand(newBranchCmd())

	// Config commands
	root.AddCommand(newConfigCmd())

	// Utility commands
	root.AddCommand(newHookCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

// Execute builds the root command and runs it with process-wide state.
func Execute() {
	// Load config
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	styles.Init(loadedCfg.UI.Theme)

	// Get working directory
	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gw: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = config.WithResolver(ctx, config.NewResolver(&loadedCfg))
	ctx = withWorkDir(ctx, workDir)

	// Styles always emit full ANSI; downsample to what stdout supports
	// (plain text when piped or NO_COLOR is set).
	ctx = output.WithPrinter(ctx, colorprofile.NewWriter(os.Stdout, os.Environ()))

	rootCmd := newRootCmd()
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'gw -h' for help")
		cancel()
		os.Exit(1)
	}
}

// Package cli implements the agentsync command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	clierrors "github.com/ariel-frischer/agentsync/internal/errors"
	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	GroupSync          = "sync"
	GroupConfiguration = "configuration"
)

var rootCmd = &cobra.Command{
	Use:   "agentsync",
	Short: "Keep generated AI tool commands and skills in sync",
	Long: `agentsync writes workflow commands and skills for the AI coding tools configured
in a project (Claude Code, Crush, Gemini CLI, OpenCode) from one versioned catalog.

Every generated file carries a version marker. 'agentsync status' compares those
markers against the catalog and 'agentsync update' rewrites stale or missing files.
Tools without their directory in the project are never touched.`,
	Example: `  # Show which generated files are stale
  agentsync status

  # Regenerate stale and missing files for every configured tool
  agentsync update

  # Only update Crush, in another project
  agentsync update --tool crush --project ~/src/app`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupSync, Title: "Sync Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration Commands:"},
	)
	addGlobalFlags(rootCmd, true)
}

// addGlobalFlags registers the flags every command reads through loadEnvironment.
// Tests register them as local flags on isolated commands.
func addGlobalFlags(cmd *cobra.Command, persistent bool) {
	fs := cmd.Flags()
	if persistent {
		fs = cmd.PersistentFlags()
	}
	fs.StringP("project", "p", "", "Project directory (default: enclosing git repository, else current directory)")
	fs.String("config", "", "Config file path (default: ~/.config/agentsync/config.yml)")
	fs.String("data-dir", "", "Data directory for history (default: ~/.local/share/agentsync)")
	fs.BoolP("verbose", "v", false, "Show notes for degraded files and debug logging")
}

// Execute runs the root command and prints any error with remediation steps.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func printError(w io.Writer, err error) {
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		clierrors.FprintError(w, cliErr)
		return
	}
	fmt.Fprint(w, clierrors.FormatSimpleError(err, clierrors.Runtime))
}

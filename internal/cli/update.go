package cli

import (
	"fmt"

	clierrors "github.com/ariel-frischer/agentsync/internal/errors"
	"github.com/ariel-frischer/agentsync/internal/generate"
	"github.com/ariel-frischer/agentsync/internal/history"
	"github.com/ariel-frischer/agentsync/internal/output"
	"github.com/ariel-frischer/agentsync/internal/progress"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:     "update",
	Aliases: []string{"sync", "up"},
	Short:   "Regenerate stale and missing files for configured tools (sync, up)",
	Long: `Regenerate every stale or missing command and skill for the tools configured
in the project. Files that are up to date are not touched; files whose marker is
ahead of this build are reported and left alone.

A write failure for one tool does not stop the others. The command exits with a
non-zero status when any file could not be written.`,
	Example: `  # Update every configured tool
  agentsync update

  # Update only Crush and Gemini CLI
  agentsync update --tool crush --tool gemini

  # Show what would be written
  agentsync update --dry-run`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	updateCmd.GroupID = GroupSync
	addUpdateFlags(updateCmd)
	rootCmd.AddCommand(updateCmd)
}

func addUpdateFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("tool", "t", nil, "Only update these tools (repeatable)")
	cmd.Flags().Bool("dry-run", false, "List the files that would be written without writing them")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	tools, _ := cmd.Flags().GetStringSlice("tool")
	if err := env.checkTools(tools); err != nil {
		return err
	}

	gen := generate.New(env.registry, env.catalog, env.cfg,
		generate.WithLogger(env.logger),
		generate.WithHistory(history.NewWriter(env.cfg.DataDir, history.DefaultMaxEntries, env.logger)),
	)
	out := cmd.OutOrStdout()

	if flagBool(cmd, "dry-run") {
		report, err := gen.Detector().Scan(cmd.Context(), env.projectRoot)
		if err != nil {
			return err
		}
		targets := generate.Plan(report, tools...)
		if len(targets) == 0 {
			fmt.Fprintln(out, "Nothing to update.")
			return nil
		}
		for _, t := range targets {
			fmt.Fprintf(out, "would write %s\n", t)
		}
		return nil
	}

	stop := progress.StartSpinner(cmd.ErrOrStderr(), progress.DetectTerminalCapabilities(), "Updating generated files...")
	report, result, err := gen.Sync(cmd.Context(), env.projectRoot, tools...)
	stop()
	if err != nil {
		return err
	}

	dim := color.New(color.Faint).SprintFunc()
	for _, id := range tools {
		if tool, ok := report.Tool(id); ok && !tool.Configured {
			fmt.Fprintln(out, dim(fmt.Sprintf("skipped %s: not configured in this project", id)))
		} else if !ok {
			fmt.Fprintln(out, dim(fmt.Sprintf("skipped %s: excluded by the tools setting", id)))
		}
	}

	output.PrintSyncSummary(out, result)
	warnAnomalies(cmd, report)

	if err := result.Err(); err != nil {
		return clierrors.FilesystemFailure(len(result.Failures()), err)
	}
	return nil
}

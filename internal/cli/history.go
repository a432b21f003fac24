package cli

import (
	"fmt"

	clierrors "github.com/ariel-frischer/agentsync/internal/errors"
	"github.com/ariel-frischer/agentsync/internal/history"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View the log of update runs",
	Long:  `View a log of past 'agentsync update' runs with timestamp, project, tool, and the number of files written and failed.`,
	Example: `  # Show the last 10 runs
  agentsync history -n 10

  # Only runs that touched Gemini CLI
  agentsync history --tool gemini`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runHistory,
}

func init() {
	historyCmd.GroupID = GroupConfiguration
	addHistoryFlags(historyCmd)
	rootCmd.AddCommand(historyCmd)
}

func addHistoryFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("tool", "t", "", "Filter by tool id")
	cmd.Flags().IntP("limit", "n", 0, "Limit to last N entries (most recent)")
	cmd.Flags().BoolP("clear", "c", false, "Clear all history")
}

func runHistory(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	clearFlag, _ := cmd.Flags().GetBool("clear")
	toolFilter, _ := cmd.Flags().GetString("tool")
	limit, _ := cmd.Flags().GetInt("limit")

	if limit < 0 {
		return clierrors.NewArgumentError(fmt.Sprintf("limit must be positive, got %d", limit),
			"Pass a positive number to --limit, or omit it to show every entry")
	}

	if clearFlag {
		if err := history.ClearHistory(cfg.DataDir); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	}

	histFile, err := history.LoadHistory(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	entries := filterEntries(histFile.Entries, toolFilter, limit)
	if len(entries) == 0 {
		if toolFilter != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No matching entries for tool '%s'.\n", toolFilter)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No history available.")
		}
		return nil
	}

	displayEntries(cmd, entries)
	return nil
}

// filterEntries filters and limits history entries.
func filterEntries(entries []history.HistoryEntry, toolFilter string, limit int) []history.HistoryEntry {
	var result []history.HistoryEntry
	for _, entry := range entries {
		if toolFilter == "" || entry.Tool == toolFilter {
			result = append(result, entry)
		}
	}

	// Apply limit (most recent entries)
	if limit > 0 && len(result) > limit {
		result = result[len(result)-limit:]
	}
	return result
}

// displayEntries formats and displays history entries.
func displayEntries(cmd *cobra.Command, entries []history.HistoryEntry) {
	out := cmd.OutOrStdout()

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	for _, entry := range entries {
		timestamp := entry.Timestamp.Format("2006-01-02 15:04:05")

		failed := fmt.Sprintf("failed=%d", len(entry.Failed))
		if entry.Succeeded() {
			failed = green(failed)
		} else {
			failed = red(failed)
		}

		fmt.Fprintf(out, "%s  %-10s  written=%-3d %s  %s\n",
			cyan(timestamp),
			entry.Tool,
			len(entry.Written),
			failed,
			entry.Project,
		)
	}
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/ariel-frischer/agentsync/internal/detect"
	clierrors "github.com/ariel-frischer/agentsync/internal/errors"
	"github.com/ariel-frischer/agentsync/internal/output"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st"},
	Short:   "Show the version status of generated files (st)",
	Long: `Show the version status of every generated command and skill per tool.

Each artifact is one of:
  up-to-date      the file's version marker equals the catalog version
  stale           the marker is older than the catalog; 'agentsync update' rewrites it
  not-generated   the file is missing, unparsable or has no usable marker
  ahead           the marker is newer than the catalog; left untouched
  not-configured  the tool's directory does not exist in the project`,
	Example: `  # Status of all configured tools
  agentsync status

  # Only Gemini CLI, as JSON
  agentsync status --tool gemini --json

  # Include notes explaining degraded files
  agentsync status --verbose`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.GroupID = GroupSync
	addStatusFlags(statusCmd)
	rootCmd.AddCommand(statusCmd)
}

func addStatusFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().StringSliceP("tool", "t", nil, "Only report these tools (repeatable)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return err
	}

	tools, _ := cmd.Flags().GetStringSlice("tool")
	if err := env.checkTools(tools); err != nil {
		return err
	}

	report, excluded, err := scanProject(cmd, env, tools)
	if err != nil {
		return err
	}
	for _, id := range excluded {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: excluded by the tools setting\n", id)
	}

	out := cmd.OutOrStdout()
	if flagBool(cmd, "json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(out, "Project: %s\n\n", report.ProjectRoot)
	output.PrintStatusReport(out, report, env.verbose)
	warnAnomalies(cmd, report)
	return nil
}

// scanProject scans all managed tools, or the given tools when set. Requested
// tools outside the tools setting are left out of the report and returned
// separately, matching what update does with them.
func scanProject(cmd *cobra.Command, env *environment, tools []string) (detect.Report, []string, error) {
	detector := detect.New(env.registry, env.catalog, env.cfg, detect.WithLogger(env.logger))
	if len(tools) == 0 {
		report, err := detector.Scan(cmd.Context(), env.projectRoot)
		return report, nil, err
	}

	report := detect.Report{ProjectRoot: env.projectRoot}
	var excluded []string
	for _, id := range tools {
		if !env.cfg.ManagesTool(id) {
			excluded = append(excluded, id)
			continue
		}
		tool, err := detector.ScanTool(cmd.Context(), env.projectRoot, id)
		if err != nil {
			return detect.Report{}, nil, err
		}
		report.Tools = append(report.Tools, tool)
	}
	return report, excluded, nil
}

// warnAnomalies prints ahead artifacts as a warning; they never fail the command.
func warnAnomalies(cmd *cobra.Command, report detect.Report) {
	anomalies := report.Anomalies()
	if len(anomalies) == 0 {
		return
	}
	paths := make([]string, len(anomalies))
	for i, a := range anomalies {
		paths[i] = a.Path
	}
	fmt.Fprintln(cmd.ErrOrStderr())
	clierrors.FprintError(cmd.ErrOrStderr(), clierrors.AheadVersionAnomaly(paths))
}

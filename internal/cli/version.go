package cli

import (
	"fmt"
	"runtime"

	"github.com/ariel-frischer/agentsync/internal/build"
	"github.com/ariel-frischer/agentsync/internal/catalog"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, Go version, and the catalog versions this build generates",
	Example: `  # Show version info
  agentsync version

  # Plain output (for scripts)
  agentsync version --plain`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

func init() {
	versionCmd.Flags().Bool("plain", false, "Plain output without formatting")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if flagBool(cmd, "plain") {
		fmt.Fprintf(out, "agentsync %s\n", build.Version)
		fmt.Fprintf(out, "commit: %s\n", build.Commit)
		fmt.Fprintf(out, "built: %s\n", build.BuildDate)
		fmt.Fprintf(out, "go: %s\n", runtime.Version())
		fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		return nil
	}

	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintln(out, cyan(build.Info()))
	if build.IsDevBuild() {
		fmt.Fprintln(out, dim("development build: catalog versions may change before release"))
	}
	fmt.Fprintf(out, "%s %s %s/%s\n", yellow("Go:"), runtime.Version(), runtime.GOOS, runtime.GOARCH)

	cat, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("loading template catalog: %w", err)
	}
	fmt.Fprintln(out, yellow("Catalog:"))
	for _, s := range cat.SkillTemplates() {
		fmt.Fprintf(out, "  skill   %-10s %s\n", s.ID, dim("v"+s.Version))
	}
	for _, c := range cat.CommandTemplates() {
		fmt.Fprintf(out, "  command %-10s %s\n", c.ID, dim("v"+c.Version))
	}
	return nil
}

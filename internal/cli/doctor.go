package cli

import (
	"fmt"

	"github.com/ariel-frischer/agentsync/internal/adapters"
	clierrors "github.com/ariel-frischer/agentsync/internal/errors"
	"github.com/ariel-frischer/agentsync/internal/health"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Aliases: []string{"doc"},
	Short:   "Check the agentsync environment (doc)",
	Long: `Check that the config file parses, the data directory is writable and the
template catalog loads. Also lists which supported tools are installed and which
are configured in the project.`,
	Example: `  # Check the current project
  agentsync doctor`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	root, err := resolveProjectRoot(flagString(cmd, "project"))
	if err != nil {
		return err
	}

	configPath, err := newStore(cmd).Path()
	if err != nil {
		return err
	}
	dataDir, err := resolveDataDir(cmd)
	if err != nil {
		return err
	}

	report := health.RunHealthChecks(health.Options{
		ConfigPath:  configPath,
		DataDir:     dataDir,
		ProjectRoot: root,
		Registry:    adapters.Default(),
	})
	fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))

	if !report.Passed {
		return clierrors.NewRuntimeError("one or more health checks failed",
			"Fix the failed checks listed above and run 'agentsync doctor' again")
	}
	return nil
}

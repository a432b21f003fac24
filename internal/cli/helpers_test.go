package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// testProject is a project directory plus isolated config and data locations.
type testProject struct {
	root       string
	configPath string
	dataDir    string
}

// newTestProject creates a project with the given tool directories (e.g. ".crush").
func newTestProject(t *testing.T, toolDirs ...string) testProject {
	t.Helper()
	base := t.TempDir()
	p := testProject{
		root:       filepath.Join(base, "project"),
		configPath: filepath.Join(base, "config", "config.yml"),
		dataDir:    filepath.Join(base, "data"),
	}
	require.NoError(t, os.MkdirAll(p.root, 0o755))
	for _, dir := range toolDirs {
		require.NoError(t, os.MkdirAll(filepath.Join(p.root, dir), 0o755))
	}
	return p
}

// flags returns the global flags pointing at the project's isolated locations.
func (p testProject) flags() []string {
	return []string{"--project", p.root, "--config", p.configPath, "--data-dir", p.dataDir}
}

// newIsolatedCmd builds a command that runs runE with the global flags registered
// locally, so tests never share state through rootCmd.
func newIsolatedCmd(runE func(*cobra.Command, []string) error, addFlags ...func(*cobra.Command)) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "test",
		RunE:          runE,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addGlobalFlags(cmd, false)
	for _, add := range addFlags {
		add(cmd)
	}
	return cmd
}

// execute runs cmd with args and returns stdout, stderr and the error.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

var testMarkerRe = regexp.MustCompile(`(<!-- generated by agentsync version )\S+( -->)`)

// bumpMarker rewrites every version marker in text to a version no catalog reaches.
func bumpMarker(text string) string {
	return testMarkerRe.ReplaceAllString(text, "${1}999${2}")
}

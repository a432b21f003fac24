package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the agentsync CLI.
// These templates ensure consistent, actionable error messages.

// UnknownTool creates an error for a tool ID without a registered adapter.
func UnknownTool(toolID string, available []string, cause error) *CLIError {
	return &CLIError{
		Category: Argument,
		Message:  fmt.Sprintf("unknown tool %q", toolID),
		Usage:    "agentsync update --tool <" + strings.Join(available, "|") + ">",
		Remediation: []string{
			"Supported tools: " + strings.Join(available, ", "),
			"Run 'agentsync status' to see which tools are configured in this project",
		},
		Cause: cause,
	}
}

// FilesystemFailure creates an error for artifacts that could not be written.
func FilesystemFailure(failed int, cause error) *CLIError {
	noun := "artifact"
	if failed != 1 {
		noun = "artifacts"
	}
	return &CLIError{
		Category: Filesystem,
		Message:  fmt.Sprintf("%d %s could not be written", failed, noun),
		Remediation: []string{
			"Check permissions on the tool directories listed above",
			"Other tools were still updated; re-run 'agentsync update' after fixing the problem",
		},
		Cause: cause,
	}
}

// AheadVersionAnomaly creates an informational error for artifacts newer than the catalog.
// It is shown as a warning; the artifacts are never rewritten.
func AheadVersionAnomaly(paths []string) *CLIError {
	return &CLIError{
		Category: Runtime,
		Message:  fmt.Sprintf("%d generated artifact(s) are newer than this agentsync build", len(paths)),
		Paths:    paths,
		Warning:  true,
		Remediation: []string{
			"Upgrade agentsync to the version that generated them",
			"Or delete the files above and run 'agentsync update' to downgrade them",
		},
	}
}

// ConfigLoadFailed creates an error when the configuration cannot be loaded.
func ConfigLoadFailed(path string, cause error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  fmt.Sprintf("failed to load configuration: %v", cause),
		Remediation: []string{
			"Check the syntax of " + path,
			"Check AGENTSYNC_* environment variables",
			"Run 'agentsync config init --force' to start from the defaults",
		},
		Cause: cause,
	}
}

// InvalidConfigKey creates an error for an unknown or badly typed configuration key.
func InvalidConfigKey(key string, known []string, cause error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  fmt.Sprintf("cannot set %q: %v", key, cause),
		Usage:    "agentsync config set <key> <value>",
		Remediation: []string{
			"Known keys: " + strings.Join(known, ", "),
		},
		Cause: cause,
	}
}

// ProjectNotFound creates an error when the project directory does not exist.
func ProjectNotFound(path string, cause error) *CLIError {
	return &CLIError{
		Category: Argument,
		Message:  fmt.Sprintf("project directory %s is not accessible", path),
		Usage:    "agentsync status --project <dir>",
		Remediation: []string{
			"Pass an existing directory with --project",
			"Or run agentsync from inside the project",
		},
		Cause: cause,
	}
}

package cli

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	clierrors "github.com/ariel-frischer/agentsync/internal/errors"
	"github.com/ariel-frischer/agentsync/internal/git"
)

// ResolvePath converts a raw path argument to an absolute path.
// It handles the following cases:
//   - Empty string or ".": returns current working directory
//   - "~" or "~/...": expands tilde to user home directory
//   - Relative path: resolves against current working directory
//   - Absolute path: returns unchanged
func ResolvePath(rawPath string) (string, error) {
	if rawPath == "" || rawPath == "." {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		return cwd, nil
	}

	if strings.HasPrefix(rawPath, "~") {
		expanded, err := expandTilde(rawPath)
		if err != nil {
			return "", fmt.Errorf("expanding tilde in path: %w", err)
		}
		rawPath = expanded
	}

	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return absPath, nil
}

// expandTilde expands a leading tilde (~) to the user's home directory.
// Supports both "~" alone and "~/path" forms.
func expandTilde(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("getting current user: %w", err)
	}
	if path == "~" {
		return u.HomeDir, nil
	}
	return filepath.Join(u.HomeDir, path[2:]), nil
}

// resolveProjectRoot resolves the --project flag to an existing directory.
// Without the flag the enclosing git repository root is used, or the current
// directory outside a repository.
func resolveProjectRoot(raw string) (string, error) {
	root, err := ResolvePath(raw)
	if err != nil {
		return "", clierrors.ProjectNotFound(raw, err)
	}
	if raw == "" {
		repoRoot, err := git.RepositoryRoot(root)
		switch {
		case err == nil:
			root = repoRoot
		case !errors.Is(err, git.ErrNotRepository):
			return "", clierrors.ProjectNotFound(root, err)
		}
	}
	info, err := os.Stat(root)
	if err != nil {
		return "", clierrors.ProjectNotFound(root, err)
	}
	if !info.IsDir() {
		return "", clierrors.ProjectNotFound(root, fmt.Errorf("not a directory"))
	}
	return root, nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-user config and data directories.
const appName = "agentsync"

// configFileName is the global config file inside GlobalConfigDir.
const configFileName = "config.yml"

// GlobalConfigDir returns the per-user config directory.
// XDG_CONFIG_HOME is honored on every platform; otherwise os.UserConfigDir is used:
// - Linux: ~/.config/agentsync
// - macOS: ~/Library/Application Support/agentsync
// - Windows: %AppData%\agentsync
func GlobalConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(configDir, appName), nil
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// GlobalDataDir returns the per-user data directory.
// XDG_DATA_HOME wins when set; Windows uses %LOCALAPPDATA%; everything else
// falls back to ~/.local/share/agentsync.
func GlobalDataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	if runtime.GOOS == "windows" {
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, appName), nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

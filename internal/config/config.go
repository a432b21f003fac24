// Package config provides the process-wide agentsync configuration record.
// Configuration is loaded with priority: environment variables (AGENTSYNC_*) >
// user config (~/.config/agentsync/config.yml) > defaults. The record is loaded once,
// then passed explicitly to the detector and generator.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const envPrefix = "AGENTSYNC_"

// GlobalConfig is the agentsync configuration record.
type GlobalConfig struct {
	// Tools restricts syncing to these tool ids. Empty means every registered tool.
	// Can be set via AGENTSYNC_TOOLS (comma-separated).
	Tools []string `koanf:"tools" yaml:"tools" validate:"dive,toolid"`

	// Language asks generated prompts to answer in the given language.
	// Can be set via AGENTSYNC_LANGUAGE.
	Language string `koanf:"language" yaml:"language" validate:"max=64"`

	// MaxParallel bounds how many tools are processed concurrently.
	MaxParallel int `koanf:"max_parallel" yaml:"max_parallel" validate:"min=1,max=32"`

	// ConfigDir and DataDir are resolved at load time and never persisted.
	ConfigDir string `koanf:"-" yaml:"-"`
	DataDir   string `koanf:"-" yaml:"-"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ConfigPath overrides the config file path (default: GlobalConfigPath()).
	ConfigPath string
	// DataDir overrides the data directory (default: GlobalDataDir()).
	DataDir string
	// SkipEnv ignores AGENTSYNC_* environment variables.
	SkipEnv bool
}

// LanguageInstruction returns the sentence appended to generated prompts, or ""
// when no language is configured.
func (c *GlobalConfig) LanguageInstruction() string {
	lang := strings.TrimSpace(c.Language)
	if lang == "" {
		return ""
	}
	return fmt.Sprintf("Always respond to the user in %s.", lang)
}

// ManagesTool reports whether toolID is within the configured tool allow-list.
func (c *GlobalConfig) ManagesTool(toolID string) bool {
	return len(c.Tools) == 0 || slices.Contains(c.Tools, toolID)
}

// Clone returns a deep copy.
func (c *GlobalConfig) Clone() *GlobalConfig {
	clone := *c
	clone.Tools = slices.Clone(c.Tools)
	return &clone
}

// LoadGlobal loads the configuration from defaults, the config file and the environment.
func LoadGlobal(opts LoadOptions) (*GlobalConfig, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	configPath, err := resolveConfigPath(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if fileExists(configPath) {
		if err := ValidateYAMLSyntax(configPath); err != nil {
			return nil, fmt.Errorf("validating YAML syntax for config: %w", err)
		}
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", configPath, err)
		}
	}

	if !opts.SkipEnv {
		if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
			return nil, fmt.Errorf("failed to load environment config: %w", err)
		}
	}

	var cfg GlobalConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Tools = normalizeTools(cfg.Tools)

	if err := ValidateConfigValues(&cfg, configPath); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.ConfigDir = filepath.Dir(configPath)
	cfg.DataDir = opts.DataDir
	if cfg.DataDir == "" {
		if cfg.DataDir, err = GlobalDataDir(); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// SaveGlobal writes the persisted fields of cfg to path as YAML.
// Creates the parent directory if it doesn't exist.
func SaveGlobal(cfg *GlobalConfig, path string) error {
	if err := ValidateConfigValues(cfg, path); err != nil {
		return fmt.Errorf("refusing to save invalid config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yamlv3.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func resolveConfigPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	return GlobalConfigPath()
}

// normalizeTools splits comma-separated entries (as delivered by AGENTSYNC_TOOLS),
// trims, drops empty entries and removes duplicates, keeping order.
func normalizeTools(tools []string) []string {
	out := make([]string, 0, len(tools))
	for _, entry := range tools {
		for _, t := range strings.Split(entry, ",") {
			t = strings.ToLower(strings.TrimSpace(t))
			if t == "" || slices.Contains(out, t) {
				continue
			}
			out = append(out, t)
		}
	}
	return out
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: AGENTSYNC_MAX_PARALLEL -> max_parallel
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

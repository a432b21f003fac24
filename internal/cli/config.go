package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/agentsync/internal/config"
	clierrors "github.com/ariel-frischer/agentsync/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage agentsync configuration",
	Long: `Manage agentsync configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (AGENTSYNC_TOOLS, AGENTSYNC_LANGUAGE, AGENTSYNC_MAX_PARALLEL)
  2. User config (~/.config/agentsync/config.yml)
  3. Built-in defaults`,
	Example: `  # Show the effective configuration
  agentsync config show

  # Only manage Crush and Gemini CLI
  agentsync config set tools crush,gemini

  # Ask generated prompts to answer in French
  agentsync config set-language French`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file and data directory locations",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user config file.

Known keys:
  tools         comma-separated tool ids to manage (empty = all)
  language      language generated prompts ask the assistant to respond in
  max_parallel  number of tools processed concurrently (1-32)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSetLanguageCmd = &cobra.Command{
	Use:   "set-language <language>",
	Short: "Set the language generated prompts ask the assistant to respond in",
	Long: `Set the language generated prompts ask the assistant to respond in.
Pass an empty string to remove the instruction. Run 'agentsync update' afterwards
to rewrite files that were generated without it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setConfigValue(cmd, "language", args[0])
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configCmd.GroupID = GroupConfiguration
	configShowCmd.Flags().Bool("json", false, "Output in JSON format")
	configInitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
	configCmd.AddCommand(configShowCmd, configPathCmd, configSetCmd, configSetLanguageCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagBool(cmd, "json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"tools":        cfg.Tools,
			"language":     cfg.Language,
			"max_parallel": cfg.MaxParallel,
		})
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	store := newStore(cmd)
	path, err := store.Path()
	if err != nil {
		return err
	}

	dataDir, err := resolveDataDir(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "config: %s\ndata:   %s\n", path, dataDir)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	return setConfigValue(cmd, args[0], args[1])
}

func setConfigValue(cmd *cobra.Command, key, value string) error {
	store, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	updated, err := config.SetValue(cfg, key, value)
	if err != nil {
		return clierrors.InvalidConfigKey(key, config.KeyNames(), err)
	}
	if err := store.Save(updated); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Configuration, "saving configuration")
	}

	path, _ := store.Path()
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %q in %s\n", key, value, path)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := newStore(cmd).Path()
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s (use --force to overwrite)\n", path)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

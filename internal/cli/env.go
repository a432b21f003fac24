package cli

import (
	"fmt"

	"github.com/ariel-frischer/agentsync/internal/adapters"
	"github.com/ariel-frischer/agentsync/internal/catalog"
	"github.com/ariel-frischer/agentsync/internal/config"
	clierrors "github.com/ariel-frischer/agentsync/internal/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// environment is everything a sync command needs, built once per invocation.
type environment struct {
	projectRoot string
	store       *config.Store
	cfg         *config.GlobalConfig
	registry    *adapters.Registry
	catalog     *catalog.Catalog
	logger      *zap.Logger
	verbose     bool
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func flagBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}

// newStore builds the config store from the --config and --data-dir flags.
func newStore(cmd *cobra.Command) *config.Store {
	return config.NewStore(config.LoadOptions{
		ConfigPath: flagString(cmd, "config"),
		DataDir:    flagString(cmd, "data-dir"),
	})
}

// resolveDataDir returns the --data-dir flag or the default data directory.
func resolveDataDir(cmd *cobra.Command) (string, error) {
	if dir := flagString(cmd, "data-dir"); dir != "" {
		return dir, nil
	}
	return config.GlobalDataDir()
}

// loadConfig loads the configuration, mapping failures to a configuration error.
func loadConfig(cmd *cobra.Command) (*config.Store, *config.GlobalConfig, error) {
	store := newStore(cmd)
	cfg, err := store.Get()
	if err != nil {
		path, _ := store.Path()
		return nil, nil, clierrors.ConfigLoadFailed(path, err)
	}
	return store, cfg, nil
}

// newLogger writes console-encoded warnings (debug with verbose) to w.
func newLogger(cmd *cobra.Command, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(cmd.ErrOrStderr()),
		level,
	)
	return zap.New(core)
}

func loadEnvironment(cmd *cobra.Command) (*environment, error) {
	root, err := resolveProjectRoot(flagString(cmd, "project"))
	if err != nil {
		return nil, err
	}

	store, cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("loading template catalog: %w", err)
	}

	verbose := flagBool(cmd, "verbose")
	return &environment{
		projectRoot: root,
		store:       store,
		cfg:         cfg,
		registry:    adapters.Default(),
		catalog:     cat,
		logger:      newLogger(cmd, verbose),
		verbose:     verbose,
	}, nil
}

// checkTools rejects unknown tool IDs before anything is read.
func (e *environment) checkTools(toolIDs []string) error {
	for _, id := range toolIDs {
		if _, err := e.registry.Get(id); err != nil {
			return clierrors.UnknownTool(id, e.registry.IDs(), err)
		}
	}
	return nil
}

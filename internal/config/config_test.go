package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadGlobal_Defaults(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	cfg, err := LoadGlobal(LoadOptions{
		ConfigPath: filepath.Join(t.TempDir(), "missing.yml"),
		DataDir:    dataDir,
		SkipEnv:    true,
	})
	require.NoError(t, err)

	assert.Empty(t, cfg.Tools)
	assert.Empty(t, cfg.Language)
	assert.Equal(t, DefaultMaxParallel, cfg.MaxParallel)
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.True(t, cfg.ManagesTool("crush"))
	assert.Empty(t, cfg.LanguageInstruction())
}

func TestLoadGlobal_File(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content   string
		wantTools []string
		wantLang  string
		wantPar   int
		wantErr   string
	}{
		"full config": {
			content:   "tools: [crush, Gemini]\nlanguage: French\nmax_parallel: 2\n",
			wantTools: []string{"crush", "gemini"},
			wantLang:  "French",
			wantPar:   2,
		},
		"empty file uses defaults": {
			content:   "",
			wantTools: []string{},
			wantPar:   DefaultMaxParallel,
		},
		"duplicate tools collapse": {
			content:   "tools:\n  - crush\n  - crush\n",
			wantTools: []string{"crush"},
			wantPar:   DefaultMaxParallel,
		},
		"invalid yaml": {
			content: "tools: [crush\nlanguage: x\n",
			wantErr: "validating YAML syntax",
		},
		"max_parallel out of range": {
			content: "max_parallel: 0\n",
			wantErr: "max_parallel",
		},
		"invalid tool id": {
			content: "tools: [\"bad tool\"]\n",
			wantErr: "not a valid tool id",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg, err := LoadGlobal(LoadOptions{
				ConfigPath: writeConfig(t, tt.content),
				DataDir:    t.TempDir(),
				SkipEnv:    true,
			})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTools, cfg.Tools)
			assert.Equal(t, tt.wantLang, cfg.Language)
			assert.Equal(t, tt.wantPar, cfg.MaxParallel)
		})
	}
}

func TestLoadGlobal_EnvOverridesFile(t *testing.T) {
	t.Setenv("AGENTSYNC_TOOLS", "crush, gemini")
	t.Setenv("AGENTSYNC_LANGUAGE", "German")
	t.Setenv("AGENTSYNC_MAX_PARALLEL", "8")

	cfg, err := LoadGlobal(LoadOptions{
		ConfigPath: writeConfig(t, "tools: [claude]\nlanguage: French\nmax_parallel: 2\n"),
		DataDir:    t.TempDir(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"crush", "gemini"}, cfg.Tools)
	assert.Equal(t, "German", cfg.Language)
	assert.Equal(t, 8, cfg.MaxParallel)
	assert.False(t, cfg.ManagesTool("claude"))
	assert.Equal(t, "Always respond to the user in German.", cfg.LanguageInstruction())
}

func TestLoadGlobal_SkipEnv(t *testing.T) {
	t.Setenv("AGENTSYNC_LANGUAGE", "German")

	cfg, err := LoadGlobal(LoadOptions{
		ConfigPath: writeConfig(t, "language: French\n"),
		DataDir:    t.TempDir(),
		SkipEnv:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "French", cfg.Language)
}

func TestSaveGlobal_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	in := &GlobalConfig{
		Tools:       []string{"crush"},
		Language:    "Spanish",
		MaxParallel: 3,
		ConfigDir:   "/ignored",
		DataDir:     "/ignored",
	}
	require.NoError(t, SaveGlobal(in, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "/ignored")

	out, err := LoadGlobal(LoadOptions{ConfigPath: path, DataDir: t.TempDir(), SkipEnv: true})
	require.NoError(t, err)
	assert.Equal(t, in.Tools, out.Tools)
	assert.Equal(t, in.Language, out.Language)
	assert.Equal(t, in.MaxParallel, out.MaxParallel)
	assert.Equal(t, filepath.Dir(path), out.ConfigDir)
}

func TestSaveGlobal_RejectsInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yml")
	err := SaveGlobal(&GlobalConfig{MaxParallel: 99}, path)
	require.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestGlobalConfig_Clone(t *testing.T) {
	t.Parallel()

	orig := &GlobalConfig{Tools: []string{"crush"}, MaxParallel: 1}
	clone := orig.Clone()
	clone.Tools[0] = "gemini"
	clone.MaxParallel = 5

	assert.Equal(t, []string{"crush"}, orig.Tools)
	assert.Equal(t, 1, orig.MaxParallel)
}

func TestStore_LoadsOnce(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "language: French\n")
	store := NewStore(LoadOptions{ConfigPath: path, DataDir: t.TempDir(), SkipEnv: true})

	first, err := store.Get()
	require.NoError(t, err)

	// Later edits to the file are not observed by an already-loaded store.
	require.NoError(t, os.WriteFile(path, []byte("language: German\n"), 0o644))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cfg, err := store.Get()
			assert.NoError(t, err)
			assert.Equal(t, "French", cfg.Language)
		}()
	}
	wg.Wait()

	first.Language = "mutated"
	again, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "French", again.Language)
}

func TestStore_Save(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yml")
	dataDir := t.TempDir()
	store := NewStore(LoadOptions{ConfigPath: path, DataDir: dataDir, SkipEnv: true})

	cfg, err := store.Get()
	require.NoError(t, err)

	updated, err := SetValue(cfg, "language", "Italian")
	require.NoError(t, err)
	require.NoError(t, store.Save(updated))

	got, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "Italian", got.Language)
	assert.Equal(t, dataDir, got.DataDir)

	reloaded, err := LoadGlobal(LoadOptions{ConfigPath: path, DataDir: dataDir, SkipEnv: true})
	require.NoError(t, err)
	assert.Equal(t, "Italian", reloaded.Language)
}

func TestStore_GetReturnsLoadError(t *testing.T) {
	t.Parallel()

	store := NewStore(LoadOptions{ConfigPath: writeConfig(t, "max_parallel: 100\n"), DataDir: t.TempDir(), SkipEnv: true})
	_, err := store.Get()
	require.Error(t, err)
}

func TestGlobalPaths_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	dir, err := GlobalConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg-config", "agentsync"), dir)

	path, err := GlobalConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg-config", "agentsync", "config.yml"), path)

	data, err := GlobalDataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg-data", "agentsync"), data)
}

func TestValidateYAMLSyntaxFromBytes(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		data     string
		wantErr  bool
		wantLine int
	}{
		"valid":   {data: "language: x\n"},
		"empty":   {data: "   \n"},
		"invalid": {data: "a: [b\nc: d\n", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := ValidateYAMLSyntaxFromBytes([]byte(tt.data), "config.yml")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "config.yml", vErr.FilePath)
		})
	}
}

func TestGetDefaultConfigTemplate_Parses(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, GetDefaultConfigTemplate())
	cfg, err := LoadGlobal(LoadOptions{ConfigPath: path, DataDir: t.TempDir(), SkipEnv: true})
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxParallel, cfg.MaxParallel)
	assert.Empty(t, cfg.Tools)
}

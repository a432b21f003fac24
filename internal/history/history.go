// Package history records sync runs in a YAML file under the agentsync data directory.
// Each update run appends one entry per tool that was written to.
package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the history file inside the data directory.
const FileName = "history.yml"

// DefaultMaxEntries bounds the history file when no limit is given.
const DefaultMaxEntries = 500

// HistoryFile is the on-disk layout of the history file.
type HistoryFile struct {
	Entries []HistoryEntry `yaml:"entries"`
}

// HistoryEntry records what one sync run did for one tool.
type HistoryEntry struct {
	Timestamp time.Time `yaml:"timestamp"`
	Project   string    `yaml:"project"`
	Tool      string    `yaml:"tool"`
	Written   []string  `yaml:"written,omitempty"`
	Failed    []string  `yaml:"failed,omitempty"`
}

// Succeeded reports whether every write in the entry succeeded.
func (e HistoryEntry) Succeeded() bool {
	return len(e.Failed) == 0
}

// Path returns the history file path inside dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// LoadHistory reads the history file. A missing file yields an empty history.
func LoadHistory(dataDir string) (*HistoryFile, error) {
	data, err := os.ReadFile(Path(dataDir))
	if errors.Is(err, os.ErrNotExist) {
		return &HistoryFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var history HistoryFile
	if err := yaml.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("parsing history file: %w", err)
	}
	return &history, nil
}

// SaveHistory writes history to dataDir, replacing the previous file atomically.
func SaveHistory(dataDir string, history *HistoryFile) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	data, err := yaml.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	tmp, err := os.CreateTemp(dataDir, ".history-*.yml")
	if err != nil {
		return fmt.Errorf("creating temp history file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing history: %w", err)
	}
	if err := os.Rename(tmp.Name(), Path(dataDir)); err != nil {
		return fmt.Errorf("replacing history file: %w", err)
	}
	return nil
}

// ClearHistory removes the history file. A missing file is not an error.
func ClearHistory(dataDir string) error {
	if err := os.Remove(Path(dataDir)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing history file: %w", err)
	}
	return nil
}

package history

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Writer provides thread-safe history logging with automatic pruning.
type Writer struct {
	// DataDir is the directory containing the history file.
	DataDir string
	// MaxEntries is the maximum number of entries to retain. Zero means unlimited.
	MaxEntries int

	logger *zap.Logger
	mu     sync.Mutex
}

// NewWriter creates a new history writer. A nil logger discards warnings.
func NewWriter(dataDir string, maxEntries int, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{
		DataDir:    dataDir,
		MaxEntries: maxEntries,
		logger:     logger,
	}
}

// LogEntry adds a new entry to the history file.
// It loads the existing history, appends the new entry, prunes if needed, and saves.
// Errors are non-fatal: they are logged as warnings and don't cause command failures.
func (w *Writer) LogEntry(entry HistoryEntry) {
	if err := w.logEntryInternal(entry); err != nil {
		w.logger.Warn("failed to log history",
			zap.String("path", Path(w.DataDir)),
			zap.Error(err),
		)
	}
}

func (w *Writer) logEntryInternal(entry HistoryEntry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	history, err := LoadHistory(w.DataDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	history.Entries = append(history.Entries, entry)

	// Prune oldest entries if over limit
	if w.MaxEntries > 0 && len(history.Entries) > w.MaxEntries {
		excess := len(history.Entries) - w.MaxEntries
		history.Entries = history.Entries[excess:]
	}

	if err := SaveHistory(w.DataDir, history); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}

	return nil
}

// LogSync is a convenience method to log the outcome of syncing one tool.
func (w *Writer) LogSync(project, tool string, written, failed []string) {
	w.LogEntry(HistoryEntry{
		Timestamp: time.Now(),
		Project:   project,
		Tool:      tool,
		Written:   written,
		Failed:    failed,
	})
}

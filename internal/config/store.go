package config

import (
	"fmt"
	"path/filepath"
	"sync"
)

// Store holds the configuration for the lifetime of a process.
// The first Get loads it; every later Get returns a copy of the same record.
// Save is serialized with Get so callers never observe a half-written value.
type Store struct {
	opts LoadOptions

	once sync.Once
	mu   sync.Mutex
	cfg  *GlobalConfig
	err  error
}

// NewStore creates a store that loads with opts on first use.
func NewStore(opts LoadOptions) *Store {
	return &Store{opts: opts}
}

func (s *Store) load() {
	s.once.Do(func() {
		s.cfg, s.err = LoadGlobal(s.opts)
	})
}

// Get returns a copy of the loaded configuration.
func (s *Store) Get() (*GlobalConfig, error) {
	s.load()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	return s.cfg.Clone(), nil
}

// Save persists cfg and makes it the value returned by later Get calls.
// The resolved ConfigDir and DataDir of the loaded record are kept.
func (s *Store) Save(cfg *GlobalConfig) error {
	s.load()

	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := resolveConfigPath(s.opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := SaveGlobal(cfg, path); err != nil {
		return fmt.Errorf("saving global config: %w", err)
	}

	saved := cfg.Clone()
	if s.cfg != nil {
		saved.ConfigDir = s.cfg.ConfigDir
		saved.DataDir = s.cfg.DataDir
	} else {
		saved.ConfigDir = filepath.Dir(path)
		if saved.DataDir = s.opts.DataDir; saved.DataDir == "" {
			if saved.DataDir, err = GlobalDataDir(); err != nil {
				return err
			}
		}
	}
	s.cfg, s.err = saved, nil
	return nil
}

// Path returns the config file path this store reads and writes.
func (s *Store) Path() (string, error) {
	return resolveConfigPath(s.opts.ConfigPath)
}

// Package adapters maps external AI tools to the location and file format of the
// commands generated for them. Adding a tool means implementing Adapter and
// registering it; no other package inspects tool-specific formats.
package adapters

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Namespace groups every generated file so user-authored commands are never touched.
const Namespace = "agentsync"

// SkillFileName is the file written inside each skill directory.
const SkillFileName = "SKILL.md"

// ErrUnknownTool matches UnknownToolError values via errors.Is.
var ErrUnknownTool = errors.New("unknown tool")

// CommandContent is the tool-independent description of one command.
// Tags keep their order in the rendered output.
type CommandContent struct {
	ID          string
	Name        string
	Description string
	Category    string
	Tags        []string
	// Body is pre-rendered text that already carries the version marker.
	Body string
}

// Adapter describes where and how one tool expects its generated files.
// All methods are pure: none of them touch the filesystem.
type Adapter interface {
	// ToolID is the stable identifier, unique within a Registry.
	ToolID() string
	// DisplayName is the human-readable tool name.
	DisplayName() string
	// ConfigDir is the project-relative path whose presence means the tool is configured.
	ConfigDir() string
	// SkillsDir is the project-relative directory holding skill directories.
	SkillsDir() string
	// FilePath returns the project-relative path of the command file.
	FilePath(commandID string) string
	// FormatFile renders the exact file text for the command.
	FormatFile(content CommandContent) string
}

// Parser is implemented by adapters whose structured format must parse before the
// version marker inside it is trusted. ParseFile returns the command body.
type Parser interface {
	ParseFile(data []byte) (string, error)
}

// SkillPath returns the project-relative SKILL.md path for a skill directory name.
func SkillPath(a Adapter, skillDir string) string {
	return filepath.Join(a.SkillsDir(), skillDir, SkillFileName)
}

// UnknownToolError is returned when a tool ID has no registered adapter.
type UnknownToolError struct {
	ToolID    string
	Available []string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q; available: %s", e.ToolID, strings.Join(e.Available, ", "))
}

// Is reports whether target is ErrUnknownTool.
func (e *UnknownToolError) Is(target error) bool { return target == ErrUnknownTool }

// Registry holds one adapter per tool ID.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

// NewRegistry creates a registry with the given adapters.
// Returns an error if two adapters share a tool ID.
func NewRegistry(list ...Adapter) (*Registry, error) {
	r := &Registry{adapters: make(map[string]Adapter, len(list))}
	for _, a := range list {
		if err := r.Register(a); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Default returns a registry holding every built-in adapter.
func Default() *Registry {
	r, err := NewRegistry(NewClaude(), NewCrush(), NewGemini(), NewOpenCode())
	if err != nil {
		panic(fmt.Sprintf("building default adapter registry: %v", err))
	}
	return r
}

// Register adds an adapter. Tool IDs must be non-empty and unique.
func (r *Registry) Register(a Adapter) error {
	id := a.ToolID()
	if id == "" {
		return fmt.Errorf("adapter has empty tool id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.adapters[id]; exists {
		return fmt.Errorf("adapter for tool %q already registered", id)
	}
	r.adapters[id] = a
	return nil
}

// Get returns the adapter for toolID or an UnknownToolError.
func (r *Registry) Get(toolID string) (Adapter, error) {
	r.mu.RLock()
	a, ok := r.adapters[toolID]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnknownToolError{ToolID: toolID, Available: r.IDs()}
	}
	return a, nil
}

// IDs returns the registered tool IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.adapters))
	for id := range r.adapters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns the registered adapters ordered by tool ID.
func (r *Registry) All() []Adapter {
	ids := r.IDs()

	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Adapter, 0, len(ids))
	for _, id := range ids {
		list = append(list, r.adapters[id])
	}
	return list
}

// Package status classifies generated artifacts by comparing the version marker
// found on disk against the current catalog version.
package status

import (
	"encoding/json"

	"github.com/ariel-frischer/agentsync/internal/marker"
)

// ToolVersionStatus is the derived state of one (tool, artifact) pair.
type ToolVersionStatus string

const (
	// NotConfigured means the tool has no presence marker in the project.
	NotConfigured ToolVersionStatus = "not-configured"
	// NotGenerated means the file is absent, unreadable, or carries no usable marker.
	NotGenerated ToolVersionStatus = "not-generated"
	// Stale means the generated marker is behind the catalog version.
	Stale ToolVersionStatus = "stale"
	// UpToDate means the generated marker equals the catalog version.
	UpToDate ToolVersionStatus = "up-to-date"
	// Ahead means the generated marker is newer than the catalog version.
	// It is reported for investigation and never regenerated automatically.
	Ahead ToolVersionStatus = "ahead"
)

// Kind distinguishes skill artifacts from command artifacts.
type Kind string

const (
	KindSkill   Kind = "skill"
	KindCommand Kind = "command"
)

// NeedsGeneration reports whether an artifact in this state should be written.
func (s ToolVersionStatus) NeedsGeneration() bool {
	return s == Stale || s == NotGenerated
}

// ToolSkillStatus describes one artifact of one tool.
type ToolSkillStatus struct {
	ToolID string `json:"tool"`
	Kind   Kind   `json:"kind"`
	ID     string `json:"id"`
	// Path is relative to the project root.
	Path       string `json:"path"`
	Configured bool   `json:"configured"`
	// GeneratedVersion is empty when no valid marker was found.
	GeneratedVersion string `json:"generated_version,omitempty"`
	CurrentVersion   string `json:"current_version"`
	// Note explains why a present file was treated as not generated.
	Note string `json:"note,omitempty"`
}

// Status classifies the artifact.
func (s ToolSkillStatus) Status() ToolVersionStatus {
	return Classify(s.Configured, s.GeneratedVersion, s.CurrentVersion)
}

// MarshalJSON adds the derived status to the encoded record.
func (s ToolSkillStatus) MarshalJSON() ([]byte, error) {
	type plain ToolSkillStatus
	return json.Marshal(struct {
		plain
		Status ToolVersionStatus `json:"status"`
	}{plain(s), s.Status()})
}

// Classify applies the precedence not-configured > not-generated > marker comparison.
// A marker that cannot be compared is treated as absent.
func Classify(configured bool, generatedVersion, currentVersion string) ToolVersionStatus {
	if !configured {
		return NotConfigured
	}
	if generatedVersion == "" {
		return NotGenerated
	}
	cmp, err := marker.Compare(generatedVersion, currentVersion)
	if err != nil {
		return NotGenerated
	}
	switch {
	case cmp < 0:
		return Stale
	case cmp > 0:
		return Ahead
	default:
		return UpToDate
	}
}

// Counts tallies statuses for a set of artifacts.
func Counts(items []ToolSkillStatus) map[ToolVersionStatus]int {
	counts := make(map[ToolVersionStatus]int)
	for _, item := range items {
		counts[item.Status()]++
	}
	return counts
}

package detect

import "github.com/ariel-frischer/agentsync/internal/status"

// ToolReport lists the artifacts of one tool, skills first, each group in catalog order.
type ToolReport struct {
	ToolID      string                   `json:"tool"`
	DisplayName string                   `json:"display_name"`
	Configured  bool                     `json:"configured"`
	Artifacts   []status.ToolSkillStatus `json:"artifacts"`
}

// Pending returns the artifacts that need generation.
func (r ToolReport) Pending() []status.ToolSkillStatus {
	var out []status.ToolSkillStatus
	for _, a := range r.Artifacts {
		if a.Status().NeedsGeneration() {
			out = append(out, a)
		}
	}
	return out
}

// Report is the result of one project scan, sorted by tool ID.
type Report struct {
	ProjectRoot string       `json:"project"`
	Tools       []ToolReport `json:"tools"`
}

// Tool returns the report for toolID.
func (r Report) Tool(toolID string) (ToolReport, bool) {
	for _, t := range r.Tools {
		if t.ToolID == toolID {
			return t, true
		}
	}
	return ToolReport{}, false
}

// Anomalies returns artifacts whose marker is ahead of the catalog.
// They are reported for investigation and never regenerated.
func (r Report) Anomalies() []status.ToolSkillStatus {
	var out []status.ToolSkillStatus
	for _, t := range r.Tools {
		for _, a := range t.Artifacts {
			if a.Status() == status.Ahead {
				out = append(out, a)
			}
		}
	}
	return out
}

// Counts tallies artifact statuses across all tools.
func (r Report) Counts() map[status.ToolVersionStatus]int {
	var all []status.ToolSkillStatus
	for _, t := range r.Tools {
		all = append(all, t.Artifacts...)
	}
	return status.Counts(all)
}

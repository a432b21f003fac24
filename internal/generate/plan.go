package generate

import (
	"slices"

	"github.com/ariel-frischer/agentsync/internal/detect"
	"github.com/ariel-frischer/agentsync/internal/status"
)

// Target identifies one artifact of one tool.
type Target struct {
	ToolID string
	Kind   status.Kind
	ID     string
}

func (t Target) String() string {
	return t.ToolID + ":" + string(t.Kind) + "/" + t.ID
}

// Plan selects the stale and missing artifacts of configured tools.
// When toolIDs is non-empty only those tools are considered.
// Not-configured, up-to-date and ahead artifacts are never planned.
func Plan(report detect.Report, toolIDs ...string) []Target {
	var targets []Target
	for _, tool := range report.Tools {
		if len(toolIDs) > 0 && !slices.Contains(toolIDs, tool.ToolID) {
			continue
		}
		if !tool.Configured {
			continue
		}
		for _, a := range tool.Pending() {
			targets = append(targets, Target{ToolID: a.ToolID, Kind: a.Kind, ID: a.ID})
		}
	}
	return targets
}

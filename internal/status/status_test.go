package status

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		configured bool
		generated  string
		current    string
		want       ToolVersionStatus
	}{
		"not configured wins over everything": {
			configured: false,
			generated:  "3",
			current:    "3",
			want:       NotConfigured,
		},
		"no marker": {
			configured: true,
			current:    "3",
			want:       NotGenerated,
		},
		"older marker is stale": {
			configured: true,
			generated:  "2",
			current:    "3",
			want:       Stale,
		},
		"equal marker is up to date": {
			configured: true,
			generated:  "3",
			current:    "3.0.0",
			want:       UpToDate,
		},
		"newer marker is ahead": {
			configured: true,
			generated:  "4",
			current:    "3",
			want:       Ahead,
		},
		"uncomparable marker degrades to not generated": {
			configured: true,
			generated:  "???",
			current:    "3",
			want:       NotGenerated,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.configured, tt.generated, tt.current))
		})
	}
}

func TestNeedsGeneration(t *testing.T) {
	t.Parallel()

	assert.True(t, Stale.NeedsGeneration())
	assert.True(t, NotGenerated.NeedsGeneration())
	assert.False(t, UpToDate.NeedsGeneration())
	assert.False(t, Ahead.NeedsGeneration(), "ahead must never be auto-corrected")
	assert.False(t, NotConfigured.NeedsGeneration(), "unconfigured tools must never be written")
}

func TestCounts(t *testing.T) {
	t.Parallel()

	items := []ToolSkillStatus{
		{Configured: true, GeneratedVersion: "1", CurrentVersion: "2"},
		{Configured: true, GeneratedVersion: "2", CurrentVersion: "2"},
		{Configured: true, CurrentVersion: "2"},
		{Configured: true, GeneratedVersion: "1", CurrentVersion: "2"},
	}

	counts := Counts(items)
	assert.Equal(t, 2, counts[Stale])
	assert.Equal(t, 1, counts[UpToDate])
	assert.Equal(t, 1, counts[NotGenerated])
	assert.Zero(t, counts[Ahead])
}

func TestToolSkillStatus_MarshalJSON(t *testing.T) {
	t.Parallel()

	item := ToolSkillStatus{
		ToolID:           "crush",
		Kind:             KindCommand,
		ID:               "explore",
		Path:             ".crush/commands/agentsync/explore.md",
		Configured:       true,
		GeneratedVersion: "2",
		CurrentVersion:   "3",
	}

	data, err := json.Marshal(item)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "stale", decoded["status"])
	assert.Equal(t, "crush", decoded["tool"])
	assert.Equal(t, "2", decoded["generated_version"])
	assert.NotContains(t, decoded, "note")
}

package adapters

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ariel-frischer/agentsync/internal/frontmatter"
	"github.com/ariel-frischer/agentsync/internal/marker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleContent() CommandContent {
	return CommandContent{
		ID:          "explore",
		Name:        "Agentsync: Explore",
		Description: "Think through an idea before committing to a change",
		Category:    "Workflow",
		Tags:        []string{"workflow", "explore", "experimental"},
		Body:        marker.Embed("Explore the codebase.\n\nUse \"quotes\", a back\\slash and \"\"\" too.\n", "3"),
	}
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	r := Default()
	assert.Equal(t, []string{"claude", "crush", "gemini", "opencode"}, r.IDs())

	all := r.All()
	require.Len(t, all, 4)
	for i, a := range all {
		assert.Equal(t, r.IDs()[i], a.ToolID())
		assert.NotEmpty(t, a.DisplayName())
		assert.NotEmpty(t, a.ConfigDir())
		assert.True(t, strings.HasPrefix(a.SkillsDir(), a.ConfigDir()), "%s skills live under its config dir", a.ToolID())
	}
}

func TestRegistry_Get(t *testing.T) {
	t.Parallel()

	r := Default()

	a, err := r.Get("gemini")
	require.NoError(t, err)
	assert.Equal(t, "gemini", a.ToolID())

	_, err = r.Get("vim")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTool))

	var unknown *UnknownToolError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "vim", unknown.ToolID)
	assert.Contains(t, err.Error(), "crush")
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry(NewCrush(), NewCrush())
	assert.ErrorContains(t, err, "already registered")

	r, err := NewRegistry()
	require.NoError(t, err)
	assert.Error(t, r.Register(&Crush{}), "empty tool id")
}

func TestFilePath(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		adapter Adapter
		want    string
	}{
		"claude":   {adapter: NewClaude(), want: filepath.Join(".claude", "commands", "agentsync", "explore.md")},
		"crush":    {adapter: NewCrush(), want: filepath.Join(".crush", "commands", "agentsync", "explore.md")},
		"gemini":   {adapter: NewGemini(), want: filepath.Join(".gemini", "commands", "agentsync", "explore.toml")},
		"opencode": {adapter: NewOpenCode(), want: filepath.Join(".opencode", "command", "agentsync-explore.md")},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.adapter.FilePath("explore"))
		})
	}
}

func TestSkillPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		filepath.Join(".crush", "skills", "agentsync-explore", "SKILL.md"),
		SkillPath(NewCrush(), "agentsync-explore"))
}

func TestFormatFile_Crush(t *testing.T) {
	t.Parallel()

	out := NewCrush().FormatFile(sampleContent())

	assert.True(t, strings.HasPrefix(out, "---\nname: "), out)
	var header struct {
		Name string `yaml:"name"`
	}
	_, err := frontmatter.Decode([]byte(out), &header)
	require.NoError(t, err)
	assert.Equal(t, "Agentsync: Explore", header.Name)
	assert.Contains(t, out, "description: Think through an idea before committing to a change\n")
	assert.Contains(t, out, "category: Workflow\n")
	assert.Contains(t, out, "tags: [workflow, explore, experimental]\n")
	assert.Contains(t, out, "---\n\n"+marker.Format("3")+"\n")
	assert.True(t, strings.HasSuffix(out, "too.\n"))
}

func TestFormatFile_OpenCodeHeader(t *testing.T) {
	t.Parallel()

	out := NewOpenCode().FormatFile(sampleContent())
	header, _, found := strings.Cut(strings.TrimPrefix(out, "---\n"), "---\n")
	require.True(t, found)
	assert.Equal(t, "description: Think through an idea before committing to a change\n", header)
}

func TestFormatFile_GeminiLayout(t *testing.T) {
	t.Parallel()

	c := sampleContent()
	c.Description = "Multi\nline \"quoted\" description"
	out := NewGemini().FormatFile(c)

	assert.True(t, strings.HasPrefix(out, "description = \"Multi line \\\"quoted\\\" description\"\n\nprompt = \"\"\"\n"), out)
	assert.True(t, strings.HasSuffix(out, "\n\"\"\"\n"))
	assert.Contains(t, out, marker.Format("3"))
}

// Every adapter must keep the marker recoverable after a format/parse round trip.
func TestFormatThenParse_PreservesMarker(t *testing.T) {
	t.Parallel()

	for _, a := range Default().All() {
		t.Run(a.ToolID(), func(t *testing.T) {
			t.Parallel()

			content := sampleContent()
			out := a.FormatFile(content)

			version, err := marker.Extract(out)
			require.NoError(t, err, "marker must be visible in raw text")
			assert.Equal(t, "3", version)

			p, ok := a.(Parser)
			require.True(t, ok, "built-in adapters implement Parser")

			body, err := p.ParseFile([]byte(out))
			require.NoError(t, err)
			assert.Equal(t, strings.TrimRight(content.Body, "\n"), strings.TrimSpace(body))
		})
	}
}

func TestFormatFile_Deterministic(t *testing.T) {
	t.Parallel()

	for _, a := range Default().All() {
		assert.Equal(t, a.FormatFile(sampleContent()), a.FormatFile(sampleContent()), a.ToolID())
	}
}

func TestParseFile_Malformed(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		adapter Adapter
		data    string
	}{
		"gemini invalid toml": {
			adapter: NewGemini(),
			data:    "description = \"unterminated\nprompt = \"\"\"\nbody",
		},
		"gemini missing prompt": {
			adapter: NewGemini(),
			data:    "description = \"only a description\"\n",
		},
		"gemini wrong type": {
			adapter: NewGemini(),
			data:    "description = 3\nprompt = [1, 2]\n",
		},
		"crush no header": {
			adapter: NewCrush(),
			data:    marker.Format("3") + "\nbody\n",
		},
		"crush broken yaml": {
			adapter: NewCrush(),
			data:    "---\nname: [oops\ndescription: x\n---\n" + marker.Format("3") + "\n",
		},
		"crush missing name": {
			adapter: NewCrush(),
			data:    "---\ndescription: x\n---\n" + marker.Format("3") + "\n",
		},
		"opencode unterminated header": {
			adapter: NewOpenCode(),
			data:    "---\ndescription: x\n" + marker.Format("3") + "\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p, ok := tt.adapter.(Parser)
			require.True(t, ok)
			_, err := p.ParseFile([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

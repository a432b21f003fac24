package adapters

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/agentsync/internal/frontmatter"
)

// baseAdapter carries the identity and directory layout shared by every adapter.
type baseAdapter struct {
	id          string
	displayName string
	configDir   string
	skillsDir   string
}

func (b baseAdapter) ToolID() string      { return b.id }
func (b baseAdapter) DisplayName() string { return b.displayName }
func (b baseAdapter) ConfigDir() string   { return b.configDir }
func (b baseAdapter) SkillsDir() string   { return b.skillsDir }

// headerLine is one "key: value" line of a markdown header, value already rendered.
type headerLine struct {
	key   string
	value string
}

// formatMarkdown renders header lines in the given order followed by the body.
func formatMarkdown(lines []headerLine, body string) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.key + ": " + l.value
	}
	return frontmatter.Compose(strings.Join(parts, "\n"), body)
}

// parseMarkdown validates the YAML header and returns the body.
// Every required key must be present and non-null.
func parseMarkdown(data []byte, required ...string) (string, error) {
	var header map[string]any
	body, err := frontmatter.Decode(data, &header)
	if err != nil {
		return "", err
	}
	for _, key := range required {
		if v, ok := header[key]; !ok || v == nil {
			return "", fmt.Errorf("frontmatter missing %q", key)
		}
	}
	return body, nil
}

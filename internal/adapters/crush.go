package adapters

import (
	"path/filepath"

	"github.com/ariel-frischer/agentsync/internal/frontmatter"
)

// Crush writes commands for the Crush terminal agent.
// Path: .crush/commands/agentsync/<id>.md
type Crush struct {
	baseAdapter
}

// NewCrush creates the Crush adapter.
func NewCrush() *Crush {
	return &Crush{baseAdapter{
		id:          "crush",
		displayName: "Crush",
		configDir:   ".crush",
		skillsDir:   filepath.Join(".crush", "skills"),
	}}
}

// FilePath implements Adapter.
func (c *Crush) FilePath(commandID string) string {
	return filepath.Join(".crush", "commands", Namespace, commandID+".md")
}

// FormatFile renders a header with name, description, category and tags.
func (c *Crush) FormatFile(content CommandContent) string {
	return formatMarkdown([]headerLine{
		{"name", frontmatter.Scalar(content.Name)},
		{"description", frontmatter.Scalar(content.Description)},
		{"category", frontmatter.Scalar(content.Category)},
		{"tags", frontmatter.FlowList(content.Tags)},
	}, content.Body)
}

// ParseFile implements Parser.
func (c *Crush) ParseFile(data []byte) (string, error) {
	return parseMarkdown(data, "name", "description")
}

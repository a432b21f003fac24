package adapters

import (
	"path/filepath"

	"github.com/ariel-frischer/agentsync/internal/frontmatter"
)

// Claude writes slash commands for Claude Code.
// Path: .claude/commands/agentsync/<id>.md, invoked as /agentsync:<id>.
type Claude struct {
	baseAdapter
}

// NewClaude creates the Claude Code adapter.
func NewClaude() *Claude {
	return &Claude{baseAdapter{
		id:          "claude",
		displayName: "Claude Code",
		configDir:   ".claude",
		skillsDir:   filepath.Join(".claude", "skills"),
	}}
}

// FilePath implements Adapter.
func (c *Claude) FilePath(commandID string) string {
	return filepath.Join(".claude", "commands", Namespace, commandID+".md")
}

// FormatFile implements Adapter.
func (c *Claude) FormatFile(content CommandContent) string {
	return formatMarkdown([]headerLine{
		{"name", frontmatter.Scalar(content.Name)},
		{"description", frontmatter.Scalar(content.Description)},
		{"category", frontmatter.Scalar(content.Category)},
		{"tags", frontmatter.FlowList(content.Tags)},
	}, content.Body)
}

// ParseFile implements Parser.
func (c *Claude) ParseFile(data []byte) (string, error) {
	return parseMarkdown(data, "description")
}

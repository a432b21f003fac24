package adapters

import (
	"path/filepath"

	"github.com/ariel-frischer/agentsync/internal/frontmatter"
)

// OpenCode writes commands for OpenCode, which only reads a description header.
// Path: .opencode/command/agentsync-<id>.md
type OpenCode struct {
	baseAdapter
}

// NewOpenCode creates the OpenCode adapter.
func NewOpenCode() *OpenCode {
	return &OpenCode{baseAdapter{
		id:          "opencode",
		displayName: "OpenCode",
		configDir:   ".opencode",
		skillsDir:   filepath.Join(".opencode", "skills"),
	}}
}

// FilePath implements Adapter. OpenCode has no nested namespaces, so the
// namespace becomes a file name prefix.
func (o *OpenCode) FilePath(commandID string) string {
	return filepath.Join(".opencode", "command", Namespace+"-"+commandID+".md")
}

// FormatFile implements Adapter.
func (o *OpenCode) FormatFile(content CommandContent) string {
	return formatMarkdown([]headerLine{
		{"description", frontmatter.Scalar(content.Description)},
	}, content.Body)
}

// ParseFile implements Parser.
func (o *OpenCode) ParseFile(data []byte) (string, error) {
	return parseMarkdown(data, "description")
}

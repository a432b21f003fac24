package adapters

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Gemini writes custom commands for Gemini CLI as TOML files.
// Path: .gemini/commands/agentsync/<id>.toml, invoked as /agentsync:<id>.
type Gemini struct {
	baseAdapter
}

// geminiCommandFile is the subset of the Gemini CLI command schema we emit.
type geminiCommandFile struct {
	Description string `toml:"description"`
	Prompt      string `toml:"prompt"`
}

// NewGemini creates the Gemini CLI adapter.
func NewGemini() *Gemini {
	return &Gemini{baseAdapter{
		id:          "gemini",
		displayName: "Gemini CLI",
		configDir:   ".gemini",
		skillsDir:   filepath.Join(".gemini", "skills"),
	}}
}

// FilePath implements Adapter.
func (g *Gemini) FilePath(commandID string) string {
	return filepath.Join(".gemini", "commands", Namespace, commandID+".toml")
}

// FormatFile renders a single-line description and the body as a multi-line prompt string.
func (g *Gemini) FormatFile(content CommandContent) string {
	var b strings.Builder
	b.WriteString("description = ")
	b.WriteString(tomlBasicString(strings.Join(strings.Fields(content.Description), " ")))
	b.WriteString("\n\nprompt = \"\"\"\n")
	b.WriteString(tomlMultilineBody(strings.TrimRight(content.Body, "\n")))
	b.WriteString("\n\"\"\"\n")
	return b.String()
}

// ParseFile decodes the TOML document and returns the prompt.
func (g *Gemini) ParseFile(data []byte) (string, error) {
	var f geminiCommandFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return "", fmt.Errorf("parsing gemini command: %w", err)
	}
	if strings.TrimSpace(f.Prompt) == "" {
		return "", errors.New("gemini command has no prompt")
	}
	return f.Prompt, nil
}

// tomlBasicString quotes s as a TOML basic string.
func tomlBasicString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\t':
			b.WriteString(`\t`)
		default:
			writeTOMLRune(&b, r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// tomlMultilineBody escapes s for use between """ delimiters. Newlines and tabs stay
// literal; a run of three quotes is broken so it cannot close the string early.
func tomlMultilineBody(s string) string {
	var b strings.Builder
	quotes := 0
	for _, r := range s {
		if r == '"' {
			quotes++
			if quotes == 3 {
				b.WriteString(`\"`)
				quotes = 0
				continue
			}
			b.WriteRune(r)
			continue
		}
		quotes = 0
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n', '\t':
			b.WriteRune(r)
		default:
			writeTOMLRune(&b, r)
		}
	}
	return b.String()
}

// writeTOMLRune writes r, escaping control characters TOML does not allow raw.
func writeTOMLRune(b *strings.Builder, r rune) {
	if r < 0x20 || r == 0x7f {
		fmt.Fprintf(b, `\u%04X`, r)
		return
	}
	b.WriteRune(r)
}

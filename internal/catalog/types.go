// Package catalog provides the canonical skill and command templates.
// Templates are embedded markdown files whose frontmatter declares the version;
// the catalog is loaded once per process and is read-only afterwards.
package catalog

// Options carries the per-run inputs that shape generated bodies.
type Options struct {
	// LanguageInstruction is appended to every body when non-empty.
	LanguageInstruction string
}

// SkillTemplateEntry is one canonical skill.
type SkillTemplateEntry struct {
	ID string // Template file name without extension (e.g., "explore")
	// DirName is the skill directory written under each tool's skills dir.
	DirName     string
	Description string
	Version     string
	// Template produces the skill body.
	Template func(Options) string
}

// CommandTemplateEntry is one canonical command.
type CommandTemplateEntry struct {
	ID          string
	Name        string
	Description string
	Category    string
	Tags        []string
	Version     string
	Template    func(Options) string
}

// skillFrontmatter is the header of an embedded skill template.
type skillFrontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
}

// commandFrontmatter is the header of an embedded command template.
type commandFrontmatter struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
	Version     string   `yaml:"version"`
}

// generatedSkillFrontmatter controls field order of a generated SKILL.md header.
type generatedSkillFrontmatter struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description"`
	Metadata    generatedSkillMetadata `yaml:"metadata"`
}

type generatedSkillMetadata struct {
	Author      string `yaml:"author"`
	GeneratedBy string `yaml:"generatedBy"`
}

package catalog

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/ariel-frischer/agentsync/internal/adapters"
	"github.com/ariel-frischer/agentsync/internal/frontmatter"
	"github.com/ariel-frischer/agentsync/internal/marker"
	"gopkg.in/yaml.v3"
)

// skillAuthor is recorded in the metadata block of generated SKILL.md files.
const skillAuthor = "agentsync"

var (
	identRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Catalog is an immutable set of skill and command templates.
type Catalog struct {
	skills   []SkillTemplateEntry
	commands []CommandTemplateEntry
}

// Default returns the catalog built from the embedded templates.
// It is loaded on first use and shared for the rest of the process.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		skills, commands, err := loadFS(templateFS)
		if err != nil {
			defaultErr = err
			return
		}
		defaultCatalog, defaultErr = New(skills, commands)
	})
	return defaultCatalog, defaultErr
}

// New validates the entries and returns a catalog owning copies of them.
func New(skills []SkillTemplateEntry, commands []CommandTemplateEntry) (*Catalog, error) {
	seen := make(map[string]bool)
	for _, s := range skills {
		if err := validateEntry("skill", s.ID, s.Version, s.Template); err != nil {
			return nil, err
		}
		if !identRe.MatchString(s.DirName) {
			return nil, fmt.Errorf("skill %q: invalid directory name %q", s.ID, s.DirName)
		}
		if seen["skill:"+s.ID] {
			return nil, fmt.Errorf("duplicate skill %q", s.ID)
		}
		seen["skill:"+s.ID] = true
	}
	for _, c := range commands {
		if err := validateEntry("command", c.ID, c.Version, c.Template); err != nil {
			return nil, err
		}
		for _, tag := range c.Tags {
			if !identRe.MatchString(tag) {
				return nil, fmt.Errorf("command %q: invalid tag %q", c.ID, tag)
			}
		}
		if seen["command:"+c.ID] {
			return nil, fmt.Errorf("duplicate command %q", c.ID)
		}
		seen["command:"+c.ID] = true
	}

	c := &Catalog{
		skills:   slices.Clone(skills),
		commands: make([]CommandTemplateEntry, len(commands)),
	}
	for i, cmd := range commands {
		cmd.Tags = slices.Clone(cmd.Tags)
		c.commands[i] = cmd
	}
	return c, nil
}

func validateEntry(kind, id, version string, tmpl func(Options) string) error {
	if !identRe.MatchString(id) {
		return fmt.Errorf("%s: invalid id %q", kind, id)
	}
	if _, err := marker.Parse(version); err != nil {
		return fmt.Errorf("%s %q: invalid version %q: %w", kind, id, version, err)
	}
	if tmpl == nil {
		return fmt.Errorf("%s %q: missing template", kind, id)
	}
	return nil
}

// SkillTemplates returns the skill entries in ID order.
func (c *Catalog) SkillTemplates() []SkillTemplateEntry {
	return slices.Clone(c.skills)
}

// CommandTemplates returns the command entries in ID order.
func (c *Catalog) CommandTemplates() []CommandTemplateEntry {
	out := make([]CommandTemplateEntry, len(c.commands))
	for i, cmd := range c.commands {
		cmd.Tags = slices.Clone(cmd.Tags)
		out[i] = cmd
	}
	return out
}

// LookupSkill finds a skill by ID.
func (c *Catalog) LookupSkill(id string) (SkillTemplateEntry, bool) {
	for _, s := range c.skills {
		if s.ID == id {
			return s, true
		}
	}
	return SkillTemplateEntry{}, false
}

// LookupCommand finds a command by ID.
func (c *Catalog) LookupCommand(id string) (CommandTemplateEntry, bool) {
	for _, cmd := range c.commands {
		if cmd.ID == id {
			cmd.Tags = slices.Clone(cmd.Tags)
			return cmd, true
		}
	}
	return CommandTemplateEntry{}, false
}

// CommandContents renders every command into adapter input.
func (c *Catalog) CommandContents(opts Options) []adapters.CommandContent {
	out := make([]adapters.CommandContent, 0, len(c.commands))
	for _, cmd := range c.CommandTemplates() {
		out = append(out, CommandContent(cmd, opts))
	}
	return out
}

// CommandContent renders one command with the version marker embedded in its body.
func CommandContent(entry CommandTemplateEntry, opts Options) adapters.CommandContent {
	return adapters.CommandContent{
		ID:          entry.ID,
		Name:        entry.Name,
		Description: entry.Description,
		Category:    entry.Category,
		Tags:        slices.Clone(entry.Tags),
		Body:        marker.Embed(entry.Template(opts), entry.Version),
	}
}

// GenerateSkillContent renders the complete SKILL.md text for entry.
// The header records the version in metadata.generatedBy and the body carries the marker.
func GenerateSkillContent(entry SkillTemplateEntry, opts Options) string {
	fm := generatedSkillFrontmatter{
		Name:        entry.DirName,
		Description: strings.Join(strings.Fields(entry.Description), " "),
		Metadata: generatedSkillMetadata{
			Author:      skillAuthor,
			GeneratedBy: entry.Version,
		},
	}
	header, err := yaml.Marshal(fm)
	if err != nil {
		// Only plain strings are marshaled; this cannot fail.
		panic(fmt.Sprintf("marshaling skill frontmatter: %v", err))
	}
	return frontmatter.Compose(string(header), marker.Embed(entry.Template(opts), entry.Version))
}

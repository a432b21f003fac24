package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/ariel-frischer/agentsync/internal/frontmatter"
)

// templateFS embeds every skill and command template.
//
//go:embed skills/*.md commands/*.md
var templateFS embed.FS

// loadFS reads skill and command templates from fsys.
func loadFS(fsys fs.FS) ([]SkillTemplateEntry, []CommandTemplateEntry, error) {
	skillFiles, err := templateNames(fsys, "skills")
	if err != nil {
		return nil, nil, err
	}
	commandFiles, err := templateNames(fsys, "commands")
	if err != nil {
		return nil, nil, err
	}

	skills := make([]SkillTemplateEntry, 0, len(skillFiles))
	for _, name := range skillFiles {
		data, err := fs.ReadFile(fsys, path.Join("skills", name+".md"))
		if err != nil {
			return nil, nil, fmt.Errorf("reading skill template %s: %w", name, err)
		}
		var fm skillFrontmatter
		body, err := frontmatter.Decode(data, &fm)
		if err != nil {
			return nil, nil, fmt.Errorf("skill template %s: %w", name, err)
		}
		skills = append(skills, SkillTemplateEntry{
			ID:          name,
			DirName:     fm.Name,
			Description: fm.Description,
			Version:     fm.Version,
			Template:    StaticTemplate(body),
		})
	}

	commands := make([]CommandTemplateEntry, 0, len(commandFiles))
	for _, name := range commandFiles {
		data, err := fs.ReadFile(fsys, path.Join("commands", name+".md"))
		if err != nil {
			return nil, nil, fmt.Errorf("reading command template %s: %w", name, err)
		}
		var fm commandFrontmatter
		body, err := frontmatter.Decode(data, &fm)
		if err != nil {
			return nil, nil, fmt.Errorf("command template %s: %w", name, err)
		}
		commands = append(commands, CommandTemplateEntry{
			ID:          name,
			Name:        fm.Name,
			Description: fm.Description,
			Category:    fm.Category,
			Tags:        fm.Tags,
			Version:     fm.Version,
			Template:    StaticTemplate(body),
		})
	}

	return skills, commands, nil
}

// templateNames lists the .md files in dir without their extension, sorted.
func templateNames(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s templates: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(names)
	return names, nil
}

// StaticTemplate returns a template function for a fixed body.
// The language instruction, when set, is appended as a final paragraph.
func StaticTemplate(body string) func(Options) string {
	body = strings.TrimSpace(body)
	return func(opts Options) string {
		if opts.LanguageInstruction == "" {
			return body + "\n"
		}
		return body + "\n\n" + strings.TrimSpace(opts.LanguageInstruction) + "\n"
	}
}

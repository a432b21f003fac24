package config

// DefaultMaxParallel bounds concurrent per-tool detection and generation.
const DefaultMaxParallel = 4

// GetDefaults returns the default configuration values keyed by koanf path.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"tools":        []string{},
		"language":     "",
		"max_parallel": DefaultMaxParallel,
	}
}

// GetDefaultConfigTemplate returns a commented config file written by `agentsync config init`.
func GetDefaultConfigTemplate() string {
	return `# agentsync configuration
# Environment variables (AGENTSYNC_TOOLS, AGENTSYNC_LANGUAGE, AGENTSYNC_MAX_PARALLEL)
# override values in this file.

tools: []                             # Restrict syncing to these tool ids (empty = all): claude | crush | gemini | opencode
language: ""                          # Language generated prompts ask the assistant to answer in (empty = unchanged)
max_parallel: 4                       # Tools detected/generated concurrently (1-32)
`
}

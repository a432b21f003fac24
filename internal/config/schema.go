package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeInt ConfigValueType = iota
	TypeString
	TypeList
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeList:
		return "list"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type.
type ConfigKeySchema struct {
	Path        string          // Key as written in config.yml
	Type        ConfigValueType // Expected value type for validation
	Description string          // Human-readable description for help text
	Default     interface{}     // Default value
	apply       func(cfg *GlobalConfig, v ParsedValue)
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"tools": {
		Path:        "tools",
		Type:        TypeList,
		Description: "Comma-separated tool ids to manage (empty = all registered tools)",
		Default:     []string{},
		apply:       func(cfg *GlobalConfig, v ParsedValue) { cfg.Tools = v.Parsed.([]string) },
	},
	"language": {
		Path:        "language",
		Type:        TypeString,
		Description: "Language generated prompts ask the assistant to respond in",
		Default:     "",
		apply:       func(cfg *GlobalConfig, v ParsedValue) { cfg.Language = v.Parsed.(string) },
	},
	"max_parallel": {
		Path:        "max_parallel",
		Type:        TypeInt,
		Description: "Number of tools detected or generated concurrently (1-32)",
		Default:     DefaultMaxParallel,
		apply:       func(cfg *GlobalConfig, v ParsedValue) { cfg.MaxParallel = v.Parsed.(int) },
	},
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// KeyNames returns the known keys in sorted order.
func KeyNames() []string {
	names := make([]string, 0, len(KnownKeys))
	for name := range KnownKeys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// ParsedValue represents a configuration value after type conversion.
type ParsedValue struct {
	Raw    string      // Original string input from user
	Parsed interface{} // Value converted to correct type
	Type   ConfigValueType
}

// ValidateValue validates a value against the schema for a given key.
// Returns the parsed value or an error with details about what's wrong.
func ValidateValue(key, value string) (ParsedValue, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return ParsedValue{}, err
	}
	switch schema.Type {
	case TypeInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return ParsedValue{}, fmt.Errorf("invalid integer: %q", value)
		}
		return ParsedValue{Raw: value, Parsed: n, Type: TypeInt}, nil
	case TypeList:
		return ParsedValue{Raw: value, Parsed: normalizeTools([]string{value}), Type: TypeList}, nil
	case TypeString:
		return ParsedValue{Raw: value, Parsed: strings.TrimSpace(value), Type: TypeString}, nil
	default:
		return ParsedValue{}, fmt.Errorf("unsupported type: %v", schema.Type)
	}
}

// SetValue parses value for key and stores it on a copy of cfg.
// The copy is validated before it is returned; cfg is never modified.
func SetValue(cfg *GlobalConfig, key, value string) (*GlobalConfig, error) {
	parsed, err := ValidateValue(key, value)
	if err != nil {
		return nil, err
	}
	schema := KnownKeys[key]

	updated := cfg.Clone()
	schema.apply(updated, parsed)
	if err := ValidateConfigValues(updated, key); err != nil {
		return nil, err
	}
	return updated, nil
}

package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema for the hook configuration
// document, mirroring the shape of the embedded schema so the two can be
// diffed. 'extensions' stays a free-form object.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// The document format is closed; unknown keys are a schema error.
		AllowAdditionalProperties: false,
		// Expand struct references instead of using $ref for a flat schema.
		ExpandedStruct: true,
		// Use YAML field names for property names
		FieldNameTag: "yaml",
	}

	type BaseConfig struct {
		CI          CIConfig               `yaml:"ci,omitempty" jsonschema:"description=CI maintenance policy"`
		Files       string                 `yaml:"files,omitempty" jsonschema:"description=Top-level file filter applied to every hook without an override"`
		Exclude     string                 `yaml:"exclude,omitempty" jsonschema:"description=Top-level exclusion filter applied to every hook"`
		IgnoreGlobs []string               `yaml:"ignore_globs,omitempty" jsonschema:"description=Gitignore-style patterns removed during file discovery"`
		Repos       []RepoConfig           `yaml:"repos" jsonschema:"required,description=Ordered repository sources"`
		Extensions  map[string]interface{} `yaml:"extensions,omitempty" jsonschema:"description=Free-form sections owned by tools layered on the runner"`
	}

	schema := r.Reflect(&BaseConfig{})
	schema.Title = "Grove Hooks Configuration"
	schema.Description = "Schema for .hooks.yml documents."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}

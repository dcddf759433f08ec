package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ValidateYAML validates a raw YAML document against the embedded schema.
// This is the path the `validate` command uses: the document is checked
// before the typed loader ever sees it.
func (v *Validator) ValidateYAML(data []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	return v.Validate(doc)
}

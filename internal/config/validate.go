package config

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
})

// ValidateDocument parses a YAML or JSON config document and validates it
// against the JSON schema. An empty document is valid.
func ValidateDocument(data []byte) error {
	var settings map[string]any
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if settings == nil {
		return nil
	}
	return ValidateSettings(settings)
}

// ValidateSettings validates raw config settings against the JSON schema.
func ValidateSettings(settings map[string]any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("load config schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(settings))
	if err != nil {
		return fmt.Errorf("validate config schema: %w", err)
	}
	if result.Valid() {
		return nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, schemaErr := range result.Errors() {
		errs = append(errs, schemaErr.String())
	}
	sort.Strings(errs)

	return fmt.Errorf("config schema validation failed: %s", strings.Join(errs, "; "))
}

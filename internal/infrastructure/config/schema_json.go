package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
)

// GenerateSchema reflects the configuration types into a JSON schema keyed
// by their TOML names.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{FieldNameTag: "toml"}
	schema := r.Reflect(&Config{})

	schema.ID = "https://github.com/bnema/keymapper/config.schema.json"
	schema.Title = "keymapper configuration"
	schema.Description = "Key maps, trigger windows and executor settings for keymapper"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// GenerateSchemaFile writes the schema next to the config file and returns its path.
func GenerateSchemaFile() (string, error) {
	schemaFile, err := GetSchemaFile()
	if err != nil {
		return "", fmt.Errorf("failed to get schema path: %w", err)
	}

	data, err := GenerateSchema()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(schemaFile, data, filePerm); err != nil {
		return "", fmt.Errorf("failed to write schema file: %w", err)
	}
	return schemaFile, nil
}

package linter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	_ "embed"

	jsValidator "github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is loaded from the working directory when no config path is given.
const DefaultConfigFile = ".cachelint.yaml"

const configSchemaURL = "config.schema.json"

//go:embed config.schema.json
var configSchemaJSON string

var (
	configSchemaOnce sync.Once
	configSchema     *jsValidator.Schema
	configSchemaErr  error
)

func compiledConfigSchema() (*jsValidator.Schema, error) {
	configSchemaOnce.Do(func() {
		doc, err := jsValidator.UnmarshalJSON(strings.NewReader(configSchemaJSON))
		if err != nil {
			configSchemaErr = fmt.Errorf("failed to parse config schema: %w", err)
			return
		}

		c := jsValidator.NewCompiler()
		if err := c.AddResource(configSchemaURL, doc); err != nil {
			configSchemaErr = fmt.Errorf("failed to add config schema: %w", err)
			return
		}
		configSchema, configSchemaErr = c.Compile(configSchemaURL)
	})
	return configSchema, configSchemaErr
}

// LoadConfig loads lint configuration from a YAML reader. Keys absent from the document keep their
// defaults from NewConfig.
func LoadConfig(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := validateConfigDocument(data); err != nil {
		return nil, err
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, ErrInvalidConfig.Wrapf("failed to parse config: %v", err)
	}

	if cfg.OutputFormat == "" {
		cfg.OutputFormat = OutputFormatConsole
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadConfigFromFile loads lint configuration from a YAML file.
func LoadConfigFromFile(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg, err := LoadConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// validateConfigDocument checks the raw YAML document against the embedded JSON schema.
func validateConfigDocument(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return ErrInvalidConfig.Wrapf("failed to parse config: %v", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	buf, err := json.Marshal(raw)
	if err != nil {
		return ErrInvalidConfig.Wrapf("config is not representable as JSON: %v", err)
	}

	inst, err := jsValidator.UnmarshalJSON(bytes.NewReader(buf))
	if err != nil {
		return ErrInvalidConfig.Wrap(err)
	}

	schema, err := compiledConfigSchema()
	if err != nil {
		return err
	}

	if err := schema.Validate(inst); err != nil {
		return ErrInvalidConfig.Wrap(err)
	}

	return nil
}

// Package config holds the generation settings read from a YAML file and
// overridden from the command line.
package config

import (
	"os"

	"github.com/ghodss/yaml"
	"github.com/go-playground/validator/v10"
	"github.com/juju/errors"

	"railsgen/internal/codegen"
)

// Config describes one generation run.
type Config struct {
	InputSpec string `json:"input_spec" validate:"required"`
	OutputDir string `json:"output_dir" validate:"required"`
	Generator string `json:"generator" validate:"required,oneof=rails5"`

	AppName    string `json:"app_name,omitempty"`
	AppVersion string `json:"app_version,omitempty"`

	// ReservedWords replaces the generator's reserved word list when set.
	ReservedWords         []string          `json:"reserved_words,omitempty"`
	ReservedWordsMappings map[string]string `json:"reserved_words_mappings,omitempty"`
	TypeMappings          map[string]string `json:"type_mappings,omitempty"`

	TemplateDir      string            `json:"template_dir,omitempty"`
	SkipEmbeddedSpec bool              `json:"skip_embedded_spec,omitempty"`
	SpecHeaders      map[string]string `json:"spec_headers,omitempty"`
}

// Default returns a configuration with the rails5 generator selected.
func Default() *Config {
	return &Config{Generator: codegen.Rails5().Name}
}

// Load reads the YAML file at path on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "cannot read configuration %s", path)
	}
	return Parse(data)
}

// Parse decodes YAML configuration data on top of Default.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Annotate(err, "cannot decode configuration")
	}
	return cfg, nil
}

// Validate checks required fields and the generator name.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.NewNotValid(err, "invalid configuration")
	}
	return nil
}

// Language returns the generator convention with the configured overrides
// applied.
func (c *Config) Language() (*codegen.Language, error) {
	lang, err := codegen.Lookup(c.Generator)
	if err != nil {
		return nil, err
	}
	c.Apply(lang)
	return lang, nil
}

// Apply merges the configured naming and type overrides into lang.
func (c *Config) Apply(lang *codegen.Language) {
	if len(c.ReservedWords) > 0 {
		lang.ReservedWords = append([]string(nil), c.ReservedWords...)
	}

	mappings := make(map[string]string, len(lang.ReservedWordsMappings)+len(c.ReservedWordsMappings))
	for k, v := range lang.ReservedWordsMappings {
		mappings[k] = v
	}
	for k, v := range c.ReservedWordsMappings {
		mappings[k] = v
	}
	lang.ReservedWordsMappings = mappings

	types := make(map[string]string, len(lang.TypeMapping)+len(c.TypeMappings))
	for k, v := range lang.TypeMapping {
		types[k] = v
	}
	for k, v := range c.TypeMappings {
		types[k] = v
	}
	lang.TypeMapping = types
}

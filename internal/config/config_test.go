package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/juju/errors"
	"github.com/maxatome/go-testdeep/td"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railsgen/internal/codegen"
	"railsgen/internal/config"
	"railsgen/internal/typemap"
)

const sample = `
input_spec: testdata/petstore.yaml
output_dir: out
app_name: Petstore
reserved_words: [params, render]
reserved_words_mappings:
  params: parameters
type_mappings:
  UUID: UUIDString
skip_embedded_spec: true
spec_headers:
  Authorization: Bearer token
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "railsgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	td.Cmp(t, cfg, &config.Config{
		InputSpec:             "testdata/petstore.yaml",
		OutputDir:             "out",
		Generator:             "rails5",
		AppName:               "Petstore",
		ReservedWords:         []string{"params", "render"},
		ReservedWordsMappings: map[string]string{"params": "parameters"},
		TypeMappings:          map[string]string{"UUID": "UUIDString"},
		SkipEmbeddedSpec:      true,
		SpecHeaders:           map[string]string{"Authorization": "Bearer token"},
	})
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := config.Parse([]byte("input_spec: [unterminated"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		ok   bool
	}{
		{"complete", config.Config{InputSpec: "a.yaml", OutputDir: "out", Generator: "rails5"}, true},
		{"no input", config.Config{OutputDir: "out", Generator: "rails5"}, false},
		{"no output", config.Config{InputSpec: "a.yaml", Generator: "rails5"}, false},
		{"unknown generator", config.Config{InputSpec: "a.yaml", OutputDir: "out", Generator: "sinatra"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.IsNotValid(err))
		})
	}
}

func TestLanguage(t *testing.T) {
	cfg := config.Default()
	cfg.ReservedWords = []string{"params"}
	cfg.ReservedWordsMappings = map[string]string{"params": "parameters"}
	cfg.TypeMappings = map[string]string{"UUID": "UUIDString"}

	lang, err := cfg.Language()
	require.NoError(t, err)
	assert.Equal(t, []string{"params"}, lang.ReservedWords)
	assert.Equal(t, "parameters", lang.ReservedWordsMappings["params"])
	assert.Equal(t, "UUIDString", lang.TypeMapping["UUID"])
	assert.Equal(t, "Integer", lang.TypeMapping["long"])

	assert.Equal(t, "String", typemap.Rails5["UUID"], "the shared table is left alone")
	assert.Contains(t, codegen.Rails5().ReservedWords, "class")

	cfg.Generator = "sinatra"
	_, err = cfg.Language()
	assert.True(t, errors.IsNotValid(err))
}

package openapi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"railsgen/internal/openapi"
)

func TestJSONToYAMLNumbers(t *testing.T) {
	out, err := openapi.JSONToYAML([]byte(`{"b":1e21,"a":0.1,"c":10,"d":1.5e-7,"e":2.50}`))
	require.NoError(t, err)

	assert.Equal(t, "b: 1000000000000000000000.0\n"+
		"a: 0.1\n"+
		"c: 10\n"+
		"d: 0.00000015\n"+
		"e: 2.5\n", string(out))
}

func TestJSONToYAMLStructure(t *testing.T) {
	out, err := openapi.JSONToYAML([]byte(`{"s":"true","n":null,"list":[1,"x",false],"obj":{"k":"v"},"empty":{}}`))
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, "true", back["s"], "strings that look like booleans stay strings")
	assert.Nil(t, back["n"])
	assert.Equal(t, []any{1, "x", false}, back["list"])
	assert.Equal(t, map[string]any{"k": "v"}, back["obj"])
	assert.Equal(t, map[string]any{}, back["empty"])
}

func TestJSONToYAMLInvalid(t *testing.T) {
	_, err := openapi.JSONToYAML([]byte(`{"a":`))
	require.Error(t, err)
}

func TestMarshalYAML(t *testing.T) {
	doc := loadPetstore(t)

	out, err := openapi.MarshalYAML(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "openapi: 3.0.3")
	assert.Contains(t, string(out), "minimum: 0.1")

	_, err = openapi.MarshalYAML(nil)
	require.Error(t, err)
}

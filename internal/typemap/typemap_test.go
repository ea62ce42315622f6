package typemap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"railsgen/internal/model"
	"railsgen/internal/typemap"
)

func TestMap(t *testing.T) {
	m := typemap.New(typemap.Rails5, nil)

	assert.Equal(t, "String", m.Map("string"))
	assert.Equal(t, "Integer", m.Map("long"))
	assert.Equal(t, "BigDecimal", m.Map("double"))
	assert.Equal(t, ":boolean", m.Map("boolean"))
	assert.Equal(t, "Array", m.Map("array"))
	assert.Equal(t, "object", m.Map("object"))
	assert.Equal(t, "Geometry", m.Map("Geometry"))
}

func TestOverrides(t *testing.T) {
	m := typemap.New(typemap.Rails5, map[string]string{"UUID": "Uuid", "object": "Hash"})

	assert.Equal(t, "Uuid", m.Map("UUID"))
	assert.Equal(t, "Hash", m.Map("object"))
	assert.Equal(t, "String", typemap.Rails5["UUID"], "base table must not be modified")
}

func TestSchemaType(t *testing.T) {
	m := typemap.New(typemap.Rails5, nil)

	assert.Equal(t, "Integer", m.SchemaType(&model.Schema{Type: "integer", Format: "int64"}))
	assert.Equal(t, "Float", m.SchemaType(&model.Schema{Type: "number"}))
	assert.Equal(t, "BigDecimal", m.SchemaType(&model.Schema{Type: "number", Format: "double"}))
	assert.Equal(t, "DateTime", m.SchemaType(&model.Schema{Type: "string", Format: "date-time"}))
	assert.Equal(t, "String", m.SchemaType(&model.Schema{Type: "string", Format: "uuid"}))
	assert.Equal(t, "Category", m.SchemaType(&model.Schema{Ref: "Category"}))
	assert.Equal(t, "", m.SchemaType(nil))
}

func TestDefaultValue(t *testing.T) {
	m := typemap.New(typemap.Rails5, nil)
	assert.Equal(t, "nil", m.DefaultValue(&model.Schema{Type: "integer"}))
	assert.Equal(t, "nil", m.DefaultValue(nil))
}

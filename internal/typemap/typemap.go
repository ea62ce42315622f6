// Package typemap maps OpenAPI primitive types to Ruby type names.
package typemap

import "railsgen/internal/model"

// NoValue is the literal emitted for every parameter default.
const NoValue = "nil"

// Rails5 is the type table of the rails5 generator.
var Rails5 = map[string]string{
	"string":    "String",
	"char":      "String",
	"int":       "Integer",
	"integer":   "Integer",
	"long":      "Integer",
	"short":     "Integer",
	"float":     "Float",
	"double":    "BigDecimal",
	"number":    "Float",
	"date":      "Date",
	"DateTime":  "DateTime",
	"boolean":   ":boolean",
	"binary":    "String",
	"ByteArray": "String",
	"UUID":      "String",
	"array":     "Array",
}

// Mapper resolves target type names from a fixed table. Unknown types pass
// through unchanged.
type Mapper struct {
	table map[string]string
}

// New returns a mapper over base with overrides applied on top.
func New(base, overrides map[string]string) *Mapper {
	table := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		table[k] = v
	}
	for k, v := range overrides {
		table[k] = v
	}
	return &Mapper{table: table}
}

// Map returns the target type name for a specification type.
func (m *Mapper) Map(specType string) string {
	if t, ok := m.table[specType]; ok {
		return t
	}
	return specType
}

// SchemaType maps a schema to its target type name. A reference maps to the
// referenced schema's name.
func (m *Mapper) SchemaType(s *model.Schema) string {
	if s == nil {
		return ""
	}
	if s.Ref != "" {
		return s.Ref
	}
	return m.Map(SpecType(s.Type, s.Format))
}

// DefaultValue returns the default literal for a schema. Declared defaults
// are not used.
func (m *Mapper) DefaultValue(*model.Schema) string {
	return NoValue
}

// SpecType derives the specification type name from an OpenAPI type and
// format pair.
func SpecType(typ, format string) string {
	switch typ {
	case "integer":
		if format == "int64" {
			return "long"
		}
		return "integer"
	case "number":
		switch format {
		case "float":
			return "float"
		case "double":
			return "double"
		}
		return "number"
	case "string":
		switch format {
		case "date":
			return "date"
		case "date-time":
			return "DateTime"
		case "byte":
			return "ByteArray"
		case "binary":
			return "binary"
		case "uuid":
			return "UUID"
		}
		return "string"
	case "":
		return "object"
	}
	return typ
}

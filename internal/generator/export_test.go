package generator

import "github.com/getkin/kin-openapi/openapi3"

// SetSpecMarshaler replaces the embedded description serializer.
func (g *Generator) SetSpecMarshaler(fn func(*openapi3.T) ([]byte, error)) {
	g.marshalSpec = fn
}

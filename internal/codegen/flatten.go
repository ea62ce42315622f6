package codegen

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"railsgen/internal/model"
)

// FlattenBodyParameters expands the properties of the operation's body
// schema into parameters appended after the declared ones. Properties that
// reference another schema are not expanded, and an unresolved body schema
// leaves the declared parameters alone. A parameter reusing the source name of
// an earlier one is dropped; a different source name that normalizes to a
// taken name gets a numeric suffix.
func (p *Processor) FlattenBodyParameters(op *model.Operation, catalog map[string]*model.Schema) []*model.Parameter {
	params := make([]*model.Parameter, 0, len(op.AllParams))
	seen := map[string]bool{}
	sources := map[string]bool{}

	add := func(prm *model.Parameter) {
		fields := logrus.Fields{
			"operation_id": op.OperationID,
			"parameter":    prm.BaseName,
		}
		if sources[prm.BaseName] {
			p.log.WithFields(fields).Warn("duplicate parameter, skipped")
			return
		}
		if prm.Name == "" {
			prm.Name = fmt.Sprintf("param_%d", len(params)+1)
			p.log.WithFields(fields).WithField("renamed_to", prm.Name).Warn("parameter name has no usable characters, renamed")
		}
		if seen[prm.Name] {
			base := prm.Name
			for n := 1; seen[prm.Name]; n++ {
				prm.Name = fmt.Sprintf("%s_%d", base, n)
			}
			p.log.WithFields(fields).WithField("renamed_to", prm.Name).Warn("parameter name collision, renamed")
		}
		seen[prm.Name] = true
		sources[prm.BaseName] = true
		params = append(params, prm)
	}

	for _, prm := range op.AllParams {
		p.prepareParameter(prm)
		add(prm)
	}

	if body := op.BodyParam; body != nil {
		p.prepareParameter(body)

		if schema := p.resolveSchema(op, body.Schema, catalog); schema != nil {
			for _, prop := range schema.Properties {
				if prop.Schema != nil && prop.Schema.Ref != "" {
					p.log.WithFields(logrus.Fields{
						"operation_id": op.OperationID,
						"property":     prop.Name,
						"ref":          prop.Schema.Ref,
					}).Debug("body property references a schema, not flattened")
					continue
				}
				prm := &model.Parameter{
					BaseName: prop.Name,
					In:       model.ParamInBody,
					Required: schema.IsRequired(prop.Name),
					Schema:   prop.Schema,
				}
				if prop.Schema != nil {
					prm.Description = prop.Schema.Description
				}
				p.prepareParameter(prm)
				add(prm)
			}
		}
	}

	op.AllParams = params
	return params
}

func (p *Processor) resolveSchema(op *model.Operation, s *model.Schema, catalog map[string]*model.Schema) *model.Schema {
	if s == nil {
		return nil
	}
	if s.Ref == "" {
		return s
	}
	resolved, ok := catalog[s.Ref]
	if !ok || resolved == nil {
		p.log.WithFields(logrus.Fields{
			"operation_id": op.OperationID,
			"ref":          s.Ref,
		}).Debug("body schema not found, nothing to flatten")
		return nil
	}
	return resolved
}

func (p *Processor) prepareParameter(prm *model.Parameter) {
	if prm.BaseName == "" {
		prm.BaseName = prm.Name
	}
	prm.Name = p.names.Identifier(prm.BaseName)
	if prm.Schema != nil {
		prm.DataType = p.types.SchemaType(prm.Schema)
	}
	prm.DefaultValue = p.types.DefaultValue(prm.Schema)
}

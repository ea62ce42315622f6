package codegen

import (
	"strings"

	"github.com/sirupsen/logrus"

	"railsgen/internal/model"
	"railsgen/internal/naming"
)

// InjectRouterMetadata gives every operation an id, a tag and a
// router-controller extension. Values already present are kept, so running
// it again changes nothing.
func (p *Processor) InjectRouterMetadata(spec *model.Specification) {
	for _, item := range spec.Paths {
		for _, op := range item.Operations {
			if op.Path == "" {
				op.Path = item.Path
			}
			p.injectOperation(op)
		}
	}
}

func (p *Processor) injectOperation(op *model.Operation) {
	if strings.TrimSpace(op.OperationID) == "" {
		op.OperationID = SynthesizeOperationID(op.Method, op.Path)
		p.log.WithFields(logrus.Fields{
			"method":       op.Method,
			"path":         op.Path,
			"operation_id": op.OperationID,
		}).Debug("operation has no id, generated one")
	}

	if len(op.Tags) == 0 {
		op.Tags = []string{p.lang.DefaultTag}
	}
	tag := p.names.ResourceName(op.Tags[0])

	if op.Extensions == nil {
		op.Extensions = map[string]string{}
	}
	if v, ok := op.Extensions[model.ExtRouterController]; !ok || strings.TrimSpace(v) == "" {
		op.Extensions[model.ExtRouterController] = tag
	}
	op.Controller = op.Extensions[model.ExtRouterController]
}

// SynthesizeOperationID builds an operation id from the method and the path
// words: POST /pet => post_pet, GET /pet/{petId} => get_pet_by_pet_id.
func SynthesizeOperationID(method, path string) string {
	words := []string{strings.ToLower(method)}
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			words = append(words, "by", seg[1:len(seg)-1])
			continue
		}
		words = append(words, seg)
	}
	return naming.Underscore(strings.Join(words, "_"))
}

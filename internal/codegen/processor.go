package codegen

import (
	"fmt"

	"github.com/juju/errors"
	"github.com/sirupsen/logrus"

	"railsgen/internal/model"
	"railsgen/internal/naming"
	"railsgen/internal/typemap"
)

// Processor runs the specification-to-model passes for one language.
type Processor struct {
	lang  *Language
	names *naming.Rules
	types *typemap.Mapper
	log   logrus.FieldLogger
}

// Result is the render-ready model of one specification.
type Result struct {
	Operations  []*model.Operation
	PathGroups  []*model.PathGroup
	Controllers []*model.Controller
}

// NewProcessor builds a processor. A nil logger falls back to the logrus
// standard logger.
func NewProcessor(lang *Language, log logrus.FieldLogger) *Processor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Processor{
		lang:  lang,
		names: naming.NewRules(lang.ReservedWords, lang.ReservedWordsMappings, log),
		types: typemap.New(lang.TypeMapping, nil),
		log:   log,
	}
}

// Names exposes the naming rules, for template helpers.
func (p *Processor) Names() *naming.Rules {
	return p.names
}

// Process injects router metadata, then flattens and normalizes each
// operation, then groups the result by path and by controller.
func (p *Processor) Process(spec *model.Specification) (*Result, error) {
	if spec == nil {
		return nil, errors.NotValidf("nil specification")
	}

	p.InjectRouterMetadata(spec)

	ops := spec.Operations()
	for _, op := range ops {
		p.normalizeOperationID(op)
		p.FlattenBodyParameters(op, spec.Schemas)
		p.NormalizeOperation(op)
	}
	p.uniqueOperationIDs(ops)

	return &Result{
		Operations:  ops,
		PathGroups:  GroupByPath(ops),
		Controllers: p.GroupByController(ops),
	}, nil
}

func (p *Processor) normalizeOperationID(op *model.Operation) {
	raw := op.OperationID
	op.OperationID = p.names.OperationID(raw)
	if op.OperationID != "" {
		return
	}
	op.OperationID = SynthesizeOperationID(op.Method, op.Path)
	p.log.WithFields(logrus.Fields{
		"operation_id": raw,
		"renamed_to":   op.OperationID,
		"path":         op.Path,
	}).Warn("operation id has no usable characters, generated one")
}

func (p *Processor) uniqueOperationIDs(ops []*model.Operation) {
	seen := map[string]int{}
	for _, op := range ops {
		id := op.OperationID
		n, dup := seen[id]
		if !dup {
			seen[id] = 0
			continue
		}
		for {
			n++
			candidate := fmt.Sprintf("%s_%d", id, n)
			if _, taken := seen[candidate]; taken {
				continue
			}
			seen[id] = n
			seen[candidate] = 0
			op.OperationID = candidate
			break
		}
		p.log.WithFields(logrus.Fields{
			"operation_id": id,
			"renamed_to":   op.OperationID,
			"path":         op.Path,
		}).Warn("duplicate operation id, renamed")
	}
}

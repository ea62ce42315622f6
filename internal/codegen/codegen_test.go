package codegen_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"railsgen/internal/codegen"
	"railsgen/internal/model"
)

func newProcessor(t *testing.T) (*codegen.Processor, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return codegen.NewProcessor(codegen.Rails5(), logger), hook
}

func op(method, path, id string, tags ...string) *model.Operation {
	return &model.Operation{Method: method, Path: path, OperationID: id, Tags: tags}
}

func specOf(ops ...*model.Operation) *model.Specification {
	spec := &model.Specification{Schemas: map[string]*model.Schema{}}
	for _, o := range ops {
		item := spec.Lookup(o.Path)
		if item == nil {
			item = &model.PathItem{Path: o.Path}
			spec.Paths = append(spec.Paths, item)
		}
		item.Operations = append(item.Operations, o)
	}
	return spec
}

func stringSchema() *model.Schema {
	return &model.Schema{Type: "string"}
}

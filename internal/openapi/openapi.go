package openapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/juju/errors"

	"railsgen/internal/httpclient"
	"railsgen/internal/model"
	"railsgen/internal/typemap"
)

// Load reads an OpenAPI document from a file or an http(s) URL. Headers are
// only sent for remote documents.
func Load(ctx context.Context, location string, headers map[string]string) (*openapi3.T, error) {
	if strings.TrimSpace(location) == "" {
		return nil, errors.NotValidf("empty spec location")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = true

	var (
		doc *openapi3.T
		err error
	)
	if httpclient.IsRemote(location) {
		u, perr := url.Parse(location)
		if perr != nil {
			return nil, errors.Annotatef(perr, "invalid spec url %s", location)
		}
		data, ferr := httpclient.Fetch(ctx, location, headers)
		if ferr != nil {
			return nil, ferr
		}
		doc, err = loader.LoadFromDataWithPath(data, u)
	} else {
		doc, err = loader.LoadFromFile(location)
	}
	if err != nil {
		return nil, errors.Annotatef(err, "cannot load %s", location)
	}

	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, errors.Annotatef(err, "invalid document %s", location)
	}
	return doc, nil
}

// LoadData parses an in-memory OpenAPI document.
func LoadData(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, errors.Annotate(err, "cannot load document")
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, errors.Annotate(err, "invalid document")
	}
	return doc, nil
}

// Convert builds the generator model from a loaded document. Paths are
// sorted, operations follow a fixed method order, and schema properties are
// sorted by name.
func Convert(doc *openapi3.T) *model.Specification {
	spec := &model.Specification{Schemas: map[string]*model.Schema{}}
	if doc == nil {
		return spec
	}
	if doc.Info != nil {
		spec.Title = doc.Info.Title
		spec.Version = doc.Info.Version
	}

	if doc.Components != nil {
		for name, ref := range doc.Components.Schemas {
			if ref == nil || ref.Value == nil {
				continue
			}
			s := convertSchema(ref.Value)
			s.Name = name
			spec.Schemas[name] = s
		}
	}

	if doc.Paths == nil {
		return spec
	}

	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		pi := &model.PathItem{Path: path}

		addOp := func(method string, op *openapi3.Operation) {
			if op == nil {
				return
			}
			pi.Operations = append(pi.Operations, convertOperation(method, path, item.Parameters, op))
		}

		addOp(http.MethodGet, item.Get)
		addOp(http.MethodPut, item.Put)
		addOp(http.MethodPost, item.Post)
		addOp(http.MethodDelete, item.Delete)
		addOp(http.MethodOptions, item.Options)
		addOp(http.MethodHead, item.Head)
		addOp(http.MethodPatch, item.Patch)
		addOp(http.MethodTrace, item.Trace)

		if len(pi.Operations) > 0 {
			spec.Paths = append(spec.Paths, pi)
		}
	}

	return spec
}

func convertOperation(method, path string, common openapi3.Parameters, op *openapi3.Operation) *model.Operation {
	out := &model.Operation{
		OperationID: strings.TrimSpace(op.OperationID),
		Method:      method,
		Path:        path,
		Summary:     strings.TrimSpace(op.Summary),
		Notes:       strings.TrimSpace(op.Description),
		Tags:        append([]string(nil), op.Tags...),
	}

	for k, v := range op.Extensions {
		if s, ok := v.(string); ok {
			out.SetExtension(k, s)
		}
	}

	// operation level parameters override path level ones
	type key struct{ name, in string }
	index := map[key]int{}
	for _, p := range append(append(openapi3.Parameters{}, common...), op.Parameters...) {
		if p == nil || p.Value == nil {
			continue
		}
		prm := &model.Parameter{
			BaseName:    p.Value.Name,
			In:          model.ParamLocation(p.Value.In),
			Required:    p.Value.Required,
			Description: strings.TrimSpace(p.Value.Description),
			Schema:      convertSchemaRef(p.Value.Schema),
		}
		k := key{p.Value.Name, p.Value.In}
		if i, ok := index[k]; ok {
			out.AllParams[i] = prm
			continue
		}
		index[k] = len(out.AllParams)
		out.AllParams = append(out.AllParams, prm)
	}

	out.BodyParam = extractBody(op)
	out.Responses = extractResponses(op)
	out.Examples = extractExamples(op)
	return out
}

func extractBody(op *openapi3.Operation) *model.Parameter {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	body := op.RequestBody.Value
	mt := preferredMediaType(body.Content)
	if mt == nil || mt.Schema == nil {
		return nil
	}
	return &model.Parameter{
		BaseName:    "body",
		In:          model.ParamInBody,
		Required:    body.Required,
		Description: strings.TrimSpace(body.Description),
		Schema:      convertSchemaRef(mt.Schema),
	}
}

func preferredMediaType(content openapi3.Content) *openapi3.MediaType {
	if len(content) == 0 {
		return nil
	}
	if mt := content.Get(model.JSONMediaType); mt != nil {
		return mt
	}
	types := make([]string, 0, len(content))
	for ct := range content {
		types = append(types, ct)
	}
	sort.Strings(types)
	return content[types[0]]
}

func extractResponses(op *openapi3.Operation) []*model.ResponseEntry {
	if op.Responses == nil {
		return nil
	}
	var out []*model.ResponseEntry
	for code, ref := range op.Responses.Map() {
		entry := &model.ResponseEntry{Code: code}
		if code == "default" {
			entry.Code = model.DefaultResponseCode
		}
		if ref != nil && ref.Value != nil {
			if ref.Value.Description != nil {
				entry.Message = strings.TrimSpace(*ref.Value.Description)
			}
			if mt := preferredMediaType(ref.Value.Content); mt != nil {
				entry.DataType = schemaTypeName(mt.Schema)
			}
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		return responseOrder(out[i].Code) < responseOrder(out[j].Code)
	})
	return out
}

// responseOrder sorts numeric codes ascending, then ranges such as 2XX, then
// the default entry.
func responseOrder(code string) int {
	if code == model.DefaultResponseCode {
		return 10000
	}
	if n, err := strconv.Atoi(code); err == nil {
		return n
	}
	if len(code) == 3 {
		if n, err := strconv.Atoi(code[:1]); err == nil {
			return 1000 + n
		}
	}
	return 9999
}

func extractExamples(op *openapi3.Operation) []*model.Example {
	if op.Responses == nil {
		return nil
	}
	ref := successResponse(op.Responses)
	if ref == nil || ref.Value == nil {
		return nil
	}

	content := ref.Value.Content
	types := make([]string, 0, len(content))
	for ct := range content {
		types = append(types, ct)
	}
	sort.Strings(types)

	var out []*model.Example
	for _, ct := range types {
		mt := content[ct]
		if mt == nil {
			continue
		}
		if mt.Example != nil {
			out = append(out, &model.Example{ContentType: ct, Example: exampleString(mt.Example)})
			continue
		}
		names := make([]string, 0, len(mt.Examples))
		for name := range mt.Examples {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			ex := mt.Examples[name]
			if ex == nil || ex.Value == nil || ex.Value.Value == nil {
				continue
			}
			out = append(out, &model.Example{ContentType: ct, Example: exampleString(ex.Value.Value)})
		}
	}
	return out
}

func successResponse(responses *openapi3.Responses) *openapi3.ResponseRef {
	m := responses.Map()
	codes := make([]string, 0, len(m))
	for code := range m {
		if strings.HasPrefix(code, "2") {
			codes = append(codes, code)
		}
	}
	if len(codes) > 0 {
		sort.Strings(codes)
		return m[codes[0]]
	}
	return m["default"]
}

func exampleString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func schemaTypeName(ref *openapi3.SchemaRef) string {
	s := convertSchemaRef(ref)
	if s == nil {
		return ""
	}
	if s.Ref != "" {
		return s.Ref
	}
	return typemap.SpecType(s.Type, s.Format)
}

func convertSchemaRef(ref *openapi3.SchemaRef) *model.Schema {
	if ref == nil {
		return nil
	}
	if ref.Ref != "" {
		return &model.Schema{Ref: simpleRef(ref.Ref)}
	}
	if ref.Value == nil {
		return nil
	}
	return convertSchema(ref.Value)
}

func convertSchema(s *openapi3.Schema) *model.Schema {
	out := &model.Schema{
		Format:      s.Format,
		Description: strings.TrimSpace(s.Description),
		Required:    append([]string(nil), s.Required...),
		Items:       convertSchemaRef(s.Items),
	}
	if s.Type != nil && len(s.Type.Slice()) > 0 {
		out.Type = s.Type.Slice()[0]
	}

	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out.Properties = append(out.Properties, model.Property{Name: name, Schema: convertSchemaRef(s.Properties[name])})
	}
	return out
}

// simpleRef returns the schema name of a reference such as
// #/components/schemas/Pet.
func simpleRef(ref string) string {
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

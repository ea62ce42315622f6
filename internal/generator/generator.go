// Package generator runs a whole generation: load the API description,
// build the routing model, render the templates and write the files.
package generator

import (
	"context"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/juju/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"railsgen/internal/codegen"
	"railsgen/internal/config"
	"railsgen/internal/model"
	"railsgen/internal/openapi"
	"railsgen/internal/output"
	"railsgen/internal/render"
)

// Generator renders one API description for one language.
type Generator struct {
	cfg       *config.Config
	lang      *codegen.Language
	processor *codegen.Processor
	renderer  *render.Renderer
	writer    *output.Writer
	log       logrus.FieldLogger

	marshalSpec func(*openapi3.T) ([]byte, error)
}

// New validates cfg and prepares the pipeline. Files go to fs, which
// defaults to the OS filesystem.
func New(cfg *config.Config, fs afero.Fs, log logrus.FieldLogger) (*Generator, error) {
	if cfg == nil {
		return nil, errors.NotValidf("nil configuration")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lang, err := cfg.Language()
	if err != nil {
		return nil, err
	}
	writer, err := output.New(fs, cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	processor := codegen.NewProcessor(lang, log)
	renderer, err := render.New(processor.Names(), cfg.TemplateDir)
	if err != nil {
		return nil, err
	}

	return &Generator{
		cfg:       cfg,
		lang:      lang,
		processor: processor,
		renderer:  renderer,
		writer:    writer,
		log:       log,

		marshalSpec: openapi.MarshalYAML,
	}, nil
}

// Run loads the configured input and generates from it.
func (g *Generator) Run(ctx context.Context) ([]string, error) {
	doc, err := openapi.Load(ctx, g.cfg.InputSpec, g.cfg.SpecHeaders)
	if err != nil {
		return nil, err
	}
	return g.Generate(doc)
}

// Generate writes the controllers, the routes file and the embedded
// description for doc, and returns the paths written.
func (g *Generator) Generate(doc *openapi3.T) ([]string, error) {
	if doc == nil {
		return nil, errors.NotValidf("nil specification")
	}

	spec := openapi.Convert(doc)
	res, err := g.processor.Process(spec)
	if err != nil {
		return nil, err
	}

	data := g.baseData(spec)
	var written []string

	for _, c := range res.Controllers {
		data["Controller"] = c
		path, err := g.emit(g.lang.ControllerTemplate, g.lang.ControllerTarget(c.FileName), data)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	delete(data, "Controller")

	data["PathGroups"] = res.PathGroups
	path, err := g.emit(g.lang.Routes.Template, g.lang.Routes.Target(), data)
	if err != nil {
		return written, err
	}
	written = append(written, path)

	if !g.cfg.SkipEmbeddedSpec {
		yml, err := g.marshalSpec(doc)
		if err != nil {
			// The embedded description is optional output.
			g.log.WithError(err).WithField("file", g.lang.EmbeddedSpec.Target()).Error("cannot serialize specification, file skipped")
		} else {
			data["SpecYAML"] = string(yml)
			path, err := g.emit(g.lang.EmbeddedSpec.Template, g.lang.EmbeddedSpec.Target(), data)
			if err != nil {
				return written, err
			}
			written = append(written, path)
		}
	}

	g.log.WithFields(logrus.Fields{
		"generator":   g.lang.Name,
		"operations":  len(res.Operations),
		"controllers": len(res.Controllers),
		"files":       len(written),
	}).Info("generation done")

	return written, nil
}

func (g *Generator) baseData(spec *model.Specification) map[string]any {
	name := g.cfg.AppName
	if strings.TrimSpace(name) == "" {
		name = spec.Title
	}
	version := g.cfg.AppVersion
	if strings.TrimSpace(version) == "" {
		version = spec.Version
	}
	return map[string]any{
		"AppName":    name,
		"AppVersion": version,
	}
}

func (g *Generator) emit(tmpl, rel string, data map[string]any) (string, error) {
	content, err := g.renderer.Render(tmpl, data)
	if err != nil {
		return "", err
	}
	path, err := g.writer.Write(rel, content)
	if err != nil {
		return "", err
	}
	g.log.WithField("file", path).Debug("file written")
	return path, nil
}

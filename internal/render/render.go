// Package render turns the routing model into source files through
// text/template, with the sprig function library and a few naming helpers.
//
// Templates are embedded in the binary. A directory of *.tmpl files can be
// given to override some or all of them by name.
package render

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/juju/errors"

	"railsgen/internal/naming"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer renders named templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates, then the *.tmpl files of overrideDir
// when it is not empty.
func New(names *naming.Rules, overrideDir string) (*Renderer, error) {
	funcMap := sprig.TxtFuncMap()
	funcMap["routePath"] = names.RoutePath
	funcMap["identifier"] = names.Identifier
	funcMap["fileName"] = naming.FileName
	funcMap["camelize"] = naming.Camelize

	tmpl, err := template.New("railsgen").Funcs(funcMap).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, errors.Annotate(err, "cannot parse embedded templates")
	}

	if overrideDir != "" {
		matches, err := filepath.Glob(filepath.Join(overrideDir, "*.tmpl"))
		if err != nil {
			return nil, errors.Annotatef(err, "cannot list templates in %s", overrideDir)
		}
		if len(matches) == 0 {
			return nil, errors.NotFoundf("templates in %s", overrideDir)
		}
		if tmpl, err = tmpl.ParseFS(os.DirFS(overrideDir), "*.tmpl"); err != nil {
			return nil, errors.Annotatef(err, "cannot parse templates in %s", overrideDir)
		}
	}

	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the template called name with data.
func (r *Renderer) Render(name string, data any) (string, error) {
	t := r.tmpl.Lookup(name)
	if t == nil {
		return "", errors.NotFoundf("template %s", name)
	}

	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", errors.Annotatef(err, "cannot render %s", name)
	}
	return sb.String(), nil
}

// Package codegen turns a parsed API specification into the routing model
// consumed by the templates: router metadata injection, body parameter
// flattening, operation cleanup and grouping by path and controller.
package codegen

import (
	"path"

	"github.com/juju/errors"

	"railsgen/internal/typemap"
)

// SupportingFile is an artifact rendered once per run, next to the
// per-controller files.
type SupportingFile struct {
	Template    string
	Folder      string
	Destination string
}

// Target returns the file path relative to the output directory.
func (f SupportingFile) Target() string {
	return path.Join(f.Folder, f.Destination)
}

// Language describes one target framework convention.
type Language struct {
	Name string
	Help string

	OutputFolder     string
	AppFolder        string
	ConfigFolder     string
	ControllerFolder string

	ControllerTemplate string
	ControllerSuffix   string

	Routes       SupportingFile
	EmbeddedSpec SupportingFile

	// DefaultTag is assigned to operations that declare no tag.
	DefaultTag string

	ReservedWords         []string
	ReservedWordsMappings map[string]string
	TypeMapping           map[string]string
}

var rubyReservedWords = []string{
	"__FILE__", "and", "def", "end", "in", "or", "self", "unless", "__LINE__",
	"begin", "defined?", "ensure", "module", "redo", "super", "until", "BEGIN",
	"break", "do", "false", "next", "rescue", "then", "when", "END", "case",
	"else", "for", "nil", "retry", "true", "while", "alias", "class", "elsif",
	"if", "not", "return", "undef", "yield",
}

// Rails5 returns the rails5 server convention.
func Rails5() *Language {
	return &Language{
		Name:             "rails5",
		Help:             "Generates a Rails5 API library.",
		OutputFolder:     path.Join("generated-code", "rails5"),
		AppFolder:        "app",
		ConfigFolder:     "config",
		ControllerFolder: "controllers",

		ControllerTemplate: "controller.rb.tmpl",
		ControllerSuffix:   "_controller.rb",

		Routes:       SupportingFile{Template: "routes.rb.tmpl", Folder: "config", Destination: "api_routes.rb"},
		EmbeddedSpec: SupportingFile{Template: "openapi.yaml.tmpl", Folder: "config", Destination: "openapi.yaml"},

		DefaultTag: "default",

		ReservedWords:         append([]string(nil), rubyReservedWords...),
		ReservedWordsMappings: map[string]string{},
		TypeMapping:           typemap.Rails5,
	}
}

var languages = map[string]func() *Language{
	"rails5": Rails5,
}

// Lookup returns a fresh copy of the language registered under name.
func Lookup(name string) (*Language, error) {
	fn, ok := languages[name]
	if !ok {
		return nil, errors.NotValidf("generator %q", name)
	}
	return fn(), nil
}

// APIPackage is the folder holding controllers, relative to the output
// directory.
func (l *Language) APIPackage() string {
	return path.Join(l.AppFolder, l.ControllerFolder)
}

// ControllerTarget returns the path of the controller file for a file stem.
func (l *Language) ControllerTarget(fileName string) string {
	return path.Join(l.APIPackage(), fileName+l.ControllerSuffix)
}

package model

type ParamLocation string

const (
	ParamInPath   ParamLocation = "path"
	ParamInQuery  ParamLocation = "query"
	ParamInHeader ParamLocation = "header"
	ParamInCookie ParamLocation = "cookie"
	ParamInBody   ParamLocation = "body"
)

// ParamState tells templates whether an operation's parameter list has been
// computed and, if so, whether it holds anything.
type ParamState int

const (
	ParamsPending ParamState = iota
	ParamsPresent
	ParamsNone
)

const (
	// DefaultResponseCode is the sentinel the loader uses for the
	// "default" response entry.
	DefaultResponseCode = "0"

	// ExtRouterController names the controller that handles an operation.
	ExtRouterController = "x-swagger-router-controller"

	// JSONMediaType prefixes every example content type kept for rendering.
	JSONMediaType = "application/json"
)

// Specification is the parsed API definition for one generation run.
type Specification struct {
	Title   string
	Version string

	// Paths are kept in the order the loader produced them; path strings
	// are unique.
	Paths   []*PathItem
	Schemas map[string]*Schema
}

// PathItem holds the operations declared for one URL template, at most one
// per method.
type PathItem struct {
	Path       string
	Operations []*Operation
}

type Operation struct {
	OperationID string
	Method      string
	Path        string
	Summary     string
	Notes       string
	Tags        []string

	// Controller is the router-controller value resolved by the router
	// metadata pass.
	Controller string

	BodyParam  *Parameter
	AllParams  []*Parameter
	ParamState ParamState

	Responses []*ResponseEntry
	Examples  []*Example

	// Extensions is created on first write. Known key: ExtRouterController.
	Extensions map[string]string

	HasMore bool
}

type Parameter struct {
	// Name is the normalized identifier; BaseName is the name as declared.
	Name         string
	BaseName     string
	In           ParamLocation
	Required     bool
	DataType     string
	DefaultValue string
	Description  string

	// Schema is the declared schema; for body parameters it may be a
	// reference into the specification's schema catalog.
	Schema *Schema

	HasMore bool
}

// Property is one named entry of an object schema.
type Property struct {
	Name   string
	Schema *Schema
}

type Schema struct {
	Name   string
	Ref    string
	Type   string
	Format string

	Description string
	Properties  []Property
	Required    []string
	Items       *Schema
}

type ResponseEntry struct {
	Code     string
	Message  string
	DataType string
}

type Example struct {
	ContentType string
	Example     string
}

// PathGroup is the routing view of all operations sharing one path.
type PathGroup struct {
	Path       string
	Operations []*Operation
	HasMore    bool
}

// Controller is the set of operations rendered into one controller file.
type Controller struct {
	Name       string
	ClassName  string
	FileName   string
	Operations []*Operation
}

// Lookup returns the path item registered for path.
func (s *Specification) Lookup(path string) *PathItem {
	for _, p := range s.Paths {
		if p.Path == path {
			return p
		}
	}
	return nil
}

// Operations returns every operation of the specification, path by path.
func (s *Specification) Operations() []*Operation {
	var out []*Operation
	for _, p := range s.Paths {
		out = append(out, p.Operations...)
	}
	return out
}

// HasParams reports whether templates should emit a parameter list.
func (o *Operation) HasParams() bool {
	return o.ParamState == ParamsPresent
}

// SetExtension stores an extension value, creating the mapping if needed.
func (o *Operation) SetExtension(key, value string) {
	if o.Extensions == nil {
		o.Extensions = map[string]string{}
	}
	o.Extensions[key] = value
}

// Extension returns the extension value stored under key.
func (o *Operation) Extension(key string) (string, bool) {
	v, ok := o.Extensions[key]
	return v, ok
}

// IsRequired reports whether the schema lists name as a required property.
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

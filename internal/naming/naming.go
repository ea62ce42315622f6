// Package naming turns names found in API documents into identifiers that are
// safe to emit in generated Ruby code.
package naming

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// DefaultResourceName is used for operations that carry no tag.
const DefaultResourceName = "Default"

var (
	acronymBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	wordBoundary    = regexp.MustCompile(`([a-z\d])([A-Z])`)
	nonWord         = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_]+`)
	underscoreRuns  = regexp.MustCompile(`_{2,}`)
	allUpper        = regexp.MustCompile(`^[A-Z_]*$`)
	leadingDigit    = regexp.MustCompile(`^\p{N}`)
	pathParam       = regexp.MustCompile(`\{([^}]+)\}`)
)

// Rules carries the reserved word table of the target language and the
// aliases configured for some of those words.
type Rules struct {
	reserved map[string]bool
	mappings map[string]string
	log      logrus.FieldLogger
}

// NewRules builds naming rules. Reserved words are matched case-insensitively.
// A nil logger falls back to the logrus standard logger.
func NewRules(reserved []string, mappings map[string]string, log logrus.FieldLogger) *Rules {
	if log == nil {
		log = logrus.StandardLogger()
	}
	r := &Rules{
		reserved: make(map[string]bool, len(reserved)),
		mappings: map[string]string{},
		log:      log,
	}
	for _, w := range reserved {
		r.reserved[strings.ToLower(w)] = true
	}
	for k, v := range mappings {
		r.mappings[k] = v
	}
	return r
}

// IsReserved reports whether name is a reserved word of the target language.
func (r *Rules) IsReserved(name string) bool {
	return r.reserved[strings.ToLower(name)]
}

// Identifier converts a raw name into a lower snake-case variable name
// (petId => pet_id). Reserved words and names starting with a digit are
// escaped.
func (r *Rules) Identifier(raw string) string {
	name := strings.ReplaceAll(raw, "-", "_")

	if allUpper.MatchString(name) {
		name = strings.ToLower(name)
	}

	name = Underscore(name)

	if r.IsReserved(name) || leadingDigit.MatchString(name) {
		name = r.escape(name)
	}
	return name
}

func (r *Rules) escape(name string) string {
	if alias, ok := r.mappings[name]; ok && alias != "" && !r.IsReserved(alias) {
		return alias
	}
	return "_" + name
}

// OperationID converts a raw operation id into a method name. Method names
// cannot be reserved words, so those get a call_ prefix instead of the
// underscore used for variables.
func (r *Rules) OperationID(raw string) string {
	name := Underscore(raw)
	if r.IsReserved(raw) || r.IsReserved(name) || leadingDigit.MatchString(name) {
		renamed := Underscore("call_" + raw)
		r.log.WithFields(logrus.Fields{
			"operation_id": raw,
			"renamed_to":   renamed,
		}).Warn("reserved word cannot be used as method name, renamed")
		return renamed
	}
	return name
}

// ResourceName derives the controller name from a tag.
func (r *Rules) ResourceName(raw string) string {
	name := Camelize(raw)
	if name == "" {
		return DefaultResourceName
	}
	return name
}

// RoutePath rewrites a path template into router syntax: /pet/{petId}
// becomes /pet/:pet_id.
func (r *Rules) RoutePath(path string) string {
	return pathParam.ReplaceAllStringFunc(path, func(m string) string {
		return ":" + r.Identifier(m[1:len(m)-1])
	})
}

// Underscore converts a camel-case or free-form word to lower snake-case.
func Underscore(word string) string {
	w := acronymBoundary.ReplaceAllString(word, "${1}_${2}")
	w = wordBoundary.ReplaceAllString(w, "${1}_${2}")
	w = nonWord.ReplaceAllString(w, "_")
	w = underscoreRuns.ReplaceAllString(w, "_")
	w = strings.TrimRight(w, "_")
	return strings.ToLower(w)
}

// Camelize capitalizes every word of name and joins them (pet_store =>
// PetStore). Letters after the first one of a word keep their case.
func Camelize(name string) string {
	var sb strings.Builder
	for _, word := range strings.FieldsFunc(name, isSeparator) {
		first, size := utf8.DecodeRuneInString(word)
		sb.WriteRune(unicode.ToUpper(first))
		sb.WriteString(word[size:])
	}
	return sb.String()
}

func isSeparator(r rune) bool {
	return !(unicode.IsLetter(r) || unicode.IsDigit(r))
}

// FileName is the file stem used for a controller (PetStore => pet_store).
func FileName(name string) string {
	return Underscore(strings.ReplaceAll(name, "-", "_"))
}

// EscapeUnsafe neutralises Ruby block comment markers.
func EscapeUnsafe(s string) string {
	return strings.NewReplacer("=end", "=_end", "=begin", "=_begin").Replace(s)
}

// SingleLine folds every run of whitespace, line breaks included, into one
// space so text fits in a single Ruby comment line.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// EscapeQuotes removes double quotes so text can sit inside a Ruby string.
func EscapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}

// Package template compiles the Liquid templates embedded in compete.toml.
//
// Templates are compiled once, when the configuration is loaded, so syntax
// errors surface before any contest-facing action runs. A compiled *Template
// is immutable and may be rendered from several goroutines at once.
package template

import (
	"fmt"
	"strings"
	"unicode"

	pkgerrors "compete/pkg/errors"

	"github.com/osteele/liquid"
)

// Option configures a Parser.
type Option func(*liquid.Engine)

// WithKebabCase registers the `kebabcase` filter.
func WithKebabCase() Option {
	return func(e *liquid.Engine) {
		e.RegisterFilter("kebabcase", KebabCase)
	}
}

// Parser compiles template sources with a fixed filter set.
type Parser struct {
	// strict rejects undefined names; render leaves them empty.
	strict *liquid.Engine
	render *liquid.Engine
}

// NewParser creates a parser with the standard Liquid filters plus any
// extensions given in opts. Rendering fails on names missing from the
// bindings; names bound to nil render as empty and are falsy.
func NewParser(opts ...Option) *Parser {
	strict := liquid.NewEngine()
	strict.StrictVariables()
	render := liquid.NewEngine()
	for _, opt := range opts {
		opt(strict)
		opt(render)
	}
	return &Parser{strict: strict, render: render}
}

// Parse compiles src.
func (p *Parser) Parse(src string) (*Template, error) {
	check, err := p.strict.ParseString(src)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, pkgerrors.TemplateCompileFailed,
			"template syntax error in %q", src)
	}
	tpl, err := p.render.ParseString(src)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, pkgerrors.TemplateCompileFailed,
			"template syntax error in %q", src)
	}
	return &Template{source: src, check: check, tpl: tpl}, nil
}

var (
	standard = NewParser()
	extended = NewParser(WithKebabCase())
)

// Compile compiles src with the standard filters.
func Compile(src string) (*Template, error) {
	return standard.Parse(src)
}

// CompileWithKebabCase compiles src with the `kebabcase` filter available.
func CompileWithKebabCase(src string) (*Template, error) {
	return extended.Parse(src)
}

// MustCompile is like Compile but panics on error. Only for sources that
// ship with the binary.
func MustCompile(src string) *Template {
	tpl, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return tpl
}

// Template is a compiled, not-yet-rendered template.
type Template struct {
	source string
	check  *liquid.Template
	tpl    *liquid.Template
}

// Source returns the text the template was compiled from.
func (t *Template) Source() string {
	return t.source
}

// Render renders the template against vars.
//
// The strict pass sees nil values as false so that only missing names fail
// it; false takes the same branches as nil.
func (t *Template) Render(vars map[string]any) (string, error) {
	if _, err := t.check.RenderString(liquid.Bindings(definedOnly(vars))); err != nil {
		return "", pkgerrors.Wrapf(err, pkgerrors.TemplateRenderFailed,
			"could not render %q", t.source)
	}
	out, err := t.tpl.RenderString(liquid.Bindings(vars))
	if err != nil {
		return "", pkgerrors.Wrapf(err, pkgerrors.TemplateRenderFailed,
			"could not render %q", t.source)
	}
	return out, nil
}

func definedOnly(vars map[string]any) map[string]any {
	out := make(map[string]any, len(vars))
	for k, v := range vars {
		switch v := v.(type) {
		case nil:
			out[k] = false
		case map[string]any:
			out[k] = definedOnly(v)
		default:
			out[k] = v
		}
	}
	return out
}

// String implements fmt.Stringer without exposing the compiled form.
func (t *Template) String() string {
	return fmt.Sprintf("Template(%q)", t.source)
}

// KebabCase converts text to kebab-case, e.g. "FooBarBaz" to "foo-bar-baz".
//
// Words break at runs of non-alphanumerics, before an upper-case letter that
// follows a lower-case one, and before the last capital of an acronym
// ("HTTPServer" is "http-server"). Digits keep the case of the letters
// before them and never start a word: "Abc100A" is "abc100-a".
func KebabCase(input any) string {
	if input == nil {
		return ""
	}
	return strings.Join(splitWords(fmt.Sprint(input)), "-")
}

type wordMode int

const (
	modeBoundary wordMode = iota
	modeLower
	modeUpper
)

func splitWords(s string) []string {
	var words []string
	emit := func(rs []rune) {
		words = append(words, strings.ToLower(string(rs)))
	}

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, field := range fields {
		runes := []rune(field)
		start, mode := 0, modeBoundary
		for i, r := range runes {
			if i == len(runes)-1 {
				emit(runes[start:])
				break
			}
			next := runes[i+1]

			nextMode := mode
			if unicode.IsLower(r) {
				nextMode = modeLower
			} else if unicode.IsUpper(r) {
				nextMode = modeUpper
			}

			switch {
			case nextMode == modeLower && unicode.IsUpper(next):
				emit(runes[start : i+1])
				start, mode = i+1, modeBoundary
			case mode == modeUpper && unicode.IsUpper(r) && unicode.IsLower(next):
				emit(runes[start:i])
				start, mode = i, modeBoundary
			default:
				mode = nextMode
			}
		}
	}
	return words
}

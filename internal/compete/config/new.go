package config

import (
	"compete/internal/compete/template"
)

// NewStrategy is how `compete new` creates a package: one of NewNone,
// NewPlatform or NewOjAPI.
type NewStrategy interface {
	isNewStrategy()
}

// NewNone disables package generation.
type NewNone struct{}

// NewPlatform fetches problems through the built-in platform client.
// Tagged `kind = "cargo-compete"`; also the shape of an untagged `[new]`.
type NewPlatform struct {
	Platform Platform
	Path     *template.Template
	Template *ProjectTemplate
}

// NewOjAPI fetches problems through oj-api.
// Tagged `kind = "oj-api"`.
type NewOjAPI struct {
	URL      *template.Template
	Path     *template.Template
	Template *ProjectTemplate
}

func (NewNone) isNewStrategy()     {}
func (NewPlatform) isNewStrategy() {}
func (NewOjAPI) isNewStrategy()    {}

// NewPath returns the template for the directory of a new package, if
// package generation is enabled.
func (c *Config) NewPath() (*template.Template, bool) {
	switch n := c.New.(type) {
	case NewPlatform:
		return n.Path, true
	case NewOjAPI:
		return n.Path, true
	default:
		return nil, false
	}
}

func (c *Config) legacyTemplate() *ProjectTemplate {
	switch n := c.New.(type) {
	case NewPlatform:
		return n.Template
	case NewOjAPI:
		return n.Template
	default:
		return nil
	}
}

var (
	newNoneShape = shape[NewStrategy]{name: "none", decode: func(t *table) (NewStrategy, error) {
		if err := t.expectTag("kind", "none"); err != nil {
			return nil, err
		}
		if err := t.strict(); err != nil {
			return nil, err
		}
		return NewNone{}, nil
	}}
	newPlatformShape = shape[NewStrategy]{name: "cargo-compete", decode: func(t *table) (NewStrategy, error) {
		if err := t.expectTag("kind", "cargo-compete"); err != nil {
			return nil, err
		}
		return decodeNewPlatform(t)
	}}
	newOjAPIShape = shape[NewStrategy]{name: "oj-api", decode: decodeNewOjAPI}
	newLegacyShape = shape[NewStrategy]{name: "cargo-compete (untagged)", decode: decodeNewPlatform}
)

func decodeNew(t *table) (NewStrategy, error) {
	return resolve(t,
		[]shape[NewStrategy]{newNoneShape, newPlatformShape, newOjAPIShape},
		[]shape[NewStrategy]{newLegacyShape},
	)
}

func decodeNewPlatform(t *table) (NewStrategy, error) {
	platform, err := t.requiredStr("platform")
	if err != nil {
		return nil, err
	}
	n := NewPlatform{}
	if n.Platform, err = ParsePlatform(platform); err != nil {
		return nil, t.invalid("platform", err)
	}
	if n.Path, err = t.requiredTemplate("path", template.CompileWithKebabCase); err != nil {
		return nil, err
	}
	if n.Template, err = decodeOptionalProjectTemplate(t); err != nil {
		return nil, err
	}
	if err := t.strict(); err != nil {
		return nil, err
	}
	return n, nil
}

func decodeNewOjAPI(t *table) (NewStrategy, error) {
	if err := t.expectTag("kind", "oj-api"); err != nil {
		return nil, err
	}
	n := NewOjAPI{}
	var err error
	if n.URL, err = t.requiredTemplate("url", template.CompileWithKebabCase); err != nil {
		return nil, err
	}
	if n.Path, err = t.requiredTemplate("path", template.CompileWithKebabCase); err != nil {
		return nil, err
	}
	if n.Template, err = decodeOptionalProjectTemplate(t); err != nil {
		return nil, err
	}
	if err := t.strict(); err != nil {
		return nil, err
	}
	return n, nil
}

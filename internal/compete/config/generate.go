package config

import (
	_ "embed"

	"compete/internal/compete/template"
	pkgerrors "compete/pkg/errors"
)

//go:embed compete.toml.liquid
var scaffold string

// GenerateParams are the inputs of Generate.
type GenerateParams struct {
	// Edition of generated packages.
	Edition Edition
	// DependenciesContent is TOML for `[dependencies]`, if any.
	DependenciesContent string
	// Lockfile is copied to new packages as Cargo.lock, if set.
	Lockfile        string
	Platform        Platform
	TestToolchain   string
	SubmitViaBinary bool
	LanguageID      string
}

// Generate renders a fresh compete.toml.
func Generate(p GenerateParams) (string, error) {
	tpl, err := template.Compile(scaffold)
	if err != nil {
		return "", pkgerrors.Wrapf(err, pkgerrors.GenerateFailed, "could not compile the built-in %s", FileName)
	}
	out, err := tpl.Render(map[string]any{
		"new_platform":                      string(p.Platform),
		"template_new_edition":              string(p.Edition),
		"template_new_dependencies_content": p.DependenciesContent,
		"template_new_lockfile":             p.Lockfile,
		"test_toolchain":                    p.TestToolchain,
		"submit_via_binary":                 p.SubmitViaBinary,
		"rust_language_id":                  p.LanguageID,
	})
	if err != nil {
		return "", pkgerrors.Wrapf(err, pkgerrors.GenerateFailed, "could not render the built-in %s", FileName)
	}
	return out, nil
}

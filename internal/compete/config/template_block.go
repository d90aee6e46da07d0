package config

import (
	"maps"
	"path/filepath"

	"compete/internal/compete/fsys"
	pkgerrors "compete/pkg/errors"
)

// TemplateBlock is the top-level `[template]` block: what a generated
// package starts with.
type TemplateBlock struct {
	Src string
	New *TemplateNew
}

// TemplateNew is `[template.new]`: the parts of a generated Cargo.toml.
type TemplateNew struct {
	Edition         Edition // empty when unset
	Profile         Fragment
	Dependencies    Fragment
	DevDependencies Fragment
	// CopyFiles maps paths relative to compete.toml to paths relative to the
	// new package.
	CopyFiles map[string]string
}

func (b *TemplateBlock) clone() *TemplateBlock {
	out := &TemplateBlock{Src: b.Src}
	if b.New != nil {
		n := *b.New
		n.CopyFiles = maps.Clone(b.New.CopyFiles)
		out.New = &n
	}
	return out
}

func decodeTemplateBlock(t *table) (*TemplateBlock, error) {
	block := &TemplateBlock{}

	var err error
	if block.Src, err = t.requiredStr("src"); err != nil {
		return nil, err
	}
	if sub, ok, err := t.sub("new"); err != nil {
		return nil, err
	} else if ok {
		if block.New, err = decodeTemplateNew(sub); err != nil {
			return nil, err
		}
	}

	t.finish()
	return block, nil
}

func decodeTemplateNew(t *table) (*TemplateNew, error) {
	n := &TemplateNew{}

	var err error
	if n.Edition, err = enumField(t, "edition", ParseEdition, ""); err != nil {
		return nil, err
	}
	if n.Profile, _, err = t.fragment("profile"); err != nil {
		return nil, err
	}
	if n.Dependencies, _, err = t.fragment("dependencies"); err != nil {
		return nil, err
	}
	if n.DevDependencies, _, err = t.fragment("dev-dependencies"); err != nil {
		return nil, err
	}
	copyFiles, ok, err := t.strMap("copy-files")
	if err != nil {
		return nil, err
	}
	if !ok {
		copyFiles = map[string]string{}
	}
	n.CopyFiles = copyFiles

	t.finish()
	return n, nil
}

// ProjectTemplate is the deprecated `new.template` block.
type ProjectTemplate struct {
	// Lockfile is copied to the new package as Cargo.lock, if set.
	Lockfile     string
	Profile      *Fragment
	Dependencies Dependencies
	Src          Source
}

// Dependencies is where `new.template` takes dependencies from:
// DependenciesInline or DependenciesManifestFile.
type Dependencies interface {
	isDependencies()
}

// DependenciesInline is `{ kind = "inline", content = "..." }`.
type DependenciesInline struct {
	Content string
}

// DependenciesManifestFile is `{ kind = "manifest-file", path = "..." }`.
// Only the `[dependencies]` table of that manifest is used.
type DependenciesManifestFile struct {
	Path string
}

func (DependenciesInline) isDependencies()       {}
func (DependenciesManifestFile) isDependencies() {}

// Source is where `new.template` takes the source code from: SourceInline
// or SourceFile.
type Source interface {
	isSource()
}

// SourceInline is `{ kind = "inline", content = "..." }`.
type SourceInline struct {
	Content string
}

// SourceFile is `{ kind = "file", path = "..." }`.
type SourceFile struct {
	Path string
}

func (SourceInline) isSource() {}
func (SourceFile) isSource()   {}

func decodeOptionalProjectTemplate(t *table) (*ProjectTemplate, error) {
	sub, ok, err := t.sub("template")
	if err != nil || !ok {
		return nil, err
	}
	return decodeProjectTemplate(sub)
}

func decodeProjectTemplate(t *table) (*ProjectTemplate, error) {
	pt := &ProjectTemplate{}

	var err error
	if pt.Lockfile, _, err = t.str("lockfile"); err != nil {
		return nil, err
	}
	if profile, ok, err := t.fragment("profile"); err != nil {
		return nil, err
	} else if ok {
		pt.Profile = &profile
	}

	deps, err := t.requiredSub("dependencies")
	if err != nil {
		return nil, err
	}
	if pt.Dependencies, err = resolve(deps, dependenciesShapes, nil); err != nil {
		return nil, err
	}

	src, err := t.requiredSub("src")
	if err != nil {
		return nil, err
	}
	if pt.Src, err = resolve(src, sourceShapes, nil); err != nil {
		return nil, err
	}

	t.finish()
	return pt, nil
}

var dependenciesShapes = []shape[Dependencies]{
	{name: "inline", decode: func(t *table) (Dependencies, error) {
		if err := t.expectTag("kind", "inline"); err != nil {
			return nil, err
		}
		content, err := t.requiredStr("content")
		if err != nil {
			return nil, err
		}
		if err := t.strict(); err != nil {
			return nil, err
		}
		return DependenciesInline{Content: content}, nil
	}},
	{name: "manifest-file", decode: func(t *table) (Dependencies, error) {
		if err := t.expectTag("kind", "manifest-file"); err != nil {
			return nil, err
		}
		path, err := t.requiredStr("path")
		if err != nil {
			return nil, err
		}
		if err := t.strict(); err != nil {
			return nil, err
		}
		return DependenciesManifestFile{Path: path}, nil
	}},
}

var sourceShapes = []shape[Source]{
	{name: "inline", decode: func(t *table) (Source, error) {
		if err := t.expectTag("kind", "inline"); err != nil {
			return nil, err
		}
		content, err := t.requiredStr("content")
		if err != nil {
			return nil, err
		}
		if err := t.strict(); err != nil {
			return nil, err
		}
		return SourceInline{Content: content}, nil
	}},
	{name: "file", decode: func(t *table) (Source, error) {
		if err := t.expectTag("kind", "file"); err != nil {
			return nil, err
		}
		path, err := t.requiredStr("path")
		if err != nil {
			return nil, err
		}
		if err := t.strict(); err != nil {
			return nil, err
		}
		return SourceFile{Path: path}, nil
	}},
}

const legacyTemplateWarning = "`new.template` is deprecated. move it to a top-level `[template]` table"

// Template returns the `[template]` block, translating the deprecated
// `new.template` when only that is present. Relative paths in the old block
// are resolved against the directory of configPath.
func (c *Config) Template(fs fsys.FS, configPath string, sink Warner) (*TemplateBlock, error) {
	if c.template != nil {
		return c.template.clone(), nil
	}

	legacy := c.legacyTemplate()
	if legacy == nil {
		return nil, pkgerrors.Newf(pkgerrors.TemplateMissing,
			"`template` or `new.template` is required: %s", configPath)
	}
	if err := sink.Warn(legacyTemplateWarning); err != nil {
		return nil, err
	}

	dir := filepath.Dir(configPath)
	return BridgeLegacyTemplate(legacy, func(rel string) (string, error) {
		if !filepath.IsAbs(rel) {
			rel = filepath.Join(dir, rel)
		}
		return fsys.ReadToString(fs, rel)
	})
}

// BridgeLegacyTemplate translates a `new.template` block into the current
// `[template]` shape. read loads files the old block refers to.
func BridgeLegacyTemplate(legacy *ProjectTemplate, read func(path string) (string, error)) (*TemplateBlock, error) {
	var src string
	switch s := legacy.Src.(type) {
	case SourceInline:
		src = s.Content
	case SourceFile:
		text, err := read(s.Path)
		if err != nil {
			return nil, err
		}
		src = text
	default:
		return nil, pkgerrors.Newf(pkgerrors.InternalError, "unexpected source %T", legacy.Src)
	}

	profile := Fragment{Table: map[string]any{}}
	if legacy.Profile != nil {
		profile = *legacy.Profile
	}

	var deps Fragment
	switch d := legacy.Dependencies.(type) {
	case DependenciesInline:
		frag, err := ParseFragment(d.Content)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, pkgerrors.InvalidFormat,
				"could not parse the toml value in `new.template.dependencies.content`")
		}
		deps = frag
	case DependenciesManifestFile:
		text, err := read(d.Path)
		if err != nil {
			return nil, err
		}
		manifest, err := ParseFragment(text)
		if err != nil {
			return nil, err
		}
		table := map[string]any{}
		if v, ok := manifest.Table["dependencies"]; ok {
			m, ok := v.(map[string]any)
			if !ok {
				return nil, pkgerrors.Newf(pkgerrors.InvalidFormat, "`dependencies` is not a `Table`")
			}
			table = m
		}
		if deps, err = FragmentFromTable(table); err != nil {
			return nil, err
		}
	default:
		return nil, pkgerrors.Newf(pkgerrors.InternalError, "unexpected dependencies %T", legacy.Dependencies)
	}

	copyFiles := map[string]string{}
	if legacy.Lockfile != "" {
		copyFiles[legacy.Lockfile] = "Cargo.lock"
	}

	return &TemplateBlock{
		Src: src,
		New: &TemplateNew{
			Profile:         profile,
			Dependencies:    deps,
			DevDependencies: Fragment{Table: map[string]any{}},
			CopyFiles:       copyFiles,
		},
	}, nil
}

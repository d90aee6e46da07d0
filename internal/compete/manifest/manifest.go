// Package manifest reads the parts of a package manifest (Cargo.toml) that
// compete cares about: the package name and its
// `[package.metadata.cargo-compete]` table.
package manifest

import (
	"path/filepath"

	"compete/internal/compete/fsys"
	pkgerrors "compete/pkg/errors"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the conventional manifest name.
const FileName = "Cargo.toml"

// Bin describes one `bin` entry of the package metadata.
type Bin struct {
	Alias   string `toml:"alias"`
	Problem string `toml:"problem"`
}

// Metadata is `[package.metadata.cargo-compete]`.
type Metadata struct {
	Config string         `toml:"config"`
	Bin    map[string]Bin `toml:"bin"`
}

// Target is a `[[bin]]` entry.
type Target struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

type document struct {
	Bin     []Target `toml:"bin"`
	Package struct {
		Name     string `toml:"name"`
		Metadata struct {
			CargoCompete *Metadata `toml:"cargo-compete"`
		} `toml:"metadata"`
	} `toml:"package"`
}

// Package is a parsed manifest.
type Package struct {
	Name         string
	ManifestPath string
	Metadata     Metadata
	Targets      []Target
}

// Read parses the manifest at path.
func Read(fs fsys.FS, path string) (*Package, error) {
	text, err := fsys.ReadToString(fs, path)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := toml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, pkgerrors.Wrapf(err, pkgerrors.PackageMetadata, "could not parse `%s`", path)
	}

	pkg := &Package{Name: doc.Package.Name, ManifestPath: path, Targets: doc.Bin}
	if doc.Package.Metadata.CargoCompete != nil {
		pkg.Metadata = *doc.Package.Metadata.CargoCompete
	}
	return pkg, nil
}

// ManifestDir returns the directory containing the manifest.
func (p *Package) ManifestDir() string {
	return filepath.Dir(p.ManifestPath)
}

// ConfigOverride returns the package-declared config path, relative to
// ManifestDir, if any.
func (p *Package) ConfigOverride() (string, bool) {
	if p.Metadata.Config == "" {
		return "", false
	}
	return p.Metadata.Config, true
}

// BinByAlias looks up a bin target name by its alias.
func (p *Package) BinByAlias(alias string) (string, bool) {
	for name, bin := range p.Metadata.Bin {
		if bin.Alias == alias {
			return name, true
		}
	}
	return "", false
}

// TargetPath returns the source path of the bin target name as declared in
// the manifest, resolved against ManifestDir.
func (p *Package) TargetPath(name string) (string, bool) {
	for _, t := range p.Targets {
		if t.Name != name || t.Path == "" {
			continue
		}
		if filepath.IsAbs(t.Path) {
			return t.Path, true
		}
		return filepath.Join(p.ManifestDir(), t.Path), true
	}
	return "", false
}

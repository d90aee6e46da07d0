package config

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"compete/internal/compete/fsys"
	pkgerrors "compete/pkg/errors"
)

// Package is the package-metadata collaborator used by the package-scoped
// lookup.
type Package interface {
	// ManifestDir is the directory holding the package manifest.
	ManifestDir() string
	// ConfigOverride is a config path relative to ManifestDir declared by
	// the package, if any.
	ConfigOverride() (string, bool)
}

// Locate returns the absolute path of the configuration file. An explicit
// path is resolved against cwd and not checked for existence; otherwise cwd
// and its ancestors are searched, closest first.
func Locate(fs fsys.FS, cwd, explicit string) (string, error) {
	cwd, err := absDir(cwd)
	if err != nil {
		return "", err
	}

	var path string
	if explicit != "" {
		path = joinRel(cwd, stripCurDir(explicit))
	} else if path, err = findInAncestors(fs, cwd); err != nil {
		return "", err
	}
	return checkUTF8(path)
}

// LocateForPackage returns the configuration file for pkg: the path the
// package declares, or the closest compete.toml above its manifest.
func LocateForPackage(fs fsys.FS, pkg Package) (string, error) {
	dir, err := absDir(pkg.ManifestDir())
	if err != nil {
		return "", err
	}

	var path string
	if override, ok := pkg.ConfigOverride(); ok {
		path = joinRel(dir, override)
	} else if path, err = findInAncestors(fs, dir); err != nil {
		return "", err
	}
	return checkUTF8(path)
}

func findInAncestors(fs fsys.FS, start string) (string, error) {
	for dir := start; ; {
		candidate := filepath.Join(dir, FileName)
		if fsys.Exists(fs, candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", pkgerrors.Newf(pkgerrors.ConfigNotFound,
		"could not find `%s` in `%s` or any parent directory. first, create one with `compete init`",
		FileName, start).
		WithDetail("start", start)
}

func absDir(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir), nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", pkgerrors.Wrapf(err, pkgerrors.InvalidParams, "could not resolve `%s`", dir)
	}
	return abs, nil
}

func stripCurDir(path string) string {
	if path == "." {
		return ""
	}
	for _, prefix := range []string{"./", "." + string(filepath.Separator)} {
		if rest, ok := strings.CutPrefix(path, prefix); ok {
			return rest
		}
	}
	return path
}

func joinRel(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

func checkUTF8(path string) (string, error) {
	if !utf8.ValidString(path) {
		return "", pkgerrors.Newf(pkgerrors.InvalidEncoding, "non UTF-8 path: %q", path)
	}
	return path, nil
}

package config

import (
	"compete/internal/compete/fsys"
	pkgerrors "compete/pkg/errors"
)

// Load reads and decodes the configuration at path. Keys nothing consumed
// are reported to sink, once each.
func Load(fs fsys.FS, path string, sink Warner) (*Config, error) {
	text, err := fsys.ReadToString(fs, path)
	if err != nil {
		return nil, err
	}

	cfg, unused, err := Decode(text)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, pkgerrors.ConfigParseFailed, "could not read a TOML file at `%s`", path).
			WithDetail("path", path)
	}

	for _, key := range unused {
		if err := sink.Warn("unused key in " + FileName + ": " + key); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadForPackage locates the configuration for pkg and loads it, returning
// the path it was loaded from as well.
func LoadForPackage(fs fsys.FS, pkg Package, sink Warner) (*Config, string, error) {
	path, err := LocateForPackage(fs, pkg)
	if err != nil {
		return nil, "", err
	}
	cfg, err := Load(fs, path, sink)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// Package fsys is the file-system seam used while locating and loading
// configuration. Production code runs on the OS file system; tests swap in
// an in-memory one.
package fsys

import (
	"path/filepath"

	pkgerrors "compete/pkg/errors"

	"github.com/spf13/afero"
)

// FS is the file system compete reads from.
type FS = afero.Fs

// OS returns the real file system.
func OS() FS {
	return afero.NewOsFs()
}

// Memory returns an empty in-memory file system.
func Memory() FS {
	return afero.NewMemMapFs()
}

// ReadToString reads the whole file at path as text.
func ReadToString(fs FS, path string) (string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", pkgerrors.Wrapf(err, pkgerrors.ConfigReadFailed, "could not read `%s`", path).
			WithDetail("path", path)
	}
	return string(data), nil
}

// Exists reports whether path exists. Stat failures other than absence count
// as absent.
func Exists(fs FS, path string) bool {
	ok, err := afero.Exists(fs, path)
	return err == nil && ok
}

// Write writes contents to path, creating parent directories.
func Write(fs FS, path, contents string) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return pkgerrors.Wrapf(err, pkgerrors.InternalError, "could not create the parent directory of `%s`", path)
	}
	if err := afero.WriteFile(fs, path, []byte(contents), 0o644); err != nil {
		return pkgerrors.Wrapf(err, pkgerrors.InternalError, "could not write `%s`", path)
	}
	return nil
}

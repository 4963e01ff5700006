// Package atomicfile replaces files by writing a sibling temporary file and
// renaming it into place.
package atomicfile

import (
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-codec/codec/codecerr"
)

// Mode is the permission of every file written by Write.
const Mode os.FileMode = 0o644

// Write creates a temporary file next to path, lets fill write its contents
// and renames it onto path with permission Mode. If fill or any file
// operation fails, the temporary file is removed and path is left untouched.
// Errors from fill are returned unchanged.
func Write(path string, fill func(f *os.File) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return codecerr.IO("create", path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = fill(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(Mode); err != nil {
		return codecerr.IO("chmod", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return codecerr.IO("close", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return codecerr.IO("rename", path, err)
	}
	return nil
}

package csv

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
)

// File is one output waiting to be written.
type File struct {
	Name string // relative to the output directory
	Data []byte
}

// WriteFileAtomic writes data to path via temp file + rename so readers
// never observe a partially written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return goerr.Wrap(err, "failed to create temp file", goerr.V("dir", dir))
	}
	tmpName := tmp.Name()

	ok := false
	defer func() {
		_ = tmp.Close()
		if !ok {
			_ = os.Remove(tmpName)
		}
	}()

	if err := tmp.Chmod(perm); err != nil {
		return goerr.Wrap(err, "failed to chmod temp file")
	}
	if _, err := tmp.Write(data); err != nil {
		return goerr.Wrap(err, "failed to write temp file")
	}
	if err := tmp.Sync(); err != nil {
		return goerr.Wrap(err, "failed to sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "failed to close temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return goerr.Wrap(err, "failed to move file into place", goerr.V("path", path))
	}
	ok = true
	return nil
}

// WriteAll creates dir and writes every file atomically.
func WriteAll(dir string, files []File) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return goerr.Wrap(err, "failed to create output directory", goerr.V("dir", dir))
	}
	for _, f := range files {
		if err := WriteFileAtomic(filepath.Join(dir, f.Name), f.Data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

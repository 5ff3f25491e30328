package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// tempFile is the part of *os.File the writer needs.
type tempFile interface {
	Name() string
	Write([]byte) (int, error)
	Sync() error
	Close() error
}

// fileOps are the filesystem calls behind writeIfChanged; tests swap them.
type fileOps struct {
	readFile   func(string) ([]byte, error)
	createTemp func(dir, pattern string) (tempFile, error)
	chmod      func(string, os.FileMode) error
	rename     func(oldpath, newpath string) error
	remove     func(string) error
}

var osFileOps = fileOps{
	readFile:   os.ReadFile,
	createTemp: func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) },
	chmod:      os.Chmod,
	rename:     os.Rename,
	remove:     os.Remove,
}

// writeIfChanged replaces path with data unless path already holds exactly
// data, and reports whether it wrote. Leaving an up-to-date file untouched
// keeps its mtime, so watch mode does not trigger rebuilds for no-op saves.
//
// Writes go to a temporary file in the same directory which is synced and
// then renamed over path; readers never observe a partial file.
func (ops fileOps) writeIfChanged(path string, data []byte, perm os.FileMode) (bool, error) {
	current, err := ops.readFile(path)
	switch {
	case err == nil && bytes.Equal(current, data):
		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("read current output: %w", err)
	}

	if err := ops.replace(path, data, perm); err != nil {
		return false, err
	}
	return true, nil
}

func (ops fileOps) replace(path string, data []byte, perm os.FileMode) error {
	tmp, err := ops.createTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}

	err = flush(tmp, data)
	if err == nil {
		err = ops.chmod(tmp.Name(), perm)
	}
	if err == nil {
		err = ops.rename(tmp.Name(), path)
	}
	if err != nil {
		_ = ops.remove(tmp.Name())
	}
	return err
}

// flush writes data, syncs and closes f. f is closed on every path.
func flush(f tempFile, data []byte) error {
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Package filesys provides the small set of file system operations the
// database core needs around its single backing file: ensuring the parent
// directory exists, creating or truncating the file, and checking whether a
// path already has a database in it before Open decides whether to format a
// fresh one.
package filesys

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	ErrIsNotDir = errors.New("path isn't a directory")
)

// CreateDir creates a directory at the specified path with the given permissions.
//
// If the directory already exists:
//   - If 'force' is true, it proceeds without error.
//   - If 'force' is false, it returns an error.
//
// It also returns an error if the existing path is a file (not a directory).
func CreateDir(dirPath string, permission os.FileMode, force bool) error {
	stat, err := os.Stat(dirPath)
	if !force && err == nil {
		return fmt.Errorf("%s already exists", dirPath)
	}
	if !force && !os.IsNotExist(err) {
		return err
	}

	if stat != nil && !stat.IsDir() {
		return ErrIsNotDir
	}

	if err := os.MkdirAll(dirPath, permission); err != nil {
		return err
	}

	return os.Chmod(dirPath, permission)
}

// DeleteDir deletes a directory and all its contents recursively.
func DeleteDir(path string) error {
	return os.RemoveAll(path)
}

// CreateFile creates a new file at the specified `filePath`, creating any
// missing parent directories first.
//
// If the file already exists:
//   - If 'force' is true, it truncates the existing file.
//   - If 'force' is false, it returns an error.
func CreateFile(filePath string, force bool) (*os.File, error) {
	_, err := os.Stat(filePath)
	if !force && err == nil {
		return nil, fmt.Errorf("file already exists at %s, refusing to overwrite", filePath)
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, err
	}

	return os.OpenFile(filePath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
}

// OpenFile opens an existing file at `filePath` for reading and writing
// without truncating it. The caller is responsible for closing the returned
// file.
func OpenFile(filePath string) (*os.File, error) {
	return os.OpenFile(filePath, os.O_RDWR, 0644)
}

// DeleteFile deletes the file at the specified `filePath`.
func DeleteFile(filePath string) error {
	return os.Remove(filePath)
}

// ReadFile reads the entire content of the file at `filePath` into a byte slice.
func ReadFile(filePath string) ([]byte, error) {
	return os.ReadFile(filePath)
}

// WriteFile writes the provided `contents` to the file at `filePath` with the
// given `permission`. If the file does not exist, it will be created. If it
// exists, it will be truncated.
func WriteFile(filePath string, permission os.FileMode, contents []byte) error {
	return os.WriteFile(filePath, contents, permission)
}

// Exists checks if a file or directory at the given `file` path exists.
func Exists(file string) (bool, error) {
	_, err := os.Stat(file)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Size returns the size in bytes of the file at `filePath`.
func Size(filePath string) (int64, error) {
	stat, err := os.Stat(filePath)
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}

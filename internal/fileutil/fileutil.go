// Package fileutil holds the small file helpers shared by config loading
// and export.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

const namePattern = "resumekit-*."

// WriteTempFile stores content in the system temp dir and returns a cleanup
// that removes it.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	path, err = create("", []byte(content), extension, "temp file")
	if err != nil {
		return "", nil, err
	}
	return path, func() { _ = os.Remove(path) }, nil
}

// WriteOutput stores data under a fresh name in dir, or the system temp dir
// when dir is empty. The caller owns the file.
func WriteOutput(dir string, data []byte, extension string) (string, error) {
	return create(dir, data, extension, "output file")
}

// create writes data to a new file and removes it again on any failure.
// what names the file in error messages.
func create(dir string, data []byte, extension, what string) (string, error) {
	if err := ValidateExtension(extension); err != nil {
		return "", err
	}

	f, err := os.CreateTemp(dir, namePattern+extension)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", what, err)
	}

	_, err = f.Write(data)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("closing %s: %w", what, closeErr)
	} else if err != nil {
		err = fmt.Errorf("writing %s: %w", what, err)
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// ValidateExtension rejects extensions that would move a generated name
// out of its directory.
func ValidateExtension(extension string) error {
	switch {
	case extension == "":
		return ErrExtensionEmpty
	case strings.ContainsAny(extension, "/\\\x00"):
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists reports whether path is an existing non-directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsFilePath reports whether s looks like a path rather than a bare name:
// "resumekit" is a name, "./resumekit.yaml" and `C:\cfg\r.yaml` are paths.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

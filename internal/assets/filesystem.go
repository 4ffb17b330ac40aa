package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader serves skins from a user directory laid out like the
// embedded one: styles/{name}.css and templates/{name}.html.
type FilesystemLoader struct {
	root string // absolute, symlinks resolved
}

// NewFilesystemLoader checks that dir is a readable directory.
func NewFilesystemLoader(dir string) (*FilesystemLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	_, err = os.ReadDir(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, root)
	case err != nil && !isDir(root):
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, root)
	case err != nil:
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{root: root}, nil
}

func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	return f.read(stylePart, name)
}

func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	return f.read(markupPart, name)
}

func (f *FilesystemLoader) read(p part, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	target := filepath.Join(f.root, filepath.FromSlash(p.path(name)))
	if err := f.contain(target); err != nil {
		return "", err
	}

	data, err := os.ReadFile(target) // #nosec G304 -- contained in root
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %q", p.notFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(data), nil
}

// contain rejects targets that resolve outside root, which a symlinked skin
// file could otherwise do. Missing files pass and fail later as not found.
func (f *FilesystemLoader) contain(target string) error {
	if resolved, err := filepath.EvalSymlinks(target); err == nil {
		target = resolved
	}
	rel, err := filepath.Rel(f.root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrPathTraversal, filepath.Base(target))
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

var _ AssetLoader = (*FilesystemLoader)(nil)

package assets

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed styles/*.css templates/*.html
var skinFS embed.FS

// EmbeddedLoader serves the skins compiled into the binary.
type EmbeddedLoader struct {
	fsys fs.FS
}

// NewEmbeddedLoader returns a loader over the built-in skins.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{fsys: skinFS}
}

func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return e.read(stylePart, name)
}

func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return e.read(markupPart, name)
}

func (e *EmbeddedLoader) read(p part, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := fs.ReadFile(e.fsys, p.path(name))
	if err != nil {
		return "", fmt.Errorf("%w: %q", p.notFound, name)
	}
	return string(data), nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)

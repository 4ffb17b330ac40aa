package assets

import (
	"fmt"
	"strings"
)

// Built-in skin names, one per layout.
const (
	SkinTech       = "tech"
	SkinClassic    = "classic"
	SkinMinimalist = "minimalist"
)

// AssetLoader reads the two halves of a skin by name. Names carry no
// extension or directory; implementations reject them with
// ErrInvalidAssetName otherwise.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// Skin is a named stylesheet and document template pair.
type Skin struct {
	Name   string
	Style  string // CSS, executed as a Go template
	Markup string // HTML document, executed as a Go template
}

// part locates one half of a skin inside an asset root.
type part struct {
	dir      string
	ext      string
	notFound error
}

var (
	stylePart  = part{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	markupPart = part{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// path returns the slash-separated location of name within a root.
func (p part) path(name string) string {
	return p.dir + "/" + name + p.ext
}

// LoadSkin reads both halves of the named skin from loader. A skin with
// neither half is ErrSkinNotFound; a skin with only one is ErrIncompleteSkin.
func LoadSkin(loader AssetLoader, name string) (*Skin, error) {
	style, styleErr := loader.LoadStyle(name)
	markup, markupErr := loader.LoadTemplate(name)

	styleMissing := isNotFoundError(styleErr)
	markupMissing := isNotFoundError(markupErr)

	switch {
	case styleMissing && markupMissing:
		return nil, fmt.Errorf("%w: %q", ErrSkinNotFound, name)
	case styleErr != nil && !styleMissing:
		return nil, styleErr
	case markupErr != nil && !markupMissing:
		return nil, markupErr
	case styleMissing:
		return nil, fmt.Errorf("%w: %q has no stylesheet", ErrIncompleteSkin, name)
	case markupMissing:
		return nil, fmt.Errorf("%w: %q has no document template", ErrIncompleteSkin, name)
	}
	return &Skin{Name: name, Style: style, Markup: markup}, nil
}

// ValidateAssetName rejects names that are empty or could reach outside the
// skin directories: separators, and dots which would also alter the extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, `/\.`) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

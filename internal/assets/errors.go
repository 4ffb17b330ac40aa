package assets

import "errors"

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrSkinNotFound     = errors.New("skin not found")
	ErrIncompleteSkin   = errors.New("skin missing required file")

	// ErrInvalidAssetName covers empty names, separators and dots.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath is returned for a custom skin directory that is
	// missing, unreadable or not a directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	ErrAssetRead     = errors.New("failed to read asset")
	ErrPathTraversal = errors.New("path traversal detected")
)

func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) ||
		errors.Is(err, ErrTemplateNotFound) ||
		errors.Is(err, ErrSkinNotFound)
}

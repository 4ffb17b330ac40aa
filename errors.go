package resumekit

import (
	"github.com/alnah/go-resumekit/internal/assets"
	"github.com/alnah/go-resumekit/internal/export"
	"github.com/alnah/go-resumekit/internal/templates"
)

// Sentinel errors for library operations.
var (
	ErrExportFailed     = export.ErrExportFailed
	ErrUnknownBackend   = export.ErrUnknownBackend
	ErrBrowserConnect   = export.ErrBrowserConnect
	ErrPageCreate       = export.ErrPageCreate
	ErrPageLoad         = export.ErrPageLoad
	ErrPDFGeneration    = export.ErrPDFGeneration
	ErrInternalRenderer = export.ErrInternalRenderer
	ErrDOCXGeneration   = export.ErrDOCXGeneration
	ErrWriteOutput      = export.ErrWriteOutput

	// Skin errors only occur with custom asset directories.
	ErrSkinLoad    = templates.ErrSkinLoad
	ErrSkinParse   = templates.ErrSkinParse
	ErrSkinExecute = templates.ErrSkinExecute

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound
	ErrInvalidAssetName = assets.ErrInvalidAssetName
	ErrInvalidAssetPath = assets.ErrInvalidBasePath
)

package main

import (
	"errors"
	"os"

	"github.com/alnah/go-resumekit"
	"github.com/alnah/go-resumekit/internal/config"
)

// Exit codes for the resumekit CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitExport  = 4 // Every export backend failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Export errors (exit 4)
	if errors.Is(err, resumekit.ErrExportFailed) ||
		errors.Is(err, resumekit.ErrBrowserConnect) ||
		errors.Is(err, resumekit.ErrPageCreate) ||
		errors.Is(err, resumekit.ErrPageLoad) ||
		errors.Is(err, resumekit.ErrPDFGeneration) ||
		errors.Is(err, resumekit.ErrInternalRenderer) ||
		errors.Is(err, resumekit.ErrDOCXGeneration) {
		return ExitExport
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, resumekit.ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, resumekit.ErrUnknownBackend) ||
		errors.Is(err, resumekit.ErrInvalidAssetPath) ||
		errors.Is(err, resumekit.ErrInvalidAssetName) ||
		errors.Is(err, resumekit.ErrStyleNotFound) ||
		errors.Is(err, resumekit.ErrTemplateNotFound) ||
		errors.Is(err, resumekit.ErrSkinLoad) ||
		errors.Is(err, resumekit.ErrSkinParse) ||
		errors.Is(err, resumekit.ErrSkinExecute) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrTooManyArgs) {
		return ExitUsage
	}

	return ExitGeneral
}

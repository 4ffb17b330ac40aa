package export

import "errors"

// Sentinel errors.
var (
	ErrExportFailed     = errors.New("all export strategies failed")
	ErrUnknownBackend   = errors.New("unknown export backend")
	ErrBrowserConnect   = errors.New("failed to connect to browser")
	ErrPageCreate       = errors.New("failed to create browser page")
	ErrPageLoad         = errors.New("failed to load page")
	ErrPDFGeneration    = errors.New("PDF generation failed")
	ErrInternalRenderer = errors.New("internal renderer error")
	ErrAttemptPanic     = errors.New("export attempt panicked")
	ErrDOCXGeneration   = errors.New("DOCX generation failed")
	ErrWriteOutput      = errors.New("failed to write export output")
)

// errSkipped is returned by attempts whose precondition does not hold.
// Skipped attempts are not failures.
var errSkipped = errors.New("attempt skipped")

package resumekit

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-resumekit/internal/export"
	"github.com/alnah/go-resumekit/internal/templates"
)

// Export types.
type (
	// ExportRequest describes one export.
	ExportRequest = export.Request
	// ExportResult describes an exported file. The caller owns its paths.
	ExportResult = export.Result
	// BrowserConfig configures the headless Chrome backends.
	BrowserConfig = export.BrowserConfig
)

// PDF backend names, in default chain order.
const (
	BackendRod        = export.BackendRod
	BackendChromedp   = export.BackendChromedp
	BackendBasic      = export.BackendBasic
	BackendBasicBytes = export.BackendBasicBytes
	BackendPlainText  = export.BackendPlainText
)

// MIME types of exported files.
const (
	MIMETypePDF  = export.MIMETypePDF
	MIMETypeDOCX = export.MIMETypeDOCX
)

// DefaultTimeout bounds a single browser render.
const DefaultTimeout = export.DefaultTimeout

// DefaultBackends returns the default PDF chain.
func DefaultBackends() []string {
	return export.DefaultBackends()
}

// Exporter renders resumes and writes them as PDF or DOCX files.
// Create with NewExporter and Close when done.
type Exporter struct {
	cfg      exporterConfig
	renderer *templates.Renderer
	inner    *export.Exporter
}

// exporterConfig collects options before the Exporter is assembled.
type exporterConfig struct {
	backends    []string
	browser     BrowserConfig
	logger      zerolog.Logger
	outputDir   string
	debugHTML   bool
	assetPath   string
	assetLoader AssetLoader
}

// Option configures an Exporter.
type Option func(*exporterConfig)

// WithBackends selects the PDF chain by backend name. Unknown names make
// NewExporter fail with ErrUnknownBackend.
func WithBackends(names ...string) Option {
	return func(c *exporterConfig) {
		c.backends = names
	}
}

// WithBrowser configures the browser backends. Empty fields fall back to
// the RESUMEKIT_BROWSER_BIN and RESUMEKIT_NO_SANDBOX environment variables.
func WithBrowser(cfg BrowserConfig) Option {
	return func(c *exporterConfig) {
		c.browser = cfg
	}
}

// WithTimeout bounds each browser render. Panics if d <= 0.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("resumekit: WithTimeout duration must be positive")
	}
	return func(c *exporterConfig) {
		c.browser.Timeout = d
	}
}

// WithLogger sets the logger used for export records. The default discards
// everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *exporterConfig) {
		c.logger = l
	}
}

// WithOutputDir sets where exported files are created. The default is the
// system temp directory.
func WithOutputDir(dir string) Option {
	return func(c *exporterConfig) {
		c.outputDir = dir
	}
}

// WithDebugHTML keeps the rendered markup of each PDF export in a file next
// to it, reported in ExportResult.DebugHTMLPath.
func WithDebugHTML(enabled bool) Option {
	return func(c *exporterConfig) {
		c.debugHTML = enabled
	}
}

// WithAssetPath overrides embedded skins with those found under path.
// Ignored when WithAssetLoader is also given.
func WithAssetPath(path string) Option {
	return func(c *exporterConfig) {
		c.assetPath = path
	}
}

// WithAssetLoader sets a custom skin loader.
func WithAssetLoader(l AssetLoader) Option {
	return func(c *exporterConfig) {
		c.assetLoader = l
	}
}

// NewExporter creates an Exporter. No browser is started until a browser
// backend is actually tried.
func NewExporter(opts ...Option) (*Exporter, error) {
	cfg := exporterConfig{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	loader := cfg.assetLoader
	if loader == nil && cfg.assetPath != "" {
		var err error
		if loader, err = NewAssetLoader(cfg.assetPath); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
	}

	var renderer *templates.Renderer
	if loader != nil {
		renderer = templates.NewRenderer(templates.WithAssetLoader(loader))
	} else {
		renderer = templates.NewRenderer()
	}

	inner, err := export.New(
		export.WithBackends(cfg.backends...),
		export.WithBrowser(cfg.browser),
		export.WithLogger(cfg.logger),
		export.WithRenderer(renderer),
		export.WithOutputDir(cfg.outputDir),
		export.WithDebugHTML(cfg.debugHTML),
	)
	if err != nil {
		return nil, err
	}

	return &Exporter{cfg: cfg, renderer: renderer, inner: inner}, nil
}

// Render produces the HTML document with this Exporter's skins.
func (e *Exporter) Render(ctx context.Context, text string, opts RenderOptions) (string, error) {
	return e.renderer.Render(ctx, text, opts)
}

// ExportPDF writes req as a PDF, trying each backend in order.
func (e *Exporter) ExportPDF(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	return e.inner.PDF(ctx, req)
}

// ExportDOCX writes req as a Word document.
func (e *Exporter) ExportDOCX(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	return e.inner.DOCX(ctx, req)
}

// Backends returns the PDF chain in order.
func (e *Exporter) Backends() []string {
	return e.inner.Attempts()
}

// Close releases browser resources.
func (e *Exporter) Close() error {
	return e.inner.Close()
}

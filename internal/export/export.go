package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/alnah/go-resumekit/internal/contact"
	"github.com/alnah/go-resumekit/internal/fileutil"
	"github.com/alnah/go-resumekit/internal/hints"
	"github.com/alnah/go-resumekit/internal/pipeline"
	"github.com/alnah/go-resumekit/internal/templates"
)

// MIME types of exported files.
const (
	MIMETypePDF  = "application/pdf"
	MIMETypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Backend names, in default chain order.
const (
	BackendRod        = "rod"
	BackendChromedp   = "chromedp"
	BackendBasic      = "markup-basic"
	BackendBasicBytes = "markup-basic-bytes"
	BackendPlainText  = "plain-text"
)

// DefaultTimeout bounds a single browser render.
const DefaultTimeout = 30 * time.Second

// DefaultBackends returns the default PDF chain.
func DefaultBackends() []string {
	return []string{BackendRod, BackendChromedp, BackendBasic, BackendBasicBytes, BackendPlainText}
}

// Request describes one export.
type Request struct {
	Text          string
	Title         string
	TemplateID    string
	Contact       *contact.Info
	Customization *templates.Customization
}

// Result describes an exported file. The caller owns Path and DebugHTMLPath.
type Result struct {
	ID            string `json:"id"`
	Path          string `json:"path"`
	MIMEType      string `json:"mime_type"`
	Filename      string `json:"filename"`
	Strategy      string `json:"strategy,omitempty"`
	DebugHTMLPath string `json:"debug_html_path,omitempty"`
}

// BrowserConfig configures the headless Chrome attempts.
// Empty fields fall back to the RESUMEKIT_* environment.
type BrowserConfig struct {
	Bin       string
	NoSandbox bool
	Timeout   time.Duration
}

func (c BrowserConfig) withEnv() BrowserConfig {
	if c.Bin == "" {
		c.Bin = os.Getenv(hints.EnvBrowserBin)
	}
	if os.Getenv(hints.EnvNoSandbox) == "1" || os.Getenv("CI") == "true" {
		c.NoSandbox = true
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Attempt is one PDF strategy. Render returns the whole document in memory.
type Attempt interface {
	Name() string
	Render(ctx context.Context, job *Job) ([]byte, error)
}

// Job carries one export through the chain. Derived artifacts are computed
// once and shared by every attempt.
type Job struct {
	ID      string
	Request Request

	renderer  *templates.Renderer
	converter pipeline.Converter

	markup     string
	markupErr  error
	markupDone bool

	lines     []string
	linesErr  error
	linesDone bool

	prev error
}

// Markup returns the rendered HTML document, always in one-page mode.
func (j *Job) Markup(ctx context.Context) (string, error) {
	if !j.markupDone {
		j.markup, j.markupErr = j.renderer.Render(ctx, j.Request.Text, templates.Options{
			TemplateID:    j.Request.TemplateID,
			Contact:       j.Request.Contact,
			Customization: j.Request.Customization,
			OnePage:       true,
		})
		j.markupDone = true
	}
	return j.markup, j.markupErr
}

// Lines returns the document as plain "#"-prefixed text lines. Contact label
// lines are dropped, and so is the first heading when it repeats the name.
func (j *Job) Lines(ctx context.Context) ([]string, error) {
	if j.linesDone {
		return j.lines, j.linesErr
	}
	j.linesDone = true

	var kept []string
	for _, line := range strings.Split(j.Request.Text, "\n") {
		if contact.IsLabelLine(line) {
			continue
		}
		kept = append(kept, line)
	}

	fragment, err := j.converter.Fragment(ctx, strings.Join(kept, "\n"))
	if err != nil {
		j.linesErr = err
		return nil, err
	}
	text, err := pipeline.HTMLToText(strings.NewReader(fragment))
	if err != nil {
		j.linesErr = err
		return nil, err
	}

	name := j.Contact().Name
	for _, line := range strings.Split(text, "\n") {
		if name != "" && len(j.lines) == 0 && strings.TrimPrefix(line, "# ") == name {
			continue
		}
		if strings.TrimSpace(line) == "" && len(j.lines) == 0 {
			continue
		}
		j.lines = append(j.lines, line)
	}
	return j.lines, nil
}

// Contact returns the contact details for the request.
func (j *Job) Contact() contact.Info {
	return contact.Extract(j.Request.Text, j.Request.Contact)
}

// Descriptor returns the requested template.
func (j *Job) Descriptor() templates.Descriptor {
	return templates.Lookup(j.Request.TemplateID)
}

// Style returns the one-page style of the requested template.
func (j *Job) Style() templates.Style {
	return templates.ResolveStyle(j.Descriptor(), j.Request.Customization, true)
}

// Previous returns the error of the last failed attempt, nil if none failed.
func (j *Job) Previous() error {
	return j.prev
}

// Exporter runs exports. It is safe for sequential reuse; concurrent callers
// should use one Exporter each.
type Exporter struct {
	attempts  []Attempt
	backends  []string
	browser   BrowserConfig
	renderer  *templates.Renderer
	converter pipeline.Converter
	logger    zerolog.Logger
	outDir    string
	debugHTML bool
	newID     func() string
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithAttempts replaces the PDF chain.
func WithAttempts(attempts ...Attempt) Option {
	return func(e *Exporter) {
		e.attempts = attempts
	}
}

// WithBackends selects the PDF chain by backend name.
func WithBackends(names ...string) Option {
	return func(e *Exporter) {
		if len(names) > 0 {
			e.backends = names
		}
	}
}

// WithBrowser configures the browser attempts.
func WithBrowser(cfg BrowserConfig) Option {
	return func(e *Exporter) {
		e.browser = cfg
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Exporter) {
		e.logger = l
	}
}

// WithRenderer sets the template renderer.
func WithRenderer(r *templates.Renderer) Option {
	return func(e *Exporter) {
		if r != nil {
			e.renderer = r
		}
	}
}

// WithOutputDir sets where exported files are created.
func WithOutputDir(dir string) Option {
	return func(e *Exporter) {
		e.outDir = dir
	}
}

// WithDebugHTML keeps the intermediate markup next to each PDF.
func WithDebugHTML(enabled bool) Option {
	return func(e *Exporter) {
		e.debugHTML = enabled
	}
}

// New creates an Exporter. Browsers are only started when first used.
func New(opts ...Option) (*Exporter, error) {
	e := &Exporter{
		backends:  DefaultBackends(),
		renderer:  templates.NewRenderer(),
		converter: pipeline.NewConverter(),
		logger:    zerolog.Nop(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.browser = e.browser.withEnv()

	if e.attempts == nil {
		attempts, err := buildAttempts(e.backends, e.browser)
		if err != nil {
			return nil, err
		}
		e.attempts = attempts
	}
	return e, nil
}

func buildAttempts(names []string, browser BrowserConfig) ([]Attempt, error) {
	attempts := make([]Attempt, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case BackendRod:
			attempts = append(attempts, newBrowserAttempt(BackendRod, newRodRenderer(browser)))
		case BackendChromedp:
			attempts = append(attempts, newBrowserAttempt(BackendChromedp, newChromedpRenderer(browser)))
		case BackendBasic:
			attempts = append(attempts, &basicAttempt{})
		case BackendBasicBytes:
			attempts = append(attempts, &basicAttempt{lossy: true})
		case BackendPlainText:
			attempts = append(attempts, &plainTextAttempt{})
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
		}
	}
	return attempts, nil
}

// Attempts returns the names of the PDF chain, in order.
func (e *Exporter) Attempts() []string {
	names := make([]string, len(e.attempts))
	for i, a := range e.attempts {
		names[i] = a.Name()
	}
	return names
}

func (e *Exporter) newJob(req Request) *Job {
	return &Job{
		ID:        e.newID(),
		Request:   req,
		renderer:  e.renderer,
		converter: e.converter,
	}
}

// PDF exports req through the attempt chain. The first attempt producing
// output wins; when every attempt fails the error wraps ErrExportFailed and
// each attempt's error.
func (e *Exporter) PDF(ctx context.Context, req Request) (*Result, error) {
	job := e.newJob(req)
	log := e.logger.With().Str("export_id", job.ID).Logger()

	debugPath := e.writeDebugHTML(ctx, job, log)

	var errs []error
	for _, a := range e.attempts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := runAttempt(ctx, a, job)
		if errors.Is(err, errSkipped) {
			log.Debug().Str("attempt", a.Name()).Msg("export attempt skipped")
			continue
		}
		if err != nil {
			log.Warn().Err(err).Str("attempt", a.Name()).Msg("export attempt failed")
			errs = append(errs, fmt.Errorf("%s: %w", a.Name(), err))
			job.prev = err
			continue
		}

		path, err := fileutil.WriteOutput(e.outDir, data, "pdf")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		log.Info().Str("strategy", a.Name()).Str("path", path).Int("bytes", len(data)).Msg("pdf exported")

		return &Result{
			ID:            job.ID,
			Path:          path,
			MIMEType:      MIMETypePDF,
			Filename:      Filename(req.Title, "pdf"),
			Strategy:      a.Name(),
			DebugHTMLPath: debugPath,
		}, nil
	}

	if debugPath != "" {
		_ = os.Remove(debugPath)
	}
	if len(errs) == 0 {
		return nil, ErrExportFailed
	}
	return nil, fmt.Errorf("%w: %w", ErrExportFailed, errors.Join(errs...))
}

func (e *Exporter) writeDebugHTML(ctx context.Context, job *Job, log zerolog.Logger) string {
	if !e.debugHTML {
		return ""
	}
	markup, err := job.Markup(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("debug html skipped")
		return ""
	}
	path, err := fileutil.WriteOutput(e.outDir, []byte(markup), "html")
	if err != nil {
		log.Warn().Err(err).Msg("debug html skipped")
		return ""
	}
	log.Debug().Str("path", path).Msg("debug html written")
	return path
}

// runAttempt turns panics and empty output into attempt failures.
func runAttempt(ctx context.Context, a Attempt, job *Job) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("%w: %v", ErrAttemptPanic, r)
		}
	}()

	data, err = a.Render(ctx, job)
	if err == nil && len(data) == 0 {
		err = fmt.Errorf("%w: empty output", ErrPDFGeneration)
	}
	return data, err
}

// DOCX exports req as a Word document.
func (e *Exporter) DOCX(ctx context.Context, req Request) (*Result, error) {
	job := e.newJob(req)
	log := e.logger.With().Str("export_id", job.ID).Logger()

	data, err := buildDOCX(ctx, job)
	if err != nil {
		log.Warn().Err(err).Msg("docx export failed")
		return nil, err
	}

	path, err := fileutil.WriteOutput(e.outDir, data, "docx")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	log.Info().Str("path", path).Int("bytes", len(data)).Msg("docx exported")

	return &Result{
		ID:       job.ID,
		Path:     path,
		MIMEType: MIMETypeDOCX,
		Filename: Filename(req.Title, "docx"),
	}, nil
}

// Close releases browser resources held by the chain.
func (e *Exporter) Close() error {
	var errs []error
	for _, a := range e.attempts {
		if c, ok := a.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", a.Name(), err))
			}
		}
	}
	return errors.Join(errs...)
}

// Filename derives a download name from title: spaces become underscores,
// and an empty title gives "resume".
func Filename(title, ext string) string {
	name := strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
	if name == "" {
		name = "resume"
	}
	return name + "." + ext
}

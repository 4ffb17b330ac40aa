package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-resumekit/internal/fileutil"
	"github.com/alnah/go-resumekit/internal/hints"
)

// pdfRenderer prints a local HTML file. It sits behind browserAttempt so the
// attempt can be tested without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string) ([]byte, error)
	Close() error
}

var (
	_ Attempt   = (*browserAttempt)(nil)
	_ io.Closer = (*browserAttempt)(nil)
)

// US Letter. Margins come from the skin's @page rule.
const (
	paperWidthInches  = 8.5
	paperHeightInches = 11
)

// browserAttempt writes the one-page markup to a temp file and has a
// headless browser print it.
type browserAttempt struct {
	name     string
	renderer pdfRenderer
}

func newBrowserAttempt(name string, r pdfRenderer) *browserAttempt {
	return &browserAttempt{name: name, renderer: r}
}

func (a *browserAttempt) Name() string { return a.name }

func (a *browserAttempt) Render(ctx context.Context, job *Job) ([]byte, error) {
	markup, err := job.Markup(ctx)
	if err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile(markup, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return a.renderer.RenderFromFile(ctx, path)
}

func (a *browserAttempt) Close() error {
	return a.renderer.Close()
}

// pageBudget is how long a page may take to load: what is left of ctx, or
// fallback when ctx has no deadline.
func pageBudget(ctx context.Context, fallback time.Duration) (time.Duration, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return fallback, nil
	}
	left := time.Until(deadline)
	if left <= 0 {
		return 0, context.DeadlineExceeded
	}
	return left, nil
}

func connectError(err error) error {
	return fmt.Errorf("%w: %v%s", ErrBrowserConnect, err, hints.ForBrowserConnect())
}

// pageError prefers the caller's cancellation over the browser's report, and
// suggests a longer timeout when the page ran out of time.
func pageError(ctx context.Context, sentinel, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v%s", sentinel, err, hints.ForTimeout())
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}

// printOptions prints letter pages with backgrounds and lets the skin's
// @page size win.
func printOptions() *proto.PagePrintToPDF {
	zero := 0.0
	width, height := paperWidthInches, float64(paperHeightInches)
	return &proto.PagePrintToPDF{
		PaperWidth:        &width,
		PaperHeight:       &height,
		MarginTop:         &zero,
		MarginBottom:      &zero,
		MarginLeft:        &zero,
		MarginRight:       &zero,
		PrintBackground:   true,
		PreferCSSPageSize: true,
	}
}

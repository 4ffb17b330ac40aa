package export

import (
	"context"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

var _ pdfRenderer = (*chromedpRenderer)(nil)

// chromedpRenderer prints with headless Chrome driven by chromedp. It needs
// an installed Chrome; it serves hosts where rod cannot fetch its own.
type chromedpRenderer struct {
	cfg BrowserConfig

	mu            sync.Mutex
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc
}

func newChromedpRenderer(cfg BrowserConfig) *chromedpRenderer {
	return &chromedpRenderer{cfg: cfg}
}

// connect starts the allocator and the browser on first use. Callers hold mu.
func (r *chromedpRenderer) connect() error {
	if r.browserCtx != nil {
		return nil
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.cfg.Bin != "" {
		opts = append(opts, chromedp.ExecPath(r.cfg.Bin))
	}
	if r.cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// An empty Run starts the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return connectError(err)
	}

	r.browserCtx, r.cancelBrowser, r.cancelAlloc = browserCtx, cancelBrowser, cancelAlloc
	return nil
}

// Close stops the browser.
func (r *chromedpRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browserCtx == nil {
		return nil
	}
	err := chromedp.Cancel(r.browserCtx)
	r.cancelBrowser()
	r.cancelAlloc()
	r.browserCtx, r.cancelBrowser, r.cancelAlloc = nil, nil, nil
	return err
}

// RenderFromFile opens a local HTML file in a new tab and prints it to PDF.
func (r *chromedpRenderer) RenderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.connect(); err != nil {
		return nil, err
	}

	timeout, err := pageBudget(ctx, r.cfg.Timeout)
	if err != nil {
		return nil, err
	}

	tabCtx, cancelTab := chromedp.NewContext(r.browserCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, timeout)
	defer cancelTimeout()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	if err := chromedp.Run(tabCtx,
		chromedp.Navigate("file://"+filePath),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return nil, pageError(ctx, ErrPageLoad, err)
	}

	var pdf []byte
	err = chromedp.Run(tabCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdf, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(paperWidthInches).
			WithPaperHeight(paperHeightInches).
			WithMarginTop(0).
			WithMarginBottom(0).
			WithMarginLeft(0).
			WithMarginRight(0).
			WithPreferCSSPageSize(true).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, pageError(ctx, ErrPDFGeneration, err)
	}
	return pdf, nil
}

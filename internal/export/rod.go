package export

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-resumekit/internal/process"
)

var _ pdfRenderer = (*rodRenderer)(nil)

// rodRenderer prints with headless Chrome driven by go-rod. With no binary
// configured, rod fetches its own Chromium on first use.
type rodRenderer struct {
	cfg BrowserConfig

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

func newRodRenderer(cfg BrowserConfig) *rodRenderer {
	return &rodRenderer{cfg: cfg}
}

// connect starts Chrome on first use. Callers hold mu.
func (r *rodRenderer) connect() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New().NoSandbox(r.cfg.NoSandbox)
	if r.cfg.Bin != "" {
		l = l.Bin(r.cfg.Bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		l.Kill()
		return connectError(err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		stopLauncher(l)
		return connectError(err)
	}

	r.launcher, r.browser = l, b
	return nil
}

// Close shuts the browser and kills its process group, so renderer
// children do not outlive the exporter.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if b := r.browser; b != nil {
		r.browser = nil
		err = b.Close()
	}
	if l := r.launcher; l != nil {
		r.launcher = nil
		stopLauncher(l)
	}
	return err
}

func stopLauncher(l *launcher.Launcher) {
	if pid := l.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	l.Kill()
	l.Cleanup()
}

func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.connect(); err != nil {
		return nil, err
	}

	tab, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer tab.Close()

	budget, err := pageBudget(ctx, r.cfg.Timeout)
	if err != nil {
		return nil, err
	}
	if err := tab.Context(ctx).Timeout(budget).WaitLoad(); err != nil {
		return nil, pageError(ctx, ErrPageLoad, err)
	}

	stream, err := tab.Context(ctx).PDF(printOptions())
	if err != nil {
		return nil, pageError(ctx, ErrPDFGeneration, err)
	}
	pdf, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

package export

import (
	"bytes"
	"compress/zlib"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-resumekit/internal/templates"
)

const sampleResume = `# Jane Doe
**Email:** jane@example.com
**Phone:** +1 (555) 123-4567
**Location:** Paris, France

## Summary
Backend engineer.

## Experience
### Acme Corp (2019 - 2023)
- Led a team of **5**
- Cut latency by 40%

## Skills
Go, SQL
`

// fakeAttempt returns canned output and counts calls.
type fakeAttempt struct {
	name   string
	out    []byte
	err    error
	panics bool
	calls  atomic.Int32
	closed bool
}

func (f *fakeAttempt) Name() string { return f.name }

func (f *fakeAttempt) Render(context.Context, *Job) ([]byte, error) {
	f.calls.Add(1)
	if f.panics {
		panic("renderer exploded")
	}
	return f.out, f.err
}

func (f *fakeAttempt) Close() error {
	f.closed = true
	return f.err
}

func newTestExporter(t *testing.T, opts ...Option) *Exporter {
	t.Helper()
	opts = append([]Option{WithOutputDir(t.TempDir())}, opts...)
	e, err := New(opts...)
	require.NoError(t, err)
	e.newID = func() string { return "test-export" }
	return e
}

// ---------------------------------------------------------------------------
// TestNew - Chain construction
// ---------------------------------------------------------------------------

func TestNew_DefaultChain(t *testing.T) {
	t.Parallel()

	e, err := New()
	require.NoError(t, err)

	assert.Equal(t, DefaultBackends(), e.Attempts())
}

func TestNew_Backends(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		names   []string
		want    []string
		wantErr error
	}{
		{"subset", []string{"plain-text", "markup-basic"}, []string{BackendPlainText, BackendBasic}, nil},
		{"case and space insensitive", []string{" Rod "}, []string{BackendRod}, nil},
		{"unknown backend", []string{"weasyprint"}, nil, ErrUnknownBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, err := New(WithBackends(tt.names...))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Attempts())
		})
	}
}

func TestBrowserConfig_Env(t *testing.T) {
	t.Setenv("RESUMEKIT_BROWSER_BIN", "/opt/chrome")
	t.Setenv("RESUMEKIT_NO_SANDBOX", "1")

	cfg := BrowserConfig{}.withEnv()
	assert.Equal(t, "/opt/chrome", cfg.Bin)
	assert.True(t, cfg.NoSandbox)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)

	explicit := BrowserConfig{Bin: "/usr/bin/chromium"}.withEnv()
	assert.Equal(t, "/usr/bin/chromium", explicit.Bin)
}

// ---------------------------------------------------------------------------
// TestPDF - Attempt chain
// ---------------------------------------------------------------------------

func TestPDF_FirstSuccessWins(t *testing.T) {
	t.Parallel()

	failing := &fakeAttempt{name: "first", err: errors.New("no browser")}
	winner := &fakeAttempt{name: "second", out: []byte("%PDF-second")}
	unused := &fakeAttempt{name: "third", out: []byte("%PDF-third")}
	e := newTestExporter(t, WithAttempts(failing, winner, unused))

	res, err := e.PDF(context.Background(), Request{Text: sampleResume, Title: "Jane Doe Resume"})
	require.NoError(t, err)

	assert.Equal(t, "test-export", res.ID)
	assert.Equal(t, "second", res.Strategy)
	assert.Equal(t, MIMETypePDF, res.MIMEType)
	assert.Equal(t, "Jane_Doe_Resume.pdf", res.Filename)
	assert.Empty(t, res.DebugHTMLPath)
	assert.Equal(t, int32(0), unused.calls.Load())

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-second", string(data))
}

func TestPDF_AllAttemptsFail(t *testing.T) {
	t.Parallel()

	errA := errors.New("a broke")
	errB := errors.New("b broke")
	e := newTestExporter(t, WithAttempts(
		&fakeAttempt{name: "a", err: errA},
		&fakeAttempt{name: "b", err: errB},
	))

	res, err := e.PDF(context.Background(), Request{Text: sampleResume})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrExportFailed)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Contains(t, err.Error(), "a: a broke")
	assert.Contains(t, err.Error(), "b: b broke")
}

func TestPDF_EmptyChain(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t, WithAttempts())

	_, err := e.PDF(context.Background(), Request{Text: sampleResume})
	assert.ErrorIs(t, err, ErrExportFailed)
}

func TestPDF_FailureModes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		attempt *fakeAttempt
		wantErr error
	}{
		{"panic", &fakeAttempt{name: "p", panics: true}, ErrAttemptPanic},
		{"empty output", &fakeAttempt{name: "e", out: []byte{}}, ErrPDFGeneration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fallback := &fakeAttempt{name: "fallback", out: []byte("%PDF-ok")}
			e := newTestExporter(t, WithAttempts(tt.attempt, fallback))

			res, err := e.PDF(context.Background(), Request{Text: sampleResume})
			require.NoError(t, err)
			assert.Equal(t, "fallback", res.Strategy)

			_, err = runAttempt(context.Background(), tt.attempt, &Job{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPDF_ContextCancelled(t *testing.T) {
	t.Parallel()

	attempt := &fakeAttempt{name: "never", out: []byte("%PDF")}
	e := newTestExporter(t, WithAttempts(attempt))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.PDF(ctx, Request{Text: sampleResume})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), attempt.calls.Load())
}

func TestPDF_LogsAttempts(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	e := newTestExporter(t, WithLogger(logger), WithAttempts(
		&fakeAttempt{name: "rod", err: ErrBrowserConnect},
		&fakeAttempt{name: "plain-text", out: []byte("%PDF")},
	))

	_, err := e.PDF(context.Background(), Request{Text: sampleResume})
	require.NoError(t, err)

	logs := buf.String()
	assert.Contains(t, logs, `"export_id":"test-export"`)
	assert.Contains(t, logs, `"attempt":"rod"`)
	assert.Contains(t, logs, "export attempt failed")
	assert.Contains(t, logs, `"strategy":"plain-text"`)
}

func TestPDF_DebugHTML(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t, WithDebugHTML(true), WithAttempts(&fakeAttempt{name: "ok", out: []byte("%PDF")}))

	res, err := e.PDF(context.Background(), Request{Text: sampleResume, TemplateID: templates.TechFocused})
	require.NoError(t, err)
	require.NotEmpty(t, res.DebugHTMLPath)

	markup, err := os.ReadFile(res.DebugHTMLPath)
	require.NoError(t, err)
	assert.Contains(t, string(markup), "<!DOCTYPE html>")
	assert.Contains(t, string(markup), "padding: 0.4in", "debug markup is the one-page rendering")
}

// ---------------------------------------------------------------------------
// TestPDF - Pure Go attempts
// ---------------------------------------------------------------------------

func TestPDF_BasicMarkup(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t, WithBackends(BackendBasic, BackendBasicBytes, BackendPlainText))

	res, err := e.PDF(context.Background(), Request{Text: sampleResume, TemplateID: templates.ProfessionalClassic})
	require.NoError(t, err)

	assert.Equal(t, BackendBasic, res.Strategy)
	assertPDFFile(t, res.Path)
}

func TestPDF_BasicBytesAfterEncodingError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := newTestExporter(t,
		WithBackends(BackendBasic, BackendBasicBytes, BackendPlainText),
		WithLogger(zerolog.New(&buf)),
	)

	text := sampleResume + "\n## Languages\n- 日本語 (conversational)\n"
	res, err := e.PDF(context.Background(), Request{Text: text})
	require.NoError(t, err)

	assert.Equal(t, BackendBasicBytes, res.Strategy)
	assert.Contains(t, buf.String(), "internal renderer error")
	assertPDFFile(t, res.Path)
}

func TestPDF_BasicBytesSkippedAfterOtherErrors(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t, WithAttempts(
		&fakeAttempt{name: "rod", err: ErrBrowserConnect},
		&basicAttempt{lossy: true},
		&fakeAttempt{name: "last", out: []byte("%PDF")},
	))

	res, err := e.PDF(context.Background(), Request{Text: sampleResume})
	require.NoError(t, err)
	assert.Equal(t, "last", res.Strategy)
}

func TestPDF_PlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
	}{
		{"sample", sampleResume},
		{"no name or contact", "Just some words about Go."},
		{"non latin text", "# 山田太郎\n## 経験\n- Go 開発"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newTestExporter(t, WithBackends(BackendPlainText))

			res, err := e.PDF(context.Background(), Request{Text: tt.text})
			require.NoError(t, err)
			assert.Equal(t, BackendPlainText, res.Strategy)
			assert.Equal(t, "resume.pdf", res.Filename)
			assertPDFFile(t, res.Path)
		})
	}
}

func TestPDF_PlainTextAfterPageStrategiesFail(t *testing.T) {
	t.Parallel()

	rod := &fakeAttempt{name: BackendRod, err: ErrBrowserConnect}
	basic := &fakeAttempt{name: BackendBasic, err: ErrInternalRenderer}
	e := newTestExporter(t, WithAttempts(rod, basic, &plainTextAttempt{}))

	res, err := e.PDF(context.Background(), Request{Text: sampleResume, TemplateID: templates.TechFocused})
	require.NoError(t, err)

	assert.Equal(t, BackendPlainText, res.Strategy)
	assert.Equal(t, int32(1), rod.calls.Load())
	assert.Equal(t, int32(1), basic.calls.Load())
	assertPDFFile(t, res.Path)

	info, err := os.Stat(res.Path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPDF_PlainTextIgnoresCustomization(t *testing.T) {
	t.Parallel()

	render := func(req Request) []string {
		e := newTestExporter(t, WithAttempts(
			&fakeAttempt{name: BackendRod, err: ErrBrowserConnect},
			&plainTextAttempt{},
		))
		res, err := e.PDF(context.Background(), req)
		require.NoError(t, err)
		require.Equal(t, BackendPlainText, res.Strategy)

		data, err := os.ReadFile(res.Path)
		require.NoError(t, err)
		return pdfFillColors(t, data)
	}

	plain := render(Request{Text: sampleResume})
	custom := render(Request{
		Text:          sampleResume,
		TemplateID:    templates.TechFocused,
		Customization: &templates.Customization{AccentColor: "#ff0000", HeaderColor: "#00ff00"},
	})

	require.NotEmpty(t, plain)
	assert.Equal(t, plain, custom)
	assert.NotContains(t, custom, "1.000 0.000 0.000 rg")
}

var fillColorOp = regexp.MustCompile(`\d\.\d{3} \d\.\d{3} \d\.\d{3} rg`)

// pdfFillColors inflates every content stream of a PDF and returns the fill
// color operators in drawing order.
func pdfFillColors(t *testing.T, data []byte) []string {
	t.Helper()

	var ops []string
	rest := data
	for {
		start := bytes.Index(rest, []byte("stream\n"))
		if start < 0 {
			return ops
		}
		rest = rest[start+len("stream\n"):]
		end := bytes.Index(rest, []byte("endstream"))
		if end < 0 {
			return ops
		}
		zr, err := zlib.NewReader(bytes.NewReader(rest[:end]))
		if err == nil {
			content, _ := io.ReadAll(zr)
			ops = append(ops, fillColorOp.FindAllString(string(content), -1)...)
		}
		rest = rest[end+len("endstream"):]
	}
}

func assertPDFFile(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "not a PDF")
	assert.Equal(t, ".pdf", filepath.Ext(path))
}

// ---------------------------------------------------------------------------
// TestJob - Shared artifacts
// ---------------------------------------------------------------------------

func TestJob_Lines(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t)
	job := e.newJob(Request{Text: sampleResume})

	lines, err := job.Lines(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"## Summary",
		"Backend engineer.",
		"## Experience",
		"### Acme Corp (2019 - 2023)",
		"- Led a team of 5",
		"- Cut latency by 40%",
		"## Skills",
		"Go, SQL",
	}, lines)
}

func TestJob_MarkupIsOnePageAndCached(t *testing.T) {
	t.Parallel()

	e := newTestExporter(t)
	job := e.newJob(Request{Text: sampleResume, Customization: &templates.Customization{Spacing: templates.SpacingLoose}})

	first, err := job.Markup(context.Background())
	require.NoError(t, err)
	second, err := job.Markup(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "padding: 0.4in")
	assert.NotContains(t, first, "0.6in")
}

// ---------------------------------------------------------------------------
// TestClose / TestFilename
// ---------------------------------------------------------------------------

func TestClose(t *testing.T) {
	t.Parallel()

	ok := &fakeAttempt{name: "ok"}
	broken := &fakeAttempt{name: "broken", err: errors.New("still running")}
	e := newTestExporter(t, WithAttempts(ok, &plainTextAttempt{}, broken))

	err := e.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken: still running")
	assert.True(t, ok.closed)
	assert.True(t, broken.closed)
}

func TestFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		ext   string
		want  string
	}{
		{"Jane Doe", "pdf", "Jane_Doe.pdf"},
		{"  Senior Go Engineer  ", "docx", "Senior_Go_Engineer.docx"},
		{"", "pdf", "resume.pdf"},
		{"   ", "docx", "resume.docx"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Filename(tt.title, tt.ext))
		})
	}
}

func TestResultPathsInOutputDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	e, err := New(WithOutputDir(dir), WithAttempts(&fakeAttempt{name: "ok", out: []byte("%PDF")}))
	require.NoError(t, err)

	res, err := e.PDF(context.Background(), Request{Text: sampleResume})
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(res.Path))
	assert.True(t, strings.HasPrefix(filepath.Base(res.Path), "resumekit-"))
}

package resumekit

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlainTextExporter(t *testing.T, opts ...Option) (*Exporter, string) {
	t.Helper()
	dir := t.TempDir()
	opts = append([]Option{WithBackends(BackendPlainText), WithOutputDir(dir)}, opts...)
	exp, err := NewExporter(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = exp.Close() })
	return exp, dir
}

// ---------------------------------------------------------------------------
// TestNewExporter - Construction
// ---------------------------------------------------------------------------

func TestNewExporter_DefaultChain(t *testing.T) {
	t.Parallel()

	exp, err := NewExporter()
	require.NoError(t, err)
	t.Cleanup(func() { _ = exp.Close() })

	assert.Equal(t, DefaultBackends(), exp.Backends())
}

func TestNewExporter_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{
			name:    "unknown backend",
			opts:    []Option{WithBackends("weasyprint")},
			wantErr: ErrUnknownBackend,
		},
		{
			name:    "missing asset path",
			opts:    []Option{WithAssetPath("/definitely/not/here")},
			wantErr: ErrInvalidAssetPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewExporter(tt.opts...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { WithTimeout(0) })
	assert.NotPanics(t, func() { WithTimeout(DefaultTimeout) })
}

// ---------------------------------------------------------------------------
// TestExport - PDF and DOCX files
// ---------------------------------------------------------------------------

func TestExportPDF_PlainText(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	exp, dir := newPlainTextExporter(t, WithLogger(zerolog.New(&logs)))

	res, err := exp.ExportPDF(context.Background(), ExportRequest{
		Text:  sampleResume,
		Title: "Jane Doe Resume",
	})
	require.NoError(t, err)

	assert.Equal(t, BackendPlainText, res.Strategy)
	assert.Equal(t, MIMETypePDF, res.MIMEType)
	assert.Equal(t, "Jane_Doe_Resume.pdf", res.Filename)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, dir, filepath.Dir(res.Path))

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Contains(t, logs.String(), res.ID)
}

func TestExportPDF_DebugHTML(t *testing.T) {
	t.Parallel()

	exp, _ := newPlainTextExporter(t, WithDebugHTML(true))

	res, err := exp.ExportPDF(context.Background(), ExportRequest{Text: sampleResume})
	require.NoError(t, err)
	require.NotEmpty(t, res.DebugHTMLPath)

	markup, err := os.ReadFile(res.DebugHTMLPath)
	require.NoError(t, err)
	assert.Contains(t, string(markup), "Jane Doe")
}

func TestExportDOCX(t *testing.T) {
	t.Parallel()

	exp, _ := newPlainTextExporter(t)

	res, err := exp.ExportDOCX(context.Background(), ExportRequest{
		Text:       sampleResume,
		TemplateID: "professional-classic",
	})
	require.NoError(t, err)

	assert.Equal(t, MIMETypeDOCX, res.MIMEType)
	assert.Equal(t, "resume.docx", res.Filename)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")), "docx is a zip archive")
}

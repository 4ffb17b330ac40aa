package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/alnah/go-resumekit/internal/pipeline"
	"github.com/alnah/go-resumekit/internal/templates"
)

var _ Attempt = (*basicAttempt)(nil)

// basicAttempt writes the rendered markup with fpdf's basic HTML writer.
// The strict variant refuses text outside the core fonts' single-byte
// encoding; the lossy variant transliterates it and only runs after an
// internal renderer error.
type basicAttempt struct {
	lossy bool
}

func (a *basicAttempt) Name() string {
	if a.lossy {
		return BackendBasicBytes
	}
	return BackendBasic
}

func (a *basicAttempt) Render(ctx context.Context, job *Job) ([]byte, error) {
	if a.lossy && !errors.Is(job.Previous(), ErrInternalRenderer) {
		return nil, errSkipped
	}

	markup, err := job.Markup(ctx)
	if err != nil {
		return nil, err
	}

	var src io.Reader = strings.NewReader(markup)
	if a.lossy {
		src = bytes.NewReader([]byte(markup))
	}
	blocks, err := pipeline.ReduceToBasic(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternalRenderer, err)
	}

	w := newBasicWriter(job, a.lossy)
	for _, b := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := w.block(b); err != nil {
			return nil, err
		}
	}

	out, err := outputPDF(w.pdf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternalRenderer, err)
	}
	return out, nil
}

// basicWriter lays out reduced blocks with the resolved template style.
type basicWriter struct {
	pdf   *fpdf.Fpdf
	html  fpdf.HTMLBasicType
	tr    func(string) string
	lossy bool

	margin      float64
	baseSize    float64
	nameSize    float64
	sectionSize float64
	sectionGap  float64
	itemGap     float64

	header rgb
	accent rgb
}

func newBasicWriter(job *Job, lossy bool) *basicWriter {
	style := job.Style()
	palette := job.Descriptor().Palette
	margin := cssPoints(style.Spacing.Padding, 28.8)

	pdf := newLetterPDF(job.Contact().DisplayName(templates.PlaceholderName), margin)
	w := &basicWriter{
		pdf:         pdf,
		html:        pdf.HTMLBasicNew(),
		tr:          pdf.UnicodeTranslatorFromDescriptor(""),
		lossy:       lossy,
		margin:      margin,
		baseSize:    cssPoints(style.Fonts.Base, 10),
		nameSize:    cssPoints(style.Fonts.Name, 22),
		sectionSize: cssPoints(style.Fonts.Section, 11),
		sectionGap:  cssPoints(style.Spacing.Section, 11.25),
		itemGap:     cssPoints(style.Spacing.Item, 4.5),
		header:      colorOr(style.Header, palette.Header),
		accent:      colorOr(style.Accent, palette.Accent),
	}
	w.html.Link.ClrR, w.html.Link.ClrG, w.html.Link.ClrB = w.accent.R, w.accent.G, w.accent.B
	w.html.Link.Underscore = true
	return w
}

// encode maps s to the core font encoding.
func (w *basicWriter) encode(s string) (string, error) {
	if !w.lossy {
		if r, bad := unencodable(w.tr, s); bad {
			return "", encodingError(r)
		}
	}
	return w.tr(s), nil
}

func (w *basicWriter) block(b pipeline.BasicBlock) error {
	text, err := w.encode(b.HTML)
	if err != nil {
		return err
	}

	pdf := w.pdf
	lh := w.baseSize * lineSpacing

	switch b.Kind {
	case pipeline.BasicTitle:
		pdf.SetFont(pdfFont, "B", w.nameSize)
		setTextColor(pdf, w.header)
		pdf.MultiCell(0, w.nameSize*1.2, plainText(text), "", "C", false)

	case pipeline.BasicContact:
		pdf.SetFont(pdfFont, "", w.baseSize)
		setTextColor(pdf, mutedColor)
		pdf.MultiCell(0, lh, plainText(text), "", "C", false)
		pdf.Ln(w.sectionGap / 2)

	case pipeline.BasicHeading:
		pdf.Ln(w.sectionGap / 2)
		pdf.SetFont(pdfFont, "", w.sectionSize)
		setTextColor(pdf, w.accent)
		w.html.Write(w.sectionSize*lineSpacing, "<b>"+text+"</b>")
		pdf.Ln(w.sectionSize * lineSpacing)
		w.rule()

	case pipeline.BasicSubheading:
		pdf.SetFont(pdfFont, "", w.baseSize+1)
		setTextColor(pdf, textColor)
		w.html.Write(lh, "<b>"+text+"</b>")
		pdf.Ln(lh)

	case pipeline.BasicItem:
		pdf.SetFont(pdfFont, "", w.baseSize)
		setTextColor(pdf, textColor)
		indent := w.margin + w.baseSize*1.2
		pdf.SetX(w.margin + w.baseSize*0.3)
		pdf.Write(lh, w.tr("•"))
		pdf.SetLeftMargin(indent)
		pdf.SetX(indent)
		w.html.Write(lh, text)
		pdf.Ln(lh)
		pdf.SetLeftMargin(w.margin)
		pdf.Ln(w.itemGap / 2)

	default:
		pdf.SetFont(pdfFont, "", w.baseSize)
		setTextColor(pdf, textColor)
		w.html.Write(lh, text)
		pdf.Ln(lh)
		pdf.Ln(w.itemGap)
	}
	return nil
}

// rule draws a thin accent line under a section heading.
func (w *basicWriter) rule() {
	pageW, _ := w.pdf.GetPageSize()
	y := w.pdf.GetY()
	w.pdf.SetDrawColor(w.accent.R, w.accent.G, w.accent.B)
	w.pdf.SetLineWidth(0.75)
	w.pdf.Line(w.margin, y, pageW-w.margin, y)
	w.pdf.Ln(w.itemGap)
}

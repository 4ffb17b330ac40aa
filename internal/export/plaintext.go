package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-resumekit/internal/templates"
)

var _ Attempt = (*plainTextAttempt)(nil)

// Fixed plain-text layout, independent of the template.
const (
	plainMargin    = 54
	plainTitleSize = 24
	plainH1Size    = 18
	plainH2Size    = 14
	plainH3Size    = 12
	plainBodySize  = 10
	plainIndent    = 14
)

// Fixed colors: the template palette and user customization never apply.
var (
	plainTitleColor   = rgb{30, 41, 59}
	plainHeadingColor = rgb{51, 65, 85}
)

// plainTextAttempt ignores the template and lays out the document's text
// lines in fixed styles. Unmappable runes are transliterated, so it only
// fails on output errors.
type plainTextAttempt struct{}

func (plainTextAttempt) Name() string { return BackendPlainText }

func (plainTextAttempt) Render(ctx context.Context, job *Job) ([]byte, error) {
	lines, err := job.Lines(ctx)
	if err != nil {
		return nil, err
	}

	info := job.Contact()
	title := info.DisplayName(job.Request.Title)
	if title == "" {
		title = templates.PlaceholderName
	}

	pdf := newLetterPDF(title, plainMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(pdfFont, "B", plainTitleSize)
	setTextColor(pdf, plainTitleColor)
	pdf.MultiCell(0, plainTitleSize*1.25, tr(title), "", "C", false)

	if line := info.ContactLine(" | "); line != "" {
		pdf.SetFont(pdfFont, "", plainBodySize)
		setTextColor(pdf, mutedColor)
		pdf.MultiCell(0, plainBodySize*lineSpacing, tr(line), "", "C", false)
	}
	pdf.Ln(plainBodySize)

	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text := strings.TrimSpace(line)

		switch {
		case text == "":
			pdf.Ln(plainBodySize / 2)
		case strings.HasPrefix(text, "### "):
			heading(pdf, tr(text[4:]), plainH3Size, textColor)
		case strings.HasPrefix(text, "## "):
			pdf.Ln(plainBodySize / 2)
			heading(pdf, tr(text[3:]), plainH2Size, plainHeadingColor)
		case strings.HasPrefix(text, "# "):
			heading(pdf, tr(text[2:]), plainH1Size, textColor)
		case strings.HasPrefix(text, "- "), strings.HasPrefix(text, "* "):
			pdf.SetFont(pdfFont, "", plainBodySize)
			setTextColor(pdf, textColor)
			pdf.SetX(plainMargin + plainIndent)
			pdf.MultiCell(0, plainBodySize*lineSpacing, tr("• "+text[2:]), "", "L", false)
		default:
			pdf.SetFont(pdfFont, "", plainBodySize)
			setTextColor(pdf, textColor)
			pdf.MultiCell(0, plainBodySize*lineSpacing, tr(text), "", "L", false)
		}
	}

	out, err := outputPDF(pdf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	return out, nil
}

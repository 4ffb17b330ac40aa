package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pdfCreator  = "resumekit"
	pdfFont     = "Helvetica"
	lineSpacing = 1.35
)

// rgb is a color in fpdf's 0-255 components.
type rgb struct{ R, G, B int }

var (
	textColor  = rgb{30, 41, 59}
	mutedColor = rgb{85, 85, 85}
)

// newLetterPDF starts a portrait US Letter document measured in points.
func newLetterPDF(title string, margin float64) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle(title, true)
	pdf.SetCreator(pdfCreator, true)
	pdf.AddPage()
	return pdf
}

// outputPDF serializes pdf, reporting any error recorded while drawing.
func outputPDF(pdf *fpdf.Fpdf) ([]byte, error) {
	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setTextColor(pdf *fpdf.Fpdf, c rgb) {
	pdf.SetTextColor(c.R, c.G, c.B)
}

// hexColor parses #rgb or #rrggbb; ok is false for any other color syntax.
func hexColor(s string) (c rgb, ok bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return rgb{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return rgb{}, false
	}
	return rgb{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}, true
}

// colorOr returns the parsed color, or the parsed fallback. Palette
// fallbacks are always hex.
func colorOr(s, fallback string) rgb {
	if c, ok := hexColor(s); ok {
		return c
	}
	c, _ := hexColor(fallback)
	return c
}

// cssPoints converts a CSS length in pt, px or in to points.
// Unparsable lengths give def.
func cssPoints(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	units := []struct {
		suffix string
		factor float64
	}{
		{"pt", 1},
		{"px", 0.75},
		{"in", 72},
	}
	for _, u := range units {
		if num, found := strings.CutSuffix(s, u.suffix); found {
			v, err := strconv.ParseFloat(num, 64)
			if err != nil || v < 0 {
				return def
			}
			return v * u.factor
		}
	}
	return def
}

// unencodable returns the first rune of s the translator cannot map.
// fpdf maps unknown runes to '.'.
func unencodable(tr func(string) string, s string) (rune, bool) {
	for _, r := range s {
		if r == '.' {
			continue
		}
		if tr(string(r)) == "." {
			return r, true
		}
	}
	return 0, false
}

// plainText drops the tags of basic markup.
func plainText(html string) string {
	var b strings.Builder
	for _, el := range fpdf.HTMLBasicTokenize(html) {
		if el.Cat == 'T' {
			b.WriteString(el.Str)
		}
	}
	return b.String()
}

func encodingError(r rune) error {
	return fmt.Errorf("%w: %q has no single-byte encoding", ErrInternalRenderer, r)
}

func heading(pdf *fpdf.Fpdf, text string, size float64, c rgb) {
	pdf.SetFont(pdfFont, "B", size)
	setTextColor(pdf, c)
	pdf.MultiCell(0, size*1.3, text, "", "L", false)
}

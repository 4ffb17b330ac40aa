package export

import (
	"archive/zip"
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"sync"

	"github.com/fumiama/go-docx"

	"github.com/alnah/go-resumekit/internal/templates"
)

// docxTheme holds the DOCX look of a template. Sizes are in half-points.
type docxTheme struct {
	font        string
	centered    bool
	nameSize    int
	nameColor   string
	contactSize int
	headColor   string // h1/h2 color, empty for black
	h2Size      int
}

var (
	classicDOCX = docxTheme{
		font:        "Calibri",
		nameSize:    56,
		nameColor:   "1e40af",
		contactSize: 20,
		headColor:   "2563eb",
		h2Size:      28,
	}
	defaultDOCX = docxTheme{
		font:        "Arial",
		centered:    true,
		nameSize:    48,
		contactSize: 19,
		h2Size:      26,
	}
)

const (
	docxBodySize = 22
	docxH1Size   = 32
	docxH3Size   = 24

	// Bullet list defined in docxbase/numbering.xml.
	docxBulletNumID = "1"
)

var docxHeadingStyles = [...]string{"Heading1", "Heading2", "Heading3"}

//go:embed docxbase/*.xml docxbase/*.rels
var docxBase embed.FS

// docxParts maps package paths to the bundled files that replace or extend
// go-docx's default template. Styles and numbering live here.
var docxParts = map[string]string{
	"[Content_Types].xml":          "content_types.xml",
	"word/document.xml":            "document.xml",
	"word/_rels/document.xml.rels": "document.xml.rels",
	"word/styles.xml":              "styles.xml",
	"word/numbering.xml":           "numbering.xml",
}

// docxSharedParts come unchanged from go-docx's default template.
var docxSharedParts = []string{
	"_rels/.rels",
	"docProps/app.xml",
	"docProps/core.xml",
	"word/theme/theme1.xml",
	"word/fontTable.xml",
}

var docxPackage = sync.OnceValues(func() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	add := func(fsys fs.FS, src, dst string) error {
		data, err := fs.ReadFile(fsys, src)
		if err != nil {
			return err
		}
		w, err := zw.Create(dst)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	for dst, src := range docxParts {
		if err := add(docxBase, "docxbase/"+src, dst); err != nil {
			return nil, err
		}
	}
	for _, name := range docxSharedParts {
		if err := add(docx.TemplateXMLFS, "xml/default/"+name, name); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
})

// newDOCX returns an empty document carrying the bundled heading and list
// definitions.
func newDOCX() (*docx.Docx, error) {
	data, err := docxPackage()
	if err != nil {
		return nil, err
	}
	return docx.Parse(bytes.NewReader(data), int64(len(data)))
}

func docxThemeFor(id string) docxTheme {
	if id == templates.ProfessionalClassic {
		return classicDOCX
	}
	return defaultDOCX
}

// buildDOCX writes the document's text lines as a Word document.
func buildDOCX(ctx context.Context, job *Job) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lines, err := job.Lines(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDOCXGeneration, err)
	}

	theme := docxThemeFor(job.Descriptor().ID)
	doc, err := newDOCX()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDOCXGeneration, err)
	}
	w := &docxWriter{doc: doc, theme: theme}

	info := job.Contact()
	name := w.para()
	if theme.centered {
		name.Justification("center")
	}
	w.run(name, info.DisplayName(templates.PlaceholderName), theme.nameSize).Bold().Color(colorHex(theme.nameColor))

	if line := info.ContactLine(" | "); line != "" {
		p := w.para()
		if theme.centered {
			p.Justification("center")
		}
		w.run(p, line, theme.contactSize)
	}
	w.para()

	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w.line(strings.TrimSpace(line))
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDOCXGeneration, err)
	}
	return buf.Bytes(), nil
}

type docxWriter struct {
	doc   *docx.Docx
	theme docxTheme
}

func (w *docxWriter) para() *docx.Paragraph {
	return w.doc.AddParagraph()
}

func (w *docxWriter) run(p *docx.Paragraph, text string, size int) *docx.Run {
	f := w.theme.font
	return p.AddText(text).Size(strconv.Itoa(size)).Font(f, f, f, "default")
}

// line adds one native element per markdown line: a heading paragraph,
// a bulleted list item or a body paragraph.
func (w *docxWriter) line(text string) {
	switch {
	case text == "":
		return
	case strings.HasPrefix(text, "### "):
		w.heading(3, text[4:], docxH3Size, "")
	case strings.HasPrefix(text, "## "):
		w.heading(2, text[3:], w.theme.h2Size, w.theme.headColor)
	case strings.HasPrefix(text, "# "):
		w.heading(1, text[2:], docxH1Size, w.theme.headColor)
	case strings.HasPrefix(text, "- "), strings.HasPrefix(text, "* "):
		w.run(w.para().NumPr(docxBulletNumID, "0"), text[2:], docxBodySize)
	default:
		w.run(w.para(), text, docxBodySize)
	}
}

func (w *docxWriter) heading(level int, text string, size int, color string) {
	p := w.para().Style(docxHeadingStyles[level-1])
	w.run(p, text, size).Bold().Color(colorHex(color))
}

// colorHex returns c, or "000000" when unset.
func colorHex(c string) string {
	if c == "" {
		return "000000"
	}
	return c
}

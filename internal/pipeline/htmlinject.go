package pipeline

import (
	"context"
	"html"
	"strings"
)

// StyleInjector adds user CSS to a rendered resume page.
type StyleInjector interface {
	InjectStyle(ctx context.Context, page, css string) string
}

// StyleTag places CSS in a <style> element so it cascades after the skin.
type StyleTag struct{}

// InjectStyle places the style element at the end of <head>, at the start of
// <body> when there is no head, or in front of a bare fragment.
func (StyleTag) InjectStyle(ctx context.Context, page, css string) string {
	if css == "" || ctx.Err() != nil {
		return page
	}

	tag := "<style>" + escapeStyle(css) + "</style>"
	at := styleAnchor(page)
	return page[:at] + tag + page[at:]
}

// styleAnchor returns the byte offset where the style element belongs.
func styleAnchor(page string) int {
	lower := strings.ToLower(page)
	if i := strings.Index(lower, "</head>"); i >= 0 {
		return i
	}
	if i := strings.Index(lower, "<body"); i >= 0 {
		if end := strings.IndexByte(page[i:], '>'); end >= 0 {
			return i + end + 1
		}
	}
	return 0
}

// escapeStyle keeps user CSS from closing the style element early.
func escapeStyle(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// ListDecorator rewrites list items of an HTML fragment.
type ListDecorator interface {
	DecorateListItems(fragment string) string
}

// GlyphBullets prefixes every <li> with a glyph wrapped in a "bullet" span,
// for skins that hide the native list marker.
type GlyphBullets struct {
	Glyph string
}

// DecorateListItems inserts the glyph span after each opening <li> tag.
func (g GlyphBullets) DecorateListItems(fragment string) string {
	if g.Glyph == "" {
		return fragment
	}
	span := `<span class="bullet">` + html.EscapeString(g.Glyph) + `</span>`
	return strings.ReplaceAll(fragment, "<li>", "<li>"+span)
}

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates markdown could not be converted.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// documentShell wraps a fragment for consumers that need a full page, such
// as the plain-text export which walks the body.
const documentShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Resume</title>
</head>
<body>
%s
</body>
</html>`

// codeStyle is the chroma style for fenced code in project sections.
const codeStyle = "github"

// Converter turns resume markdown into HTML.
type Converter interface {
	Document(ctx context.Context, content string) (string, error)
	Fragment(ctx context.Context, content string) (string, error)
}

// MarkdownConverter is the goldmark-backed Converter.
type MarkdownConverter struct {
	md goldmark.Markdown
}

// NewConverter returns a MarkdownConverter with GFM, hard line breaks and
// inline-styled code highlighting. Raw HTML in the input is dropped.
func NewConverter() *MarkdownConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(codeStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // skins ship no chroma stylesheet
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	return &MarkdownConverter{md: md}
}

// Document converts content to a standalone HTML5 page.
func (c *MarkdownConverter) Document(ctx context.Context, content string) (string, error) {
	fragment, err := c.Fragment(ctx, content)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(documentShell, fragment), nil
}

// Fragment converts content to an HTML fragment. Goldmark has no context
// support, so conversion runs in a goroutine raced against ctx.
func (c *MarkdownConverter) Fragment(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

package pipeline

import (
	"context"
	"regexp"
	"strings"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// glyphBullet matches a line led by a pasted bullet glyph instead of a
	// markdown list marker. Indentation is kept so nesting survives.
	glyphBullet = regexp.MustCompile(`(?m)^([ \t]*)[•◦○▪▫■□●➤➢►▶→✓✔·‣⁃][ \t]+`)
)

// Preprocessor prepares section markdown before conversion.
type Preprocessor interface {
	Preprocess(ctx context.Context, content string) string
}

// ResumePreprocessor normalizes text pasted from word processors so it
// converts like hand-written markdown.
type ResumePreprocessor struct{}

// Preprocess normalizes line endings, turns glyph bullets into list items
// and collapses runs of blank lines. A cancelled ctx returns content as is.
func (p *ResumePreprocessor) Preprocess(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = glyphBullet.ReplaceAllString(content, "$1- ")
	content = multipleBlankLines.ReplaceAllString(content, "\n\n")
	return strings.TrimRight(content, "\n")
}

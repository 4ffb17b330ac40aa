// Package sections splits resume text into titled sections of ordered blocks.
package sections

import (
	"regexp"
	"strings"

	"github.com/alnah/go-resumekit/internal/contact"
)

// BlockKind classifies a block inside a section.
type BlockKind int

const (
	// Text is a raw content line (bullet, paragraph, emphasis line).
	Text BlockKind = iota
	// Subheading is a third-level heading inside a section.
	Subheading
)

// String returns the kind name used in JSON output and logs.
func (k BlockKind) String() string {
	switch k {
	case Subheading:
		return "subheading"
	default:
		return "text"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k BlockKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Block is one unit of section content.
type Block struct {
	Kind BlockKind `json:"type"`
	Text string    `json:"text"`
}

// Section is a titled, ordered group of blocks.
type Section struct {
	Title  string  `json:"title"`
	Blocks []Block `json:"content"`
}

// Markdown re-serializes the section's blocks for the markup converter.
// Subheadings are emitted as "### " lines; text lines are kept verbatim.
func (s Section) Markdown() string {
	var b strings.Builder
	for i, block := range s.Blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		if block.Kind == Subheading {
			b.WriteString("### ")
		}
		b.WriteString(block.Text)
	}
	return b.String()
}

// emptyLabel matches "**Label**:" lines that carry no value.
var emptyLabel = regexp.MustCompile(`^\*\*.*\*\*:\s*$`)

// parser carries the state of one Parse call.
type parser struct {
	sections   []Section
	current    Section
	headerSeen bool
}

// rule classifies a line. It returns true when the line was consumed.
type rule func(p *parser, line string) bool

// rules are evaluated in order; the first rule that consumes a line wins.
var rules = []rule{
	documentHeader,
	sectionHeading,
	subheading,
	blankLine,
	emptyLabelLine,
	contactLine,
	textLine,
}

// Parse splits text into sections. The first "# " or "## " heading is the
// document header and never becomes a section. A document without "## "
// headings yields an empty, non-nil slice.
func Parse(text string) []Section {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	p := &parser{sections: []Section{}}
	for _, line := range strings.Split(text, "\n") {
		for _, r := range rules {
			if r(p, line) {
				break
			}
		}
	}
	p.flush()
	return p.sections
}

// flush appends the open section when it has a title.
func (p *parser) flush() {
	if p.current.Title != "" {
		p.sections = append(p.sections, p.current)
	}
}

func documentHeader(p *parser, line string) bool {
	if p.headerSeen {
		return false
	}
	isH1 := strings.HasPrefix(line, "# ")
	isH2 := strings.HasPrefix(line, "## ")
	if !isH1 && !isH2 {
		return false
	}
	p.headerSeen = true
	// A document opening with "## X" has no name header; X titles the first section.
	if isH2 {
		p.current.Title = headingText(line, "## ")
	}
	return true
}

func sectionHeading(p *parser, line string) bool {
	if !strings.HasPrefix(line, "## ") {
		return false
	}
	p.flush()
	p.current = Section{Title: headingText(line, "## ")}
	return true
}

func subheading(p *parser, line string) bool {
	if !strings.HasPrefix(line, "### ") {
		return false
	}
	p.current.Blocks = append(p.current.Blocks, Block{Kind: Subheading, Text: headingText(line, "### ")})
	return true
}

func blankLine(_ *parser, line string) bool {
	return strings.TrimSpace(line) == ""
}

func emptyLabelLine(_ *parser, line string) bool {
	return emptyLabel.MatchString(strings.TrimSpace(line))
}

func contactLine(_ *parser, line string) bool {
	return contact.IsLabelLine(line)
}

func textLine(p *parser, line string) bool {
	p.current.Blocks = append(p.current.Blocks, Block{Kind: Text, Text: line})
	return true
}

// headingText strips the heading marker and surrounding whitespace.
func headingText(line, marker string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, marker))
}

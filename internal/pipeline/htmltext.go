package pipeline

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrHTMLParse indicates the HTML could not be parsed.
var ErrHTMLParse = errors.New("HTML parsing failed")

// HTMLToText flattens an HTML document into plain text lines.
// Headings keep their depth as "#" markers, list items become "- " lines,
// table rows are joined with " | ", and preformatted blocks keep their lines.
// Inline styling and link targets are dropped.
func HTMLToText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLParse, err)
	}

	var lines []string
	flattenText(doc.Find("body"), &lines)
	return strings.Join(lines, "\n"), nil
}

func flattenText(sel *goquery.Selection, lines *[]string) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		if s.HasClass("contact") {
			if parts := contactParts(s); len(parts) > 0 {
				*lines = append(*lines, strings.Join(parts, " | "))
			}
			return
		}

		switch name := goquery.NodeName(s); name {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			level := int(name[1] - '0')
			if text := collapseSpace(s.Text()); text != "" {
				*lines = append(*lines, strings.Repeat("#", level)+" "+text)
			}
		case "ul", "ol":
			flattenList(s, lines)
		case "pre":
			for _, line := range strings.Split(strings.TrimRight(s.Text(), "\n"), "\n") {
				*lines = append(*lines, line)
			}
		case "table":
			s.Find("tr").Each(func(_ int, tr *goquery.Selection) {
				var cells []string
				tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
					cells = append(cells, collapseSpace(cell.Text()))
				})
				*lines = append(*lines, strings.Join(cells, " | "))
			})
		case "p":
			// Hard wraps render as <br> followed by a newline text node.
			for _, line := range strings.Split(s.Text(), "\n") {
				if text := collapseSpace(line); text != "" {
					*lines = append(*lines, text)
				}
			}
		case "hr":
			*lines = append(*lines, "")
		case "head", "script", "style", "title", "#comment":
		case "#text":
			if text := collapseSpace(s.Text()); text != "" {
				*lines = append(*lines, text)
			}
		case "div", "section", "article", "blockquote", "main", "header", "footer", "body", "li":
			flattenText(s, lines)
		default:
			if text := collapseSpace(s.Text()); text != "" {
				*lines = append(*lines, text)
			}
		}
	})
}

// flattenList emits one "- " line per item, nested lists included.
func flattenList(list *goquery.Selection, lines *[]string) {
	list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		item := li.Clone()
		item.Find("ul, ol, .bullet").Remove()
		if text := collapseSpace(item.Text()); text != "" {
			*lines = append(*lines, "- "+text)
		}
		li.ChildrenFiltered("ul, ol").Each(func(_ int, nested *goquery.Selection) {
			flattenList(nested, lines)
		})
	})
}

// contactParts returns the text of the contact spans, separators excluded.
func contactParts(s *goquery.Selection) []string {
	var parts []string
	s.Find("span").Each(func(_ int, span *goquery.Selection) {
		if span.HasClass("sep") || isSeparator(span.Text()) {
			return
		}
		if text := collapseSpace(span.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	if len(parts) == 0 {
		if text := collapseSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	}
	return parts
}

// BasicKind classifies a block of reduced markup.
type BasicKind int

const (
	BasicParagraph BasicKind = iota
	BasicTitle
	BasicContact
	BasicHeading
	BasicSubheading
	BasicItem
)

// BasicBlock is one block of markup reduced to the inline tags b, i, u and
// a[href]. Text is literal: basic writers do not decode entities.
type BasicBlock struct {
	Kind BasicKind
	HTML string
}

// ReduceToBasic walks a rendered resume document and reduces it to blocks a
// basic HTML writer can lay out. Skin classes (name, contact, section-title)
// are recognized first, then plain heading, list and paragraph tags.
func ReduceToBasic(r io.Reader) ([]BasicBlock, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLParse, err)
	}

	var blocks []BasicBlock
	reduceBlocks(doc.Find("body"), &blocks)
	return blocks, nil
}

func reduceBlocks(sel *goquery.Selection, blocks *[]BasicBlock) {
	add := func(kind BasicKind, s *goquery.Selection) {
		if inline := strings.TrimSpace(reduceInline(s)); inline != "" {
			*blocks = append(*blocks, BasicBlock{Kind: kind, HTML: inline})
		}
	}

	sel.Children().Each(func(_ int, s *goquery.Selection) {
		switch {
		case s.HasClass("name"):
			add(BasicTitle, s)
		case s.HasClass("contact"):
			if parts := contactParts(s); len(parts) > 0 {
				line := basicReplacer.Replace(strings.Join(parts, " | "))
				*blocks = append(*blocks, BasicBlock{Kind: BasicContact, HTML: line})
			}
		case s.HasClass("section-title"):
			add(BasicHeading, s)
		case s.HasClass("section-divider"), s.HasClass("bullet"):
		default:
			switch goquery.NodeName(s) {
			case "h1", "h2":
				add(BasicHeading, s)
			case "h3", "h4", "h5", "h6":
				add(BasicSubheading, s)
			case "ul", "ol":
				reduceList(s, add)
			case "p", "pre", "blockquote", "table":
				add(BasicParagraph, s)
			case "style", "script", "title", "head":
			default:
				if s.Children().Length() == 0 {
					add(BasicParagraph, s)
					return
				}
				reduceBlocks(s, blocks)
			}
		}
	})
}

func reduceList(list *goquery.Selection, add func(BasicKind, *goquery.Selection)) {
	list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		item := li.Clone()
		item.Find("ul, ol, .bullet").Remove()
		add(BasicItem, item)
		li.ChildrenFiltered("ul, ol").Each(func(_ int, nested *goquery.Selection) {
			reduceList(nested, add)
		})
	})
}

// reduceInline renders the contents of s keeping only b, i, u, a and br.
func reduceInline(s *goquery.Selection) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "#text":
			b.WriteString(basicEscape(c.Text()))
		case "strong", "b":
			b.WriteString("<b>" + reduceInline(c) + "</b>")
		case "em", "i":
			b.WriteString("<i>" + reduceInline(c) + "</i>")
		case "u", "mark":
			b.WriteString("<u>" + reduceInline(c) + "</u>")
		case "a":
			href, ok := c.Attr("href")
			if !ok || strings.ContainsAny(href, `"' `) {
				b.WriteString(reduceInline(c))
				return
			}
			b.WriteString(`<a href="` + href + `">` + reduceInline(c) + "</a>")
		case "br":
			b.WriteString("<br>")
		case "#comment", "style", "script":
		default:
			b.WriteString(reduceInline(c))
		}
	})
	return b.String()
}

// basicReplacer swaps angle brackets for guillemets: basic writers treat any
// <...> run as a tag.
var basicReplacer = strings.NewReplacer("<", "‹", ">", "›")

// basicEscape collapses whitespace, keeping one edge space where s had one.
func basicEscape(s string) string {
	collapsed := collapseSpace(s)
	if collapsed == "" && s != "" {
		return " "
	}
	if strings.HasPrefix(s, " ") || strings.HasPrefix(s, "\n") {
		collapsed = " " + collapsed
	}
	if strings.HasSuffix(s, " ") || strings.HasSuffix(s, "\n") {
		collapsed += " "
	}
	return basicReplacer.Replace(collapsed)
}

func isSeparator(s string) bool {
	switch strings.TrimSpace(s) {
	case "|", "•", "·":
		return true
	}
	return false
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

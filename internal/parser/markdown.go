package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/doccheck/internal/document"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Headings come out
// tagged with their level; block content flattens to plain lines with blank
// lines between blocks.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) ([]document.Line, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var lines []document.Line
	appendBlock := func(t string) {
		if t == "" {
			return
		}
		if len(lines) > 0 {
			lines = append(lines, document.Line{})
		}
		for _, l := range strings.Split(t, "\n") {
			lines = append(lines, document.Line{Text: l})
		}
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := string(node.Text(src))
			if title == "" {
				continue
			}
			if len(lines) > 0 {
				lines = append(lines, document.Line{})
			}
			lines = append(lines, document.Line{Text: title, Heading: node.Level})
		default:
			appendBlock(extractText(n, src))
		}
	}

	return lines, nil
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	// Also handle inline children.
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			// Recurse for nested inlines.
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}

package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/doccheck/internal/document"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. h1-h6 elements come out tagged with their
// heading level; content elements flatten to lines in reading order.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) ([]document.Line, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var lines []document.Line
	appendText := func(t string, level int) {
		if t == "" {
			return
		}
		if len(lines) > 0 && (level > 0 || lines[len(lines)-1].Heading > 0) {
			lines = append(lines, document.Line{})
		}
		lines = append(lines, document.Line{Text: t, Heading: level})
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				appendText(textContent(n), level)
				return
			}
			// Skip non-content elements.
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "p", "li", "td", "blockquote":
				appendText(textContent(n), 0)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	// Walk <body> when present, the whole document otherwise.
	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}

	return lines, nil
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/doccheck/internal/document"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Paragraphs with a Heading style come out
// tagged with their heading level so the segmenter's structural detector can
// see them.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) ([]document.Line, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "doccheck-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var lines []document.Line
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			// Empty paragraph marks a paragraph break.
			if len(lines) > 0 && lines[len(lines)-1].Text != "" {
				lines = append(lines, document.Line{})
			}
			continue
		}
		lines = append(lines, document.Line{
			Text:    text,
			Heading: docxHeadingLevel(para),
		})
	}

	return lines, nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := para.Properties.Style.Val
	for level := 1; level <= 6; level++ {
		if strings.EqualFold(style, fmt.Sprintf("Heading%d", level)) ||
			strings.EqualFold(style, fmt.Sprintf("heading %d", level)) {
			return level
		}
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

package parser

import (
	"bufio"
	"io"

	"github.com/dgallion1/doccheck/internal/document"
)

// TextParser handles plain text files. Every source line survives as-is;
// plain text carries no structural heading styling.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) ([]document.Line, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []document.Line
	for scanner.Scan() {
		lines = append(lines, document.Line{Text: scanner.Text()})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

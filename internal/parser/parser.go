package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/doccheck/internal/document"
)

// Parser converts raw document bytes into an ordered sequence of text lines.
type Parser interface {
	Parse(r io.Reader, filename string) ([]document.Line, error)
}

// ErrUnsupportedFormat is returned when a file's format is not recognized.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ExtractionError indicates the bytes could not be parsed as the declared
// format (corrupt file, wrong extension).
type ExtractionError struct {
	Filename string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Filename, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// PDFFallback enables the pdftotext fallback for PDFs the Go library cannot
// read. Set once at startup, before any parsing.
var PDFFallback = true

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: PDFFallback}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Extract reads the full document through the parser selected by filename.
// Format dispatch errors pass through unchanged; parse failures are wrapped
// in an ExtractionError naming the file.
func Extract(r io.Reader, filename string) ([]document.Line, error) {
	p, err := ForFile(filename)
	if err != nil {
		return nil, err
	}
	lines, err := p.Parse(r, filename)
	if err != nil {
		return nil, &ExtractionError{Filename: filename, Err: err}
	}
	return lines, nil
}

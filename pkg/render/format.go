package render

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an output document format
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatEPUB     Format = "epub"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "md"
	FormatDOC      Format = "doc"
)

// DefaultFormat is used when no format is requested
const DefaultFormat = FormatPDF

// Formats lists every supported format
func Formats() []Format {
	return []Format{FormatPDF, FormatEPUB, FormatHTML, FormatMarkdown, FormatDOC}
}

// ParseFormat normalizes a user supplied format name
func ParseFormat(s string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	switch normalized {
	case "":
		return DefaultFormat, nil
	case "markdown":
		return FormatMarkdown, nil
	}
	for _, f := range Formats() {
		if string(f) == normalized {
			return f, nil
		}
	}

	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return "", fmt.Errorf("unsupported format %q (expected %s)", s, strings.Join(names, "/"))
}

func (f Format) String() string {
	return string(f)
}

// Extension is the file extension written for the format, without the dot
func (f Format) Extension() string {
	return string(f)
}

// Artifact is a rendered file on disk
type Artifact struct {
	Path   string
	Format Format
}

// OutputPath joins dir and name and appends the format's extension
func OutputPath(dir, name string, format Format) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name+"."+format.Extension())
}

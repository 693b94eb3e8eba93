package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ExportFormat is the file format of a generated budget document.
type ExportFormat string

const (
	FormatDocx ExportFormat = "docx"
	FormatXLSX ExportFormat = "xlsx"
	FormatPDF  ExportFormat = "pdf"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseExportFormat parses a format name such as "docx" or ".pdf".
func ParseExportFormat(s string) (ExportFormat, error) {
	f := ExportFormat(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	switch f {
	case FormatDocx, FormatXLSX, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Extension returns the file extension including the leading dot.
func (f ExportFormat) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type served for the format.
func (f ExportFormat) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
}

// DefaultFileStem is used when the project has no name.
const DefaultFileStem = "presupuesto"

var whitespaceRun = regexp.MustCompile(`\s+`)

// BudgetFileName derives the download name of a budget document:
// "Cocina Nueva", es, docx -> "Cocina_Nueva_es.docx".
func BudgetFileName(projectName string, lang Language, format ExportFormat) string {
	stem := strings.TrimSpace(projectName)
	if stem == "" {
		stem = DefaultFileStem
	}
	stem = whitespaceRun.ReplaceAllString(stem, "_")
	stem = sanitizeFilename(stem)
	return fmt.Sprintf("%s_%s%s", stem, lang, format.Extension())
}

// sanitizeFilename replaces path separators and colons, which are unsafe in
// file names on every platform.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

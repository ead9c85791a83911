// Package pdf extracts text from expense report PDFs and splits it into
// the logical sections the audit workflow operates on.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Sections holds the raw text of the three regions of an expense report:
// the header block, the invoice line items, and the summary totals.
type Sections struct {
	Header   string `json:"header"`
	Invoices string `json:"invoices"`
	Summary  string `json:"summary"`
}

// Complete reports whether both section markers were found in the document.
// When false, the full text was placed in Header as a fallback.
func (s *Sections) Complete() bool {
	return s.Invoices != "" || s.Summary != ""
}

const (
	invoicesMarker = "invoices"
	summaryMarker  = "summary"
)

// ExtractFile extracts the full text of the PDF at path and splits it into sections.
func ExtractFile(path string) (*Sections, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrExtractFailed, path, err)
	}
	defer f.Close()

	text, err := extractText(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrExtractFailed, path, err)
	}

	return Split(text), nil
}

// Extract extracts the full text of an in-memory PDF and splits it into sections.
func Extract(data []byte) (*Sections, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}

	text, err := extractText(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}

	return Split(text), nil
}

// Split divides full document text at the INVOICES and SUMMARY markers.
// Marker matching is case-insensitive and positional: everything before the
// first invoices marker is the header, everything from the summary marker on
// is the summary. When either marker is missing, or the summary marker
// precedes the invoices marker, the whole text becomes the header and the
// caller decides how to proceed; an out-of-order document would otherwise
// yield a negative-length invoices slice.
func Split(text string) *Sections {
	lower := strings.ToLower(text)

	invoicesIdx := strings.Index(lower, invoicesMarker)
	summaryIdx := strings.Index(lower, summaryMarker)

	if invoicesIdx == -1 || summaryIdx == -1 || summaryIdx < invoicesIdx {
		return &Sections{Header: strings.TrimSpace(text)}
	}

	return &Sections{
		Header:   strings.TrimSpace(text[:invoicesIdx]),
		Invoices: strings.TrimSpace(text[invoicesIdx:summaryIdx]),
		Summary:  strings.TrimSpace(text[summaryIdx:]),
	}
}

func extractText(reader *pdf.Reader) (string, error) {
	var sb strings.Builder

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}

		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}

	return sb.String(), nil
}

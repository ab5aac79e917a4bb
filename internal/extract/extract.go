package extract

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	MimePDF         = "application/pdf"
	mimeOctetStream = "application/octet-stream"
)

// Extractor turns an uploaded payload into plain text.
type Extractor interface {
	Extract(ctx context.Context, data []byte, contentType string) (string, error)
}

// TextExtractor extracts PDFs page by page and treats every other type as UTF-8 text.
type TextExtractor struct{}

// New returns the default extractor.
func New() *TextExtractor { return &TextExtractor{} }

var _ Extractor = (*TextExtractor)(nil)

// Extract dispatches on contentType. PDF pages are joined with a single "\n" and the text runs
// within a page with a single space. Non-PDF bytes are returned as-is.
func (TextExtractor) Extract(ctx context.Context, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if IsPDF(contentType) {
		return extractPDF(data)
	}
	return string(data), nil
}

// IsPDF reports whether a declared content type (parameters allowed) is application/pdf.
func IsPDF(contentType string) bool {
	return normalize(contentType) == MimePDF
}

// ResolveContentType trusts the declared type unless it is missing or generic, in which case
// the type is sniffed from the payload.
func ResolveContentType(declared string, data []byte) string {
	if n := normalize(declared); n != "" && n != mimeOctetStream {
		return declared
	}
	return http.DetectContentType(data)
}

func normalize(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	}
	return mt
}

// extractPDF walks every page in order. The parser panics on some malformed inputs,
// so panics are converted into errors here.
func extractPDF(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("pdf parser: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	n := r.NumPage()
	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		pageText, err := pageTokens(r.Page(i))
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, pageText)
	}
	return strings.Join(pages, "\n"), nil
}

func pageTokens(p pdf.Page) (string, error) {
	if p.V.IsNull() {
		return "", nil
	}
	rows, err := p.GetTextByRow()
	if err != nil {
		return "", err
	}
	var tokens []string
	for _, row := range rows {
		for _, t := range row.Content {
			if t.S != "" {
				tokens = append(tokens, t.S)
			}
		}
	}
	return strings.Join(tokens, " "), nil
}

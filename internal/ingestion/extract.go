package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Supported resume MIME types.
const (
	MIMEText = "text/plain"
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrUnsupportedType is returned for documents that are not plain text, PDF or DOCX.
var ErrUnsupportedType = errors.New("unsupported file type")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:tab\s*/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

// IsSupported reports whether mime is one of the accepted resume formats.
func IsSupported(mime string) bool {
	switch mime {
	case MIMEText, MIMEPDF, MIMEDOCX:
		return true
	}
	return false
}

// ExtractText returns the raw text of a resume document.
func ExtractText(mime string, data []byte) (string, error) {
	switch mime {
	case MIMEText:
		return string(bytes.TrimPrefix(data, utf8BOM)), nil

	case MIMEPDF:
		return extractPDFText(data)

	case MIMEDOCX:
		return extractDocxText(data)

	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mime)
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText strips WordprocessingML markup, keeping paragraph breaks.
func docxXMLToText(content string) string {
	content = docxParagraphEnd.ReplaceAllStringFunc(content, func(tag string) string {
		if strings.HasPrefix(tag, "<w:tab") {
			return "\t"
		}
		return "\n"
	})
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}

// DetectMIME resolves a document's MIME type from its file extension, falling
// back to content sniffing.
func DetectMIME(filename string, data []byte) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return MIMEPDF
	case ".docx":
		return MIMEDOCX
	case ".txt", ".text", ".md":
		return MIMEText
	}

	sniffed := http.DetectContentType(data)
	switch {
	case strings.HasPrefix(sniffed, MIMEPDF):
		return MIMEPDF
	case strings.HasPrefix(sniffed, "text/plain"):
		return MIMEText
	}
	return sniffed
}

package ingestion

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDocx assembles a minimal WordprocessingML package with one paragraph
// per entry in paragraphs. Paragraph text must already be XML-escaped.
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body bytes.Buffer
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractText_Plain(t *testing.T) {
	text, err := ExtractText(MIMEText, []byte("Go and Rust"))
	require.NoError(t, err)
	assert.Equal(t, "Go and Rust", text)
}

func TestExtractText_PlainStripsByteOrderMark(t *testing.T) {
	data := []byte("\xef\xbb\xbfPython, Go\nDocker")
	require.Equal(t, MIMEText, DetectMIME("", data))

	text, err := ExtractText(MIMEText, data)
	require.NoError(t, err)
	assert.Equal(t, "Python, Go\nDocker", text)
	assert.Equal(t, "Python, Go\nDocker", CleanText(text))
}

func TestExtractText_Docx(t *testing.T) {
	text, err := ExtractText(MIMEDOCX, buildDocx(t, "Proficient in Python", "Docker, Git"))
	require.NoError(t, err)

	assert.Equal(t, "Proficient in Python\nDocker, Git\n", text)
}

func TestExtractText_InvalidDocuments(t *testing.T) {
	_, err := ExtractText(MIMEPDF, []byte("not a pdf"))
	assert.Error(t, err)

	_, err = ExtractText(MIMEDOCX, []byte("not a zip"))
	assert.Error(t, err)
}

func TestExtractText_Unsupported(t *testing.T) {
	_, err := ExtractText("image/png", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Contains(t, err.Error(), "image/png")
}

func TestDocxXMLToText(t *testing.T) {
	xml := `<w:body><w:p><w:r><w:t>C&#43;&#43;</w:t><w:tab/><w:t>Go</w:t></w:r></w:p><w:p><w:r><w:t>Line</w:t><w:br/><w:t>Break</w:t></w:r></w:p></w:body>`
	assert.Equal(t, "C++\tGo\nLine\nBreak\n", docxXMLToText(xml))
}

func TestDetectMIME(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		expected string
	}{
		{"pdf extension", "cv.PDF", nil, MIMEPDF},
		{"docx extension", "cv.docx", nil, MIMEDOCX},
		{"txt extension", "cv.txt", nil, MIMEText},
		{"sniffed pdf", "upload", []byte("%PDF-1.7\n"), MIMEPDF},
		{"sniffed text", "upload", []byte("Go, Rust"), MIMEText},
		{"sniffed png", "upload", []byte("\x89PNG\r\n\x1a\n"), "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectMIME(tt.filename, tt.data))
		})
	}
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported(MIMEPDF))
	assert.True(t, IsSupported(MIMEDOCX))
	assert.True(t, IsSupported(MIMEText))
	assert.False(t, IsSupported("application/msword"))
}

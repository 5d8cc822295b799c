package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	runOfSpace  = regexp.MustCompile(`\s+`)
	blankLines3 = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes extracted resume text while keeping its line structure.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := strings.Join(lines, "\n")
	result = blankLines3.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses runs of whitespace inside a line. Bullet items keep
// their indentation so nested lists survive.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	body := runOfSpace.ReplaceAllString(trimmed, " ")
	if isBulletLine(trimmed) {
		if indent := len(line) - len(trimmed); indent > 0 {
			return strings.Repeat(" ", indent) + body
		}
	}
	return body
}

func isBulletLine(line string) bool {
	for _, marker := range []string{"- ", "* ", "• ", "· ", "– "} {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}

// Preview returns the first limit characters of text, followed by "..." when
// text is longer.
func Preview(text string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

// IngestFile reads a resume from disk, extracts and cleans its text, and
// returns it with metadata about the source file.
func IngestFile(path string) (string, *Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	return Ingest(filepath.Base(path), data)
}

// Ingest extracts and cleans the text of an in-memory resume document.
func Ingest(filename string, data []byte) (string, *Metadata, error) {
	mime := DetectMIME(filename, data)
	raw, err := ExtractText(mime, data)
	if err != nil {
		return "", nil, err
	}

	return CleanText(raw), NewMetadata(filename, mime, data), nil
}

// WriteOutput writes cleaned text and its metadata next to each other in outDir.
func WriteOutput(outDir, name, cleanedText string, metadata *Metadata) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	cleanedPath := filepath.Join(outDir, base+".cleaned.txt")
	if err := os.WriteFile(cleanedPath, []byte(cleanedText), 0644); err != nil {
		return fmt.Errorf("failed to write cleaned text file: %w", err)
	}

	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return err
	}
	metaPath := filepath.Join(outDir, base+".meta.json")
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}

package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes an ingested resume file
type Metadata struct {
	Filename  string `json:"filename"`
	MIMEType  string `json:"mime_type"`
	Size      int    `json:"size"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of the raw file
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(filename, mime string, data []byte) *Metadata {
	return &Metadata{
		Filename:  filename,
		MIMEType:  mime,
		Size:      len(data),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(data),
	}
}

func computeHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}

package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/skill-matcher/internal/pipeline"
	"github.com/jonathan/skill-matcher/internal/schemas"
)

var schemaFiles = []string{
	"resume_analysis.schema.json",
}

func TestSchemaFiles_ValidJSONSchema(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err)

			var v any
			require.NoError(t, json.Unmarshal(data, &v), "schema file should be valid JSON")

			_, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
			assert.NoError(t, err, "schema should compile")
		})
	}
}

func TestResumeAnalysisSchema_AcceptsAnalyzerOutput(t *testing.T) {
	analysis, err := pipeline.NewAnalyzer(nil, nil).Analyze(
		"Experienced in Python, Django and PostgreSQL. Uses Docker and Git daily.")
	require.NoError(t, err)

	data, err := json.Marshal(analysis)
	require.NoError(t, err)

	assert.NoError(t, schemas.ValidateBytes("resume_analysis.schema.json", data))
}

func TestResumeAnalysisSchema_AcceptsEmptyMatches(t *testing.T) {
	analysis, err := pipeline.NewAnalyzer(nil, nil).Analyze("Go and Rust")
	require.NoError(t, err)
	require.Empty(t, analysis.MatchedRoles)

	data, err := json.Marshal(analysis)
	require.NoError(t, err)

	assert.NoError(t, schemas.ValidateBytes("resume_analysis.schema.json", data))
}

func TestResumeAnalysisSchema_Rejects(t *testing.T) {
	valid := map[string]any{
		"extractedSkills":      []string{"Python"},
		"programmingLanguages": []string{"Python"},
		"skillsByCategory":     map[string][]string{"language": {"Python"}},
		"matchedRoles":         []map[string]any{{"role": "Python Developer", "matchScore": 28}},
		"selectedRole":         "Python Developer",
		"textPreview":          "Python",
		"analyzedAt":           "2024-05-01T12:00:00Z",
	}

	tests := []struct {
		name   string
		mutate func(m map[string]any)
	}{
		{"no skills", func(m map[string]any) { m["extractedSkills"] = []string{} }},
		{"duplicate skills", func(m map[string]any) { m["extractedSkills"] = []string{"Go", "Go"} }},
		{"score above 100", func(m map[string]any) {
			m["matchedRoles"] = []map[string]any{{"role": "X", "matchScore": 101}}
		}},
		{"zero score", func(m map[string]any) {
			m["matchedRoles"] = []map[string]any{{"role": "X", "matchScore": 0}}
		}},
		{"fractional score", func(m map[string]any) {
			m["matchedRoles"] = []map[string]any{{"role": "X", "matchScore": 12.5}}
		}},
		{"unknown category", func(m map[string]any) {
			m["skillsByCategory"] = map[string][]string{"hobby": {"Chess"}}
		}},
		{"missing analyzedAt", func(m map[string]any) { delete(m, "analyzedAt") }},
		{"extra field", func(m map[string]any) { m["score"] = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := make(map[string]any, len(valid))
			for k, v := range valid {
				doc[k] = v
			}
			tt.mutate(doc)

			data, err := json.Marshal(doc)
			require.NoError(t, err)

			err = schemas.ValidateBytes("resume_analysis.schema.json", data)
			var verr *schemas.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/skill-matcher/internal/types"
)

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(&types.ResumeAnalysis{
		ExtractedSkills:      []string{"Django", "Docker", "Git", "PostgreSQL", "Python"},
		ProgrammingLanguages: []string{"Python"},
		SkillsByCategory: map[string][]string{
			"language":  {"Python"},
			"framework": {"Django"},
			"tool":      {"Docker", "Git", "PostgreSQL"},
		},
		SelectedRole: "Python Developer",
	})
	output := buf.String()

	assert.Contains(t, output, "RESUME ANALYSIS")
	assert.Contains(t, output, "Skills found: 5")
	assert.Contains(t, output, "Languages:    Python")
	assert.Contains(t, output, "Framework:")
	assert.Contains(t, output, "• PostgreSQL")
	assert.NotContains(t, output, "Concept:")
	assert.Contains(t, output, "Selected role: Python Developer")
	assert.Less(t, strings.Index(output, "Language:"), strings.Index(output, "Tool:"))
}

func TestPrintAnalysis_TruncatesLongCategories(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(&types.ResumeAnalysis{
		ExtractedSkills:  []string{"A", "B", "C", "D", "E", "F", "G"},
		SkillsByCategory: map[string][]string{"tool": {"A", "B", "C", "D", "E", "F", "G"}},
	})

	assert.Contains(t, buf.String(), "... and 2 more")
	assert.NotContains(t, buf.String(), "• F")
}

func TestPrintAnalysis_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAnalysis(nil)
	assert.Empty(t, buf.String())
}

func TestPrintRoleMatches(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRoleMatches([]types.RoleMatch{
		{Role: "iOS Developer", MatchScore: 47},
		{Role: "Mobile Developer", MatchScore: 39},
	})
	output := buf.String()

	assert.Contains(t, output, "ROLE MATCHES")
	assert.Contains(t, output, "#1  iOS Developer")
	assert.Contains(t, output, " 47%")
	assert.Contains(t, output, "#2  Mobile Developer")
	assert.Contains(t, output, strings.Repeat("█", 9)+strings.Repeat("░", 11))
}

func TestPrintRoleMatches_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRoleMatches(nil)
	assert.Contains(t, buf.String(), "NO MATCHING ROLES")
}

func TestPrintRoleGap(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRoleGap(&types.RoleGap{
		Role:          "Python Developer",
		MatchScore:    58,
		MatchedSkills: []string{"Python", "Django", "PostgreSQL", "Docker", "Git"},
		MissingSkills: []string{"Flask", "FastAPI", "MongoDB", "Redis", "SQL", "REST", "Linux", "Pandas", "NumPy", "Celery"},
	})
	output := buf.String()

	assert.Contains(t, output, "ROLE GAP")
	assert.Contains(t, output, "Score: 58%")
	assert.Contains(t, output, "Have (5):")
	assert.Contains(t, output, "✓ Django")
	assert.Contains(t, output, "Missing (10):")
	assert.Contains(t, output, "✗ Flask")
	assert.Contains(t, output, "... and 5 more")
	assert.NotContains(t, output, "✗ Celery")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
	assert.Contains(t, buf.String(), "...")
}

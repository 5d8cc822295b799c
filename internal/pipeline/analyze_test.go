package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/skill-matcher/internal/ranking"
	"github.com/jonathan/skill-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestAnalyzer(opts ...AnalyzerOption) *Analyzer {
	opts = append([]AnalyzerOption{WithClock(func() time.Time { return fixedTime })}, opts...)
	return NewAnalyzer(nil, nil, opts...)
}

func TestAnalyze(t *testing.T) {
	a := newTestAnalyzer()
	text := "Proficient in Python, Django, and PostgreSQL. Experience with Docker and Git."

	analysis, err := a.Analyze(text)
	require.NoError(t, err)

	assert.Equal(t, []string{"Django", "Docker", "Git", "PostgreSQL", "Python"}, analysis.ExtractedSkills)
	assert.Equal(t, []string{"Python"}, analysis.ProgrammingLanguages)
	assert.Equal(t, map[string][]string{
		"language":  {"Python"},
		"framework": {"Django"},
		"tool":      {"Docker", "Git", "PostgreSQL"},
	}, analysis.SkillsByCategory)
	assert.Equal(t, []types.RoleMatch{
		{Role: "Python Developer", MatchScore: 58},
		{Role: "Backend Developer", MatchScore: 51},
		{Role: "Cybersecurity Analyst", MatchScore: 40},
	}, analysis.MatchedRoles)
	assert.Equal(t, "Python Developer", analysis.SelectedRole)
	assert.Equal(t, text, analysis.TextPreview)
	assert.Equal(t, fixedTime, analysis.AnalyzedAt)
}

func TestAnalyze_Errors(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name string
		text string
		err  error
	}{
		{"empty", "", ErrEmptyText},
		{"whitespace only", " \n\t ", ErrEmptyText},
		{"no skills", "I love cooking and hiking", ErrNoSkills},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := a.Analyze(tt.text)
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, analysis)
		})
	}
}

func TestAnalyze_NoRoleMatchLeavesSelectedRoleEmpty(t *testing.T) {
	// Perl is in the dictionary but in no built-in role.
	analysis, err := newTestAnalyzer().Analyze("Perl")
	require.NoError(t, err)
	assert.Equal(t, []string{"Perl"}, analysis.ExtractedSkills)
	assert.Empty(t, analysis.MatchedRoles)
	assert.Empty(t, analysis.SelectedRole)
}

func TestAnalyze_TruncatesPreview(t *testing.T) {
	text := "Go " + strings.Repeat("é", 300)

	analysis, err := newTestAnalyzer().Analyze(text)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(analysis.TextPreview, "..."))
	assert.Equal(t, PreviewLength+3, len([]rune(analysis.TextPreview)))
}

func TestAnalyze_UsesMatcherLimit(t *testing.T) {
	a := NewAnalyzer(nil, ranking.NewMatcher(nil, ranking.WithLimit(1)))
	analysis, err := a.Analyze("Docker, Kubernetes, Terraform, AWS")
	require.NoError(t, err)
	assert.Len(t, analysis.MatchedRoles, 1)
	assert.Equal(t, "Cloud Engineer", analysis.SelectedRole)
}

func TestAnalyze_ReportsProgress(t *testing.T) {
	var steps []string
	a := newTestAnalyzer(WithProgress(func(e ProgressEvent) {
		steps = append(steps, e.Step)
	}))

	_, err := a.Analyze("Python and Django")
	require.NoError(t, err)
	assert.Equal(t, []string{StepExtractSkills, StepLanguages, StepMatchRoles}, steps)
}

func TestAnalyzeBatch(t *testing.T) {
	a := newTestAnalyzer()
	docs := []Document{
		{Name: "a.txt", Text: "Python, Django"},
		{Name: "b.txt", Text: ""},
		{Name: "c.txt", Text: "cooking"},
		{Name: "d.txt", Text: "Swift, Xcode, UIKit, SwiftUI"},
	}

	results := a.AnalyzeBatch(context.Background(), docs, 2)
	require.Len(t, results, 4)

	assert.Equal(t, "a.txt", results[0].Name)
	require.NoError(t, results[0].Err)
	assert.Equal(t, []string{"Django", "Python"}, results[0].Analysis.ExtractedSkills)

	assert.ErrorIs(t, results[1].Err, ErrEmptyText)
	assert.ErrorIs(t, results[2].Err, ErrNoSkills)

	require.NoError(t, results[3].Err)
	assert.Equal(t, "iOS Developer", results[3].Analysis.SelectedRole)
}

func TestAnalyzeBatch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := newTestAnalyzer().AnalyzeBatch(ctx, []Document{{Name: "a", Text: "Go"}}, 1)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
	assert.Nil(t, results[0].Analysis)
}

func TestAnalyzeBatch_Empty(t *testing.T) {
	results := newTestAnalyzer().AnalyzeBatch(context.Background(), nil, 0)
	assert.Empty(t, results)
}

// Package pipeline turns raw resume text into a skill and role analysis.
package pipeline

import (
	"errors"
	"strings"
	"time"

	"github.com/jonathan/skill-matcher/internal/ingestion"
	"github.com/jonathan/skill-matcher/internal/ranking"
	"github.com/jonathan/skill-matcher/internal/skills"
	"github.com/jonathan/skill-matcher/internal/types"
)

// PreviewLength is the number of characters kept in TextPreview.
const PreviewLength = 200

var (
	// ErrEmptyText is returned when a document yields no text.
	ErrEmptyText = errors.New("could not extract text from the document; it may be image-based")
	// ErrNoSkills is returned when no dictionary skill occurs in the text.
	ErrNoSkills = errors.New("no skills could be detected in the document")
)

// Step names reported through ProgressCallback.
const (
	StepExtractSkills = "extract_skills"
	StepLanguages     = "programming_languages"
	StepMatchRoles    = "match_roles"
)

// ProgressEvent represents a progress update during analysis
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called after each analysis step
type ProgressCallback func(event ProgressEvent)

// Analyzer runs skill extraction followed by role matching.
type Analyzer struct {
	extractor  *skills.Extractor
	matcher    *ranking.Matcher
	now        func() time.Time
	onProgress ProgressCallback
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithClock overrides the clock used for AnalyzedAt.
func WithClock(now func() time.Time) AnalyzerOption {
	return func(a *Analyzer) {
		a.now = now
	}
}

// WithProgress registers a callback for step events.
func WithProgress(cb ProgressCallback) AnalyzerOption {
	return func(a *Analyzer) {
		a.onProgress = cb
	}
}

// NewAnalyzer wires an extractor and a matcher. Nil arguments select the
// built-in dictionary and role table.
func NewAnalyzer(ex *skills.Extractor, m *ranking.Matcher, opts ...AnalyzerOption) *Analyzer {
	if ex == nil {
		ex = skills.NewExtractor(nil)
	}
	if m == nil {
		m = ranking.NewMatcher(nil)
	}
	a := &Analyzer{extractor: ex, matcher: m, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Extractor returns the analyzer's skill extractor.
func (a *Analyzer) Extractor() *skills.Extractor {
	return a.extractor
}

// Matcher returns the analyzer's role matcher.
func (a *Analyzer) Matcher() *ranking.Matcher {
	return a.matcher
}

// Analyze extracts skills from text and matches them against the role table.
// It returns ErrEmptyText for blank input and ErrNoSkills when nothing in the
// dictionary occurs in the text.
func (a *Analyzer) Analyze(text string) (*types.ResumeAnalysis, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	found := a.extractor.ExtractSkills(text)
	if len(found) == 0 {
		return nil, ErrNoSkills
	}
	a.emit(StepExtractSkills, "Extracted skills", found)

	languages := a.extractor.ExtractProgrammingLanguages(found)
	a.emit(StepLanguages, "Identified programming languages", languages)

	byCategory := make(map[string][]string)
	for category, names := range a.extractor.GroupByCategory(found) {
		byCategory[category.String()] = names
	}

	matches := a.matcher.MatchRoles(found)
	a.emit(StepMatchRoles, "Matched roles", matches)

	analysis := &types.ResumeAnalysis{
		ExtractedSkills:      found,
		ProgrammingLanguages: languages,
		SkillsByCategory:     byCategory,
		MatchedRoles:         matches,
		TextPreview:          ingestion.Preview(text, PreviewLength),
		AnalyzedAt:           a.now().UTC(),
	}
	if top, ok := analysis.TopMatch(); ok {
		analysis.SelectedRole = top.Role
	}
	return analysis, nil
}

func (a *Analyzer) emit(step, message string, content any) {
	if a.onProgress != nil {
		a.onProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}

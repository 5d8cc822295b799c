// Package types provides type definitions for structured data used throughout the skill-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// Category classifies a dictionary skill.
type Category int

// Skill categories. The zero value is not a valid category.
const (
	CategoryLanguage Category = iota + 1
	CategoryFramework
	CategoryTool
	CategoryConcept
)

// Categories lists every valid category in display order.
var Categories = []Category{CategoryLanguage, CategoryFramework, CategoryTool, CategoryConcept}

func (c Category) String() string {
	switch c {
	case CategoryLanguage:
		return "language"
	case CategoryFramework:
		return "framework"
	case CategoryTool:
		return "tool"
	case CategoryConcept:
		return "concept"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	return c >= CategoryLanguage && c <= CategoryConcept
}

// ParseCategory parses the lowercase category name produced by String.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "language":
		return CategoryLanguage, nil
	case "framework":
		return CategoryFramework, nil
	case "tool":
		return CategoryTool, nil
	case "concept":
		return CategoryConcept, nil
	default:
		return 0, fmt.Errorf("unknown skill category: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid skill category: %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// SkillEntry is a single dictionary entry.
type SkillEntry struct {
	Keyword   string   `json:"keyword"`   // lowercase literal used for matching
	Canonical string   `json:"canonical"` // display form returned to callers
	Category  Category `json:"category"`
}

// ExtractSkillsRequest is the body of a stateless extraction request.
type ExtractSkillsRequest struct {
	Text string `json:"text"`
}

// ExtractSkillsResponse is returned by the extraction endpoint.
type ExtractSkillsResponse struct {
	Skills               []string            `json:"skills"`
	ProgrammingLanguages []string            `json:"programmingLanguages"`
	SkillsByCategory     map[string][]string `json:"skillsByCategory"`
}

// SkillsRequest carries an already extracted skill list. Limit optionally
// overrides the number of role matches returned.
type SkillsRequest struct {
	Skills []string `json:"skills"`
	Limit  int      `json:"limit,omitempty"`
}

package skills

import (
	"slices"
	"strings"

	"github.com/jonathan/skill-matcher/internal/types"
)

// Extractor scans text for dictionary keywords.
type Extractor struct {
	dict *Dictionary
}

// NewExtractor creates an extractor over the given dictionary.
// A nil dictionary selects DefaultDictionary.
func NewExtractor(dict *Dictionary) *Extractor {
	if dict == nil {
		dict = DefaultDictionary()
	}
	return &Extractor{dict: dict}
}

// Dictionary returns the dictionary the extractor reads from.
func (e *Extractor) Dictionary() *Dictionary {
	return e.dict
}

// ExtractSkills returns the canonical names of every dictionary skill that
// occurs in text as a delimited token. The result has no duplicates and is
// sorted ascending; it is empty (not nil) when nothing matches.
func (e *Extractor) ExtractSkills(text string) []string {
	found := make([]string, 0)
	if text == "" {
		return found
	}

	normalized := strings.ToLower(text)
	seen := make(map[string]struct{})

	for i, entry := range e.dict.entries {
		if _, dup := seen[entry.Canonical]; dup {
			continue
		}
		// Literal pre-check; the pattern only runs when the keyword is present.
		if !strings.Contains(normalized, entry.Keyword) {
			continue
		}
		if e.dict.patterns[i].MatchString(normalized) {
			seen[entry.Canonical] = struct{}{}
			found = append(found, entry.Canonical)
		}
	}

	slices.Sort(found)
	return found
}

// ExtractProgrammingLanguages keeps the skills whose dictionary category is
// language, preserving input order. Unknown names are dropped.
func (e *Extractor) ExtractProgrammingLanguages(skills []string) []string {
	return e.filterCategory(skills, types.CategoryLanguage)
}

// GroupByCategory splits skills into per-category lists, preserving input
// order inside each list. Unknown names are dropped; categories without
// skills are omitted.
func (e *Extractor) GroupByCategory(skills []string) map[types.Category][]string {
	groups := make(map[types.Category][]string)
	for _, skill := range skills {
		entry, ok := e.dict.Lookup(skill)
		if !ok {
			continue
		}
		groups[entry.Category] = append(groups[entry.Category], skill)
	}
	return groups
}

func (e *Extractor) filterCategory(skills []string, category types.Category) []string {
	out := make([]string, 0)
	for _, skill := range skills {
		if entry, ok := e.dict.Lookup(skill); ok && entry.Category == category {
			out = append(out, skill)
		}
	}
	return out
}

// Package skills maps free-form resume text to a canonical, categorised skill set.
//
// Matching is dictionary driven and deterministic: a skill is reported only
// when one of its keywords appears in the text as a delimited token.
package skills

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/jonathan/skill-matcher/internal/types"
)

// CategoryList is one source list of canonical skill names sharing a category.
type CategoryList struct {
	Category types.Category
	Skills   []string
}

// Dictionary is an immutable keyword -> entry mapping. It is safe for
// concurrent use once constructed.
type Dictionary struct {
	entries  []types.SkillEntry
	byKey    map[string]int
	patterns []*regexp.Regexp
}

// NewDictionary builds a dictionary from the given category lists.
// Keywords are the lowercased canonical names and must be unique.
func NewDictionary(lists ...CategoryList) (*Dictionary, error) {
	d := &Dictionary{byKey: make(map[string]int)}

	for _, list := range lists {
		if !list.Category.Valid() {
			return nil, fmt.Errorf("invalid category %d for skill list", int(list.Category))
		}
		for _, name := range list.Skills {
			canonical := strings.TrimSpace(name)
			if canonical == "" {
				return nil, fmt.Errorf("empty skill name in %s list", list.Category)
			}
			keyword := strings.ToLower(canonical)
			if idx, exists := d.byKey[keyword]; exists {
				return nil, fmt.Errorf("duplicate skill keyword %q (%s and %s)",
					keyword, d.entries[idx].Canonical, canonical)
			}

			pattern, err := compileBoundaryPattern(keyword)
			if err != nil {
				return nil, fmt.Errorf("failed to compile pattern for %q: %w", keyword, err)
			}

			d.byKey[keyword] = len(d.entries)
			d.entries = append(d.entries, types.SkillEntry{
				Keyword:   keyword,
				Canonical: canonical,
				Category:  list.Category,
			})
			d.patterns = append(d.patterns, pattern)
		}
	}

	return d, nil
}

var defaultDictionary = sync.OnceValue(func() *Dictionary {
	d, err := NewDictionary(DefaultCategoryLists()...)
	if err != nil {
		panic(fmt.Sprintf("built-in skill dictionary is invalid: %v", err))
	}
	return d
})

// DefaultDictionary returns the built-in dictionary, constructed on first use.
func DefaultDictionary() *Dictionary {
	return defaultDictionary()
}

// Lookup finds the entry for a skill name, case-insensitively.
func (d *Dictionary) Lookup(skill string) (types.SkillEntry, bool) {
	idx, ok := d.byKey[strings.ToLower(skill)]
	if !ok {
		return types.SkillEntry{}, false
	}
	return d.entries[idx], true
}

// Entries returns a copy of all entries in declaration order.
func (d *Dictionary) Entries() []types.SkillEntry {
	out := make([]types.SkillEntry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Len returns the number of keywords in the dictionary.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

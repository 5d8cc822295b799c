// Package ranking predicts suitable job roles from a list of skills using
// cosine similarity against a table of role profiles.
package ranking

import (
	"math"
	"slices"
	"strings"

	"github.com/jonathan/skill-matcher/internal/types"
)

// DefaultLimit is the number of roles MatchRoles returns unless overridden.
const DefaultLimit = 3

// Matcher scores skill lists against a role table.
type Matcher struct {
	profiles *Profiles
	limit    int
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithLimit caps the number of matches returned. Values below 1 are ignored.
func WithLimit(n int) Option {
	return func(m *Matcher) {
		if n > 0 {
			m.limit = n
		}
	}
}

// NewMatcher creates a matcher over p. A nil table selects DefaultProfiles.
func NewMatcher(p *Profiles, opts ...Option) *Matcher {
	if p == nil {
		p = DefaultProfiles()
	}
	m := &Matcher{profiles: p, limit: DefaultLimit}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Profiles returns the role table the matcher reads from.
func (m *Matcher) Profiles() *Profiles {
	return m.profiles
}

// Limit returns the maximum number of matches MatchRoles returns.
func (m *Matcher) Limit() int {
	return m.limit
}

// MatchRoles returns the best matching roles for userSkills, highest score
// first. Scores are rounded percentages in [1,100]; roles scoring 0 are
// dropped. Equal scores keep the role table's declaration order.
func (m *Matcher) MatchRoles(userSkills []string) []types.RoleMatch {
	matches := make([]types.RoleMatch, 0)
	if len(userSkills) == 0 {
		return matches
	}

	userOrder, userSet := lowerSet(userSkills)

	for i, role := range m.profiles.roles {
		pct := score(userOrder, userSet, role.ExpectedSkills, m.profiles.skillSets[i])
		if pct > 0 {
			matches = append(matches, types.RoleMatch{Role: role.Name, MatchScore: pct})
		}
	}

	slices.SortStableFunc(matches, func(a, b types.RoleMatch) int {
		return b.MatchScore - a.MatchScore
	})

	if len(matches) > m.limit {
		matches = matches[:m.limit]
	}
	return matches
}

// Explain scores userSkills against a single role and splits the role's
// expected skills into matched and missing, in profile order.
func (m *Matcher) Explain(role string, userSkills []string) (types.RoleGap, bool) {
	i, ok := m.profiles.byName[role]
	if !ok {
		return types.RoleGap{}, false
	}
	profile := m.profiles.roles[i]

	gap := types.RoleGap{
		Role:          profile.Name,
		MatchedSkills: make([]string, 0),
		MissingSkills: make([]string, 0),
	}
	if len(userSkills) == 0 {
		gap.MissingSkills = append(gap.MissingSkills, profile.ExpectedSkills...)
		return gap, true
	}

	userOrder, userSet := lowerSet(userSkills)
	gap.MatchScore = score(userOrder, userSet, profile.ExpectedSkills, m.profiles.skillSets[i])

	for _, skill := range profile.ExpectedSkills {
		if _, ok := userSet[strings.ToLower(skill)]; ok {
			gap.MatchedSkills = append(gap.MatchedSkills, skill)
		} else {
			gap.MissingSkills = append(gap.MissingSkills, skill)
		}
	}
	return gap, true
}

func score(userOrder []string, userSet map[string]struct{}, roleSkills []string, roleSet map[string]struct{}) int {
	roleOrder := make([]string, len(roleSkills))
	for i, s := range roleSkills {
		roleOrder[i] = strings.ToLower(s)
	}

	universe := unionOrdered(userOrder, roleOrder)
	sim := CosineSimilarity(BinaryVector(universe, userSet), BinaryVector(universe, roleSet))
	return int(math.Round(sim * 100))
}

func lowerSet(skills []string) ([]string, map[string]struct{}) {
	order := make([]string, 0, len(skills))
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		lower := strings.ToLower(s)
		if _, ok := set[lower]; ok {
			continue
		}
		set[lower] = struct{}{}
		order = append(order, lower)
	}
	return order, set
}

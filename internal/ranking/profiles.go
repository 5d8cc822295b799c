package ranking

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/skill-matcher/internal/types"
)

// Profiles is an ordered, immutable table of role profiles.
// Declaration order is significant: it breaks ties between equal scores.
type Profiles struct {
	roles  []types.RoleProfile
	byName map[string]int
	// lowered expected skills per role, parallel to roles
	skillSets []map[string]struct{}
}

// NewProfiles validates and freezes a role table. Role names must be unique
// and non-empty, and every role must list at least one expected skill.
func NewProfiles(profiles []types.RoleProfile) (*Profiles, error) {
	p := &Profiles{
		roles:     make([]types.RoleProfile, 0, len(profiles)),
		byName:    make(map[string]int, len(profiles)),
		skillSets: make([]map[string]struct{}, 0, len(profiles)),
	}

	for i, profile := range profiles {
		name := strings.TrimSpace(profile.Name)
		if name == "" {
			return nil, fmt.Errorf("role profile %d has an empty name", i)
		}
		if _, dup := p.byName[name]; dup {
			return nil, fmt.Errorf("duplicate role profile %q", name)
		}
		if len(profile.ExpectedSkills) == 0 {
			return nil, fmt.Errorf("role profile %q has no expected skills", name)
		}

		set := make(map[string]struct{}, len(profile.ExpectedSkills))
		for _, skill := range profile.ExpectedSkills {
			if strings.TrimSpace(skill) == "" {
				return nil, fmt.Errorf("role profile %q has an empty skill", name)
			}
			set[strings.ToLower(skill)] = struct{}{}
		}

		p.byName[name] = len(p.roles)
		p.roles = append(p.roles, types.RoleProfile{
			Name:           name,
			ExpectedSkills: append([]string(nil), profile.ExpectedSkills...),
		})
		p.skillSets = append(p.skillSets, set)
	}

	return p, nil
}

var defaultProfiles = sync.OnceValue(func() *Profiles {
	p, err := NewProfiles(builtinRoles)
	if err != nil {
		panic(fmt.Sprintf("invalid built-in role table: %v", err))
	}
	return p
})

// DefaultProfiles returns the built-in role table. It is built on first use
// and shared afterwards.
func DefaultProfiles() *Profiles {
	return defaultProfiles()
}

// Get returns the profile for an exact role name.
func (p *Profiles) Get(name string) (types.RoleProfile, bool) {
	i, ok := p.byName[name]
	if !ok {
		return types.RoleProfile{}, false
	}
	return cloneProfile(p.roles[i]), true
}

// All returns every profile in declaration order.
func (p *Profiles) All() []types.RoleProfile {
	out := make([]types.RoleProfile, len(p.roles))
	for i, r := range p.roles {
		out[i] = cloneProfile(r)
	}
	return out
}

// Len returns the number of roles.
func (p *Profiles) Len() int {
	return len(p.roles)
}

func cloneProfile(r types.RoleProfile) types.RoleProfile {
	return types.RoleProfile{
		Name:           r.Name,
		ExpectedSkills: append([]string(nil), r.ExpectedSkills...),
	}
}

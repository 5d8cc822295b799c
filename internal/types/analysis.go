package types

import "time"

// ResumeAnalysis is everything derived from one resume text.
type ResumeAnalysis struct {
	ExtractedSkills      []string            `json:"extractedSkills"`
	ProgrammingLanguages []string            `json:"programmingLanguages"`
	SkillsByCategory     map[string][]string `json:"skillsByCategory"`
	MatchedRoles         []RoleMatch         `json:"matchedRoles"`
	SelectedRole         string              `json:"selectedRole"`
	TextPreview          string              `json:"textPreview"`
	AnalyzedAt           time.Time           `json:"analyzedAt"`
}

// TopMatch returns the best role match, if any.
func (a *ResumeAnalysis) TopMatch() (RoleMatch, bool) {
	if a == nil || len(a.MatchedRoles) == 0 {
		return RoleMatch{}, false
	}
	return a.MatchedRoles[0], true
}

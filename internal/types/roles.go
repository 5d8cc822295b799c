package types

// RoleProfile is the idealised skill set for a job role.
type RoleProfile struct {
	Name           string   `json:"name"`
	ExpectedSkills []string `json:"expectedSkills"`
}

// RoleMatch is a role ranked against a candidate's skills.
// MatchScore is the percentage-scaled cosine similarity, 1 to 100.
type RoleMatch struct {
	Role       string `json:"role"`
	MatchScore int    `json:"matchScore"`
}

// RoleGap explains a single role match: which expected skills the candidate
// already has and which are missing, in profile order.
type RoleGap struct {
	Role          string   `json:"role"`
	MatchScore    int      `json:"matchScore"`
	MatchedSkills []string `json:"matchedSkills"`
	MissingSkills []string `json:"missingSkills"`
}

package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/skill-matcher/internal/ranking"
	"github.com/jonathan/skill-matcher/internal/types"
)

// maxTextBytes bounds JSON bodies on the stateless endpoints.
const maxTextBytes = 1 << 20

// handleExtractSkills handles POST /skills/extract.
func (s *Server) handleExtractSkills(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractSkillsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ex := s.analyzer.Extractor()
	found := ex.ExtractSkills(req.Text)
	byCategory := make(map[string][]string)
	for category, names := range ex.GroupByCategory(found) {
		byCategory[category.String()] = names
	}

	writeJSON(w, http.StatusOK, types.ExtractSkillsResponse{
		Skills:               found,
		ProgrammingLanguages: ex.ExtractProgrammingLanguages(found),
		SkillsByCategory:     byCategory,
	})
}

// handleProgrammingLanguages handles POST /skills/languages.
func (s *Server) handleProgrammingLanguages(w http.ResponseWriter, r *http.Request) {
	var req types.SkillsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{
		"programmingLanguages": s.analyzer.Extractor().ExtractProgrammingLanguages(req.Skills),
	})
}

// handleListRoles handles GET /roles.
func (s *Server) handleListRoles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]types.RoleProfile{
		"roles": s.analyzer.Matcher().Profiles().All(),
	})
}

// handleMatchRoles handles POST /roles/match. An optional limit overrides
// the configured number of results.
func (s *Server) handleMatchRoles(w http.ResponseWriter, r *http.Request) {
	var req types.SkillsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Limit < 0 {
		writeError(w, http.StatusBadRequest, "limit must not be negative")
		return
	}

	m := s.analyzer.Matcher()
	if req.Limit > 0 {
		m = ranking.NewMatcher(m.Profiles(), ranking.WithLimit(req.Limit))
	}
	writeJSON(w, http.StatusOK, map[string][]types.RoleMatch{
		"matchedRoles": m.MatchRoles(req.Skills),
	})
}

// handleRoleGap handles POST /roles/{name}/gap.
func (s *Server) handleRoleGap(w http.ResponseWriter, r *http.Request) {
	var req types.SkillsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	name := r.PathValue("name")
	gap, ok := s.analyzer.Matcher().Explain(name, req.Skills)
	if !ok {
		writeError(w, http.StatusNotFound, (&ErrUnknownRole{Name: name}).Error())
		return
	}
	writeJSON(w, http.StatusOK, gap)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxTextBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

package db

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/skill-matcher/internal/types"
)

// User is a registered account together with its latest resume analysis.
type User struct {
	ID                   uuid.UUID   `json:"id"`
	Name                 string      `json:"name"`
	Email                string      `json:"email"`
	PasswordHash         string      `json:"-" db:"password_hash"` // Never serialize to JSON
	PasswordSet          bool        `json:"password_set" db:"password_set"`
	ResumeKey            string      `json:"resume_key,omitempty"`
	ResumeMIME           string      `json:"resume_mime,omitempty"`
	ResumeText           string      `json:"-"`
	ExtractedSkills      StringArray `json:"extracted_skills"`
	ProgrammingLanguages StringArray `json:"programming_languages"`
	MatchedRoles         RoleMatches `json:"matched_roles"`
	SelectedRole         string      `json:"selected_role"`
	AnalyzedAt           *time.Time  `json:"analyzed_at,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// HasResume reports whether the user has uploaded a resume.
func (u *User) HasResume() bool {
	return u.ResumeKey != ""
}

// ResumeRecord is what gets persisted after a successful upload.
type ResumeRecord struct {
	ObjectKey string
	MIME      string
	Text      string
	Analysis  *types.ResumeAnalysis
}

// JobStatus is the lifecycle state of an analysis job.
type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Valid reports whether s is a known status.
func (s JobStatus) Valid() bool {
	switch s {
	case JobQueued, JobProcessing, JobCompleted, JobFailed:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are expected.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed
}

// AnalysisJob tracks an asynchronous resume analysis.
type AnalysisJob struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	ObjectKey string    `json:"objectKey"`
	MIME      string    `json:"mime"`
	Status    JobStatus `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StringArray handles JSONB string arrays
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	return scanJSONB(src, a, func() { *a = StringArray{} })
}

// Value implements the Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// RoleMatches handles the JSONB list of matched roles.
type RoleMatches []types.RoleMatch

// Scan implements the Scanner interface for RoleMatches
func (m *RoleMatches) Scan(src interface{}) error {
	return scanJSONB(src, m, func() { *m = RoleMatches{} })
}

// Value implements the Valuer interface for RoleMatches
func (m RoleMatches) Value() (driver.Value, error) {
	if m == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(m)
}

func scanJSONB(src interface{}, dst any, empty func()) error {
	switch v := src.(type) {
	case nil:
		empty()
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("cannot scan %T into %T", src, dst)
	}
}

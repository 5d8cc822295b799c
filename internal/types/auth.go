package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateUserRequest represents the request to create a new user with password authentication.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SetRoleRequest selects the role a user wants to prepare for.
type SetRoleRequest struct {
	SelectedRole string `json:"selectedRole" validate:"required"`
}

// User represents a user profile for API responses (avoids import cycle with db package).
type User struct {
	ID                   uuid.UUID   `json:"id"`
	Name                 string      `json:"name"`
	Email                string      `json:"email"`
	HasResume            bool        `json:"hasResume"`
	ExtractedSkills      []string    `json:"extractedSkills"`
	ProgrammingLanguages []string    `json:"programmingLanguages"`
	MatchedRoles         []RoleMatch `json:"matchedRoles"`
	SelectedRole         string      `json:"selectedRole"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt"`
}

// LoginResponse represents the login/register response with user data and authentication token.
type LoginResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
	Token   string `json:"token"`
}

// Validate validates the CreateUserRequest using the validator.
func (r *CreateUserRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SetRoleRequest using the validator.
func (r *SetRoleRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/skill-matcher/internal/ingestion"
	"github.com/jonathan/skill-matcher/internal/pipeline"
	"github.com/jonathan/skill-matcher/internal/storage"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrNoResume indicates the user has not uploaded a resume yet
type ErrNoResume struct{}

func (e *ErrNoResume) Error() string {
	return "no resume uploaded yet"
}

// ErrJobNotFound indicates an unknown analysis job, or one owned by another user
type ErrJobNotFound struct {
	JobID uuid.UUID
}

func (e *ErrJobNotFound) Error() string {
	return fmt.Sprintf("analysis job not found: %s", e.JobID)
}

// ErrUnknownRole indicates a role name with no profile
type ErrUnknownRole struct {
	Name string
}

func (e *ErrUnknownRole) Error() string {
	return fmt.Sprintf("unknown role: %s", e.Name)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		emailExists  *ErrEmailAlreadyExists
		badCreds     *ErrInvalidCredentials
		userNotFound *ErrUserNotFound
		noResume     *ErrNoResume
		jobNotFound  *ErrJobNotFound
		unknownRole  *ErrUnknownRole
		validation   *ErrValidation
	)

	switch {
	case errors.As(err, &emailExists):
		return http.StatusConflict
	case errors.As(err, &badCreds):
		return http.StatusUnauthorized
	case errors.As(err, &userNotFound), errors.As(err, &noResume),
		errors.As(err, &jobNotFound), errors.As(err, &unknownRole),
		errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation),
		errors.Is(err, pipeline.ErrEmptyText), errors.Is(err, pipeline.ErrNoSkills):
		return http.StatusBadRequest
	case errors.Is(err, ingestion.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

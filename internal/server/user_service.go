package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/skill-matcher/internal/config"
	"github.com/jonathan/skill-matcher/internal/db"
	"github.com/jonathan/skill-matcher/internal/types"
)

// DBClient is the subset of *db.DB the server uses.
type DBClient interface {
	CreateUser(ctx context.Context, name, email string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SaveResumeAnalysis(ctx context.Context, userID uuid.UUID, rec db.ResumeRecord) error
	SetSelectedRole(ctx context.Context, userID uuid.UUID, role string) error
	CreateAnalysisJob(ctx context.Context, userID uuid.UUID, objectKey, mime string) (uuid.UUID, error)
	UpdateAnalysisJobStatus(ctx context.Context, id uuid.UUID, status db.JobStatus, errMsg string) error
	GetAnalysisJob(ctx context.Context, id uuid.UUID) (*db.AnalysisJob, error)
	ListAnalysisJobs(ctx context.Context, userID uuid.UUID, limit int) ([]db.AnalysisJob, error)
}

// UserService provides business logic for user accounts
type UserService struct {
	db             DBClient
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(db DBClient, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		db:             db,
		passwordConfig: passwordConfig,
	}
}

// toAPIUser converts db.User to types.User, excluding the password hash and resume text
func toAPIUser(u *db.User) *types.User {
	if u == nil {
		return nil
	}
	return &types.User{
		ID:                   u.ID,
		Name:                 u.Name,
		Email:                u.Email,
		HasResume:            u.HasResume(),
		ExtractedSkills:      nonNil(u.ExtractedSkills),
		ProgrammingLanguages: nonNil(u.ProgrammingLanguages),
		MatchedRoles:         nonNil(u.MatchedRoles),
		SelectedRole:         u.SelectedRole,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

func nonNil[S ~[]E, E any](s S) []E {
	if s == nil {
		return []E{}
	}
	return s
}

// Register creates a new user with password authentication
func (s *UserService) Register(ctx context.Context, req *types.CreateUserRequest) (*types.User, error) {
	exists, err := s.db.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.db.CreateUser(ctx, strings.TrimSpace(req.Name), req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.db.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return nil, fmt.Errorf("failed to set password: %w", err)
	}

	return s.Profile(ctx, userID)
}

// Login authenticates a user and returns user data
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	dbUser, err := s.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Unknown email and wrong password are indistinguishable to the caller
	if dbUser == nil || !dbUser.PasswordSet {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, dbUser.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return toAPIUser(dbUser), nil
}

// Profile returns the user's public profile
func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	dbUser, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toAPIUser(dbUser), nil
}

// SetRole records the role the user is preparing for. Any non-blank name is
// accepted.
func (s *UserService) SetRole(ctx context.Context, userID uuid.UUID, role string) (string, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return "", &ErrValidation{Field: "selectedRole", Message: "required"}
	}
	if _, err := s.user(ctx, userID); err != nil {
		return "", err
	}
	if err := s.db.SetSelectedRole(ctx, userID, role); err != nil {
		return "", fmt.Errorf("failed to set role: %w", err)
	}
	return role, nil
}

func (s *UserService) user(ctx context.Context, userID uuid.UUID) (*db.User, error) {
	dbUser, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if dbUser == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}
	return dbUser, nil
}

package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, password_hash, password_set, resume_key, resume_mime,
	resume_text, extracted_skills, programming_languages, matched_roles, selected_role,
	analyzed_at, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.PasswordSet, &u.ResumeKey, &u.ResumeMIME,
		&u.ResumeText, &u.ExtractedSkills, &u.ProgrammingLanguages, &u.MatchedRoles, &u.SelectedRole,
		&u.AnalyzedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a user without a password and returns its ID. Emails
// are stored lowercased.
func (db *DB) CreateUser(ctx context.Context, name, email string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id`,
		strings.TrimSpace(name), normalizeEmail(email),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser returns the user with id, or nil when none exists.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetUserByEmail looks a user up case-insensitively, returning nil when none
// exists.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	u, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = $1`, normalizeEmail(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// CheckEmailExists reports whether an account uses email.
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(email) = $1)`, normalizeEmail(email),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// UpdatePassword stores a new password hash and marks the password as set.
func (db *DB) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, password_set = TRUE, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", id)
	}
	return nil
}

// DeleteUser removes a user and, by cascade, their analysis jobs.
func (db *DB) DeleteUser(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// SaveResumeAnalysis replaces the user's resume and analysis. The selected
// role is reset to the best match.
func (db *DB) SaveResumeAnalysis(ctx context.Context, userID uuid.UUID, rec ResumeRecord) error {
	if rec.Analysis == nil {
		return fmt.Errorf("resume record for %s has no analysis", userID)
	}
	a := rec.Analysis

	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET
			resume_key = $1, resume_mime = $2, resume_text = $3,
			extracted_skills = $4, programming_languages = $5, matched_roles = $6,
			selected_role = $7, analyzed_at = $8, updated_at = NOW()
		 WHERE id = $9`,
		rec.ObjectKey, rec.MIME, rec.Text,
		StringArray(a.ExtractedSkills), StringArray(a.ProgrammingLanguages), RoleMatches(a.MatchedRoles),
		a.SelectedRole, a.AnalyzedAt, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// SetSelectedRole records the role the user chose to prepare for.
func (db *DB) SetSelectedRole(ctx context.Context, userID uuid.UUID, role string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET selected_role = $1, updated_at = NOW() WHERE id = $2`,
		role, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set selected role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-matcher/internal/types"
)

func TestAuthHandler_Signup(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/signup", "",
		map[string]string{"name": "  Ada Lovelace ", "email": "ada@example.com", "password": "secret123"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp types.LoginResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Account created successfully.", resp.Message)
	require.NotNil(t, resp.User)
	assert.Equal(t, "Ada Lovelace", resp.User.Name)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.False(t, resp.User.HasResume)
	assert.Equal(t, []string{}, resp.User.ExtractedSkills)
	assert.Equal(t, []types.RoleMatch{}, resp.User.MatchedRoles)

	claims, err := env.server.jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	stored := env.db.user(resp.User.ID)
	assert.True(t, stored.PasswordSet)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NotContains(t, rec.Body.String(), stored.PasswordHash)
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "Ada", "ada@example.com")

	rec := env.do(t, http.MethodPost, "/auth/signup", "",
		map[string]string{"name": "Other Ada", "email": "ada@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "email already registered: ada@example.com", errorBody(t, rec))
}

func TestAuthHandler_InvalidRequests(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		path    string
		body    map[string]string
		wantErr string
	}{
		{name: "signup missing name", path: "/auth/signup", body: map[string]string{"email": "a@b.co", "password": "secret123"}, wantErr: "validation error: Name - required"},
		{name: "signup short name", path: "/auth/signup", body: map[string]string{"name": "A", "email": "a@b.co", "password": "secret123"}, wantErr: "validation error: Name - min"},
		{name: "signup bad email", path: "/auth/signup", body: map[string]string{"name": "Ada", "email": "nope", "password": "secret123"}, wantErr: "validation error: Email - email"},
		{name: "signup short password", path: "/auth/signup", body: map[string]string{"name": "Ada", "email": "a@b.co", "password": "123"}, wantErr: "validation error: Password - min"},
		{name: "login missing password", path: "/auth/login", body: map[string]string{"email": "a@b.co"}, wantErr: "validation error: Password - required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, tt.path, "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantErr, errorBody(t, rec))
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		env.server.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request body", errorBody(t, rec))
	})
}

func TestAuthHandler_Login(t *testing.T) {
	env := newTestEnv(t)
	userID, _ := env.signup(t, "Grace Hopper", "grace@example.com")

	tests := []struct {
		name       string
		email      string
		password   string
		wantStatus int
	}{
		{name: "valid", email: "grace@example.com", password: "secret123", wantStatus: http.StatusOK},
		{name: "email case insensitive", email: "GRACE@example.com", password: "secret123", wantStatus: http.StatusOK},
		{name: "wrong password", email: "grace@example.com", password: "wrong-password", wantStatus: http.StatusUnauthorized},
		{name: "unknown email", email: "nobody@example.com", password: "secret123", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/auth/login", "",
				map[string]string{"email": tt.email, "password": tt.password})
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, "invalid email or password", errorBody(t, rec))
				return
			}
			var resp types.LoginResponse
			decodeBody(t, rec, &resp)
			assert.Equal(t, "Login successful.", resp.Message)
			assert.Equal(t, userID, resp.User.ID)
			assert.NotEmpty(t, resp.Token)
		})
	}
}

func TestAuthHandler_Profile(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.signup(t, "Alan Turing", "alan@example.com")

	for _, path := range []string{"/auth/profile", "/auth/me"} {
		t.Run(path, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, path, token, nil)
			require.Equal(t, http.StatusOK, rec.Code)

			var resp struct {
				User types.User `json:"user"`
			}
			decodeBody(t, rec, &resp)
			assert.Equal(t, userID, resp.User.ID)
			assert.Equal(t, "Alan Turing", resp.User.Name)
		})
	}

	t.Run("no token", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("deleted user", func(t *testing.T) {
		ghost, err := env.server.jwtService.GenerateToken(uuid.New())
		require.NoError(t, err)
		rec := env.do(t, http.MethodGet, "/auth/me", ghost, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAuthHandler_SetRole(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.signup(t, "Linus", "linus@example.com")

	rec := env.do(t, http.MethodPost, "/auth/set-role", token, map[string]string{"selectedRole": "  DevOps Engineer "})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Role updated.", resp["message"])
	assert.Equal(t, "DevOps Engineer", resp["selectedRole"])
	assert.Equal(t, "DevOps Engineer", env.db.user(userID).SelectedRole)

	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "missing", body: map[string]string{}},
		{name: "blank", body: map[string]string{"selectedRole": "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/auth/set-role", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "DevOps Engineer", env.db.user(userID).SelectedRole)
		})
	}
}

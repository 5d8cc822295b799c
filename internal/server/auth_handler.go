package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/skill-matcher/internal/server/middleware"
	"github.com/jonathan/skill-matcher/internal/types"
)

// AuthHandler handles account HTTP requests.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		validator:   validator.New(),
		logger:      logger,
	}
}

// Register handles POST /auth/signup.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		h.fail(w, "signup", err)
		return
	}
	h.issueToken(w, http.StatusCreated, "Account created successfully.", user)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		h.fail(w, "login", err)
		return
	}
	h.issueToken(w, http.StatusOK, "Login successful.", user)
}

// Profile handles GET /auth/profile and GET /auth/me.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	user, err := h.userService.Profile(r.Context(), userID)
	if err != nil {
		h.fail(w, "profile", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// SetRole handles POST /auth/set-role.
func (h *AuthHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req types.SetRoleRequest
	if !h.decode(w, r, &req) {
		return
	}

	role, err := h.userService.SetRole(r.Context(), userID, req.SelectedRole)
	if err != nil {
		h.fail(w, "set role", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":      "Role updated.",
		"selectedRole": role,
	})
}

func (h *AuthHandler) issueToken(w http.ResponseWriter, status int, message string, user *types.User) {
	token, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	writeJSON(w, status, types.LoginResponse{Message: message, User: user, Token: token})
}

// decode reads a JSON body into req and validates it, writing a 400 on failure.
func (h *AuthHandler) decode(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return false
	}
	return true
}

func (h *AuthHandler) fail(w http.ResponseWriter, op string, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(op+" failed", zap.Error(err))
		writeError(w, status, "Internal server error.")
		return
	}
	writeError(w, status, err.Error())
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		// First failure only
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}

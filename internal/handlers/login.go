package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, username, email, password string) (*models.LoginResult, error)
}

// LoginRequest represents the JSON body for user login. At least one of
// username or email must be present.
// swagger:model LoginRequest
type LoginRequest struct {
	// Username
	// example: john_doe
	Username string `json:"username"`

	// Email
	// example: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate by username or email, return the sanitized user with a fresh access/refresh token pair and set both token cookies
// @Tags users
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login request"
// @Success 200 {object} models.APIResponse "User logged in"
// @Failure 400 {object} models.APIResponse "Missing identifiers"
// @Failure 401 {object} models.APIResponse "Invalid credentials"
// @Failure 404 {object} models.APIResponse "User does not exist"
// @Router /users/login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		result, err := svc.Login(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		setAuthCookies(w, result.AccessToken, result.RefreshToken)
		respondJSON(w, http.StatusOK, result, "User logged in successfully")
	}
}

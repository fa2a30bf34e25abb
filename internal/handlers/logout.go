package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/middlewares"
)

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, userID uuid.UUID) error
}

// NewLogoutHandler returns an HTTP handler for user logout.
// @Summary User logout
// @Description Clears the stored refresh token and expires both token cookies. Idempotent.
// @Tags users
// @Produce json
// @Success 200 {object} models.APIResponse "User logged out"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Router /users/logout [post]
// @Security BearerAuth
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.GetClaimsFromContext(r.Context())
		if claims == nil {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if err := svc.Logout(r.Context(), claims.UserID); err != nil {
			respondServiceError(w, err)
			return
		}

		clearAuthCookies(w)
		respondJSON(w, http.StatusOK, nil, "User logged out")
	}
}

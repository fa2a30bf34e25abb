package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// CurrentUserGetter defines the interface that the service must implement.
type CurrentUserGetter interface {
	GetCurrent(ctx context.Context, userID uuid.UUID) (*models.UserResponse, error)
}

// NewCurrentUserHandler returns an HTTP handler for fetching the
// authenticated user.
// @Summary Get current user
// @Description Returns the sanitized account of the authenticated user
// @Tags users
// @Produce json
// @Success 200 {object} models.APIResponse "Current user"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Router /users/current-user [get]
// @Security BearerAuth
func NewCurrentUserHandler(svc CurrentUserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.GetClaimsFromContext(r.Context())
		if claims == nil {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := svc.GetCurrent(r.Context(), claims.UserID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, user, "Current user fetched successfully")
	}
}

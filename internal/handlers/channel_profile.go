package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// ChannelProfileGetter defines the interface that the service must implement.
type ChannelProfileGetter interface {
	GetChannelProfile(ctx context.Context, viewerID uuid.UUID, username string) (*models.ChannelProfileResponse, error)
}

// NewChannelProfileHandler returns an HTTP handler for fetching a channel profile.
// @Summary Get channel profile
// @Description Returns the public channel projection with subscriber counts and the viewer's subscription state
// @Tags users
// @Produce json
// @Param username path string true "Channel username"
// @Success 200 {object} models.APIResponse "Channel profile"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Failure 404 {object} models.APIResponse "Channel does not exist"
// @Router /users/channel/{username} [get]
// @Security BearerAuth
func NewChannelProfileHandler(svc ChannelProfileGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.GetClaimsFromContext(r.Context())
		if claims == nil {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		username := chi.URLParam(r, "username")

		profile, err := svc.GetChannelProfile(r.Context(), claims.UserID, username)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, profile, "Channel profile fetched successfully")
	}
}

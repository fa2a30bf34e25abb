package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// WatchHistoryGetter defines the interface that the service must implement.
type WatchHistoryGetter interface {
	GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]models.VideoView, error)
}

// NewWatchHistoryHandler returns an HTTP handler for fetching watch history.
// @Summary Get watch history
// @Description Returns the authenticated user's watch history, each video annotated with its owner
// @Tags users
// @Produce json
// @Success 200 {object} models.APIResponse "Watch history"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Failure 404 {object} models.APIResponse "User does not exist"
// @Router /users/watch-history [get]
// @Security BearerAuth
func NewWatchHistoryHandler(svc WatchHistoryGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.GetClaimsFromContext(r.Context())
		if claims == nil {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		history, err := svc.GetWatchHistory(r.Context(), claims.UserID)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, history, "Watch history fetched successfully")
	}
}

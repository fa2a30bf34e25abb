package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// AvatarUpdater defines the interface that the service must implement.
type AvatarUpdater interface {
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarLocalPath string) (*models.UserResponse, error)
}

// NewUpdateAvatarHandler returns an HTTP handler for replacing the avatar.
// @Summary Update avatar
// @Description Uploads a new avatar image and overwrites the stored URL
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} models.APIResponse "Updated user"
// @Failure 400 {object} models.APIResponse "Missing file or failed upload"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Router /users/update-avatar [patch]
// @Security BearerAuth
func NewUpdateAvatarHandler(svc AvatarUpdater, tempDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.GetClaimsFromContext(r.Context())
		if claims == nil {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			respondError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}

		avatarPath, err := saveUploadedFile(r, "avatar", tempDir)
		if err != nil {
			logger.Log.Errorw("failed to stage avatar", "err", err)
			respondError(w, http.StatusBadRequest, "invalid avatar file")
			return
		}

		user, err := svc.UpdateAvatar(r.Context(), claims.UserID, avatarPath)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, user, "Avatar updated successfully")
	}
}

package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// CoverImageUpdater defines the interface that the service must implement.
type CoverImageUpdater interface {
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, coverImageLocalPath string) (*models.UserResponse, error)
}

// NewUpdateCoverImageHandler returns an HTTP handler for replacing the cover image.
// @Summary Update cover image
// @Description Uploads a new cover image and overwrites the stored URL
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param coverImage formData file true "Cover image"
// @Success 200 {object} models.APIResponse "Updated user"
// @Failure 400 {object} models.APIResponse "Missing file or failed upload"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Router /users/update-cover-image [patch]
// @Security BearerAuth
func NewUpdateCoverImageHandler(svc CoverImageUpdater, tempDir string) http.HandlerFunc {
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

		coverImagePath, err := saveUploadedFile(r, "coverImage", tempDir)
		if err != nil {
			logger.Log.Errorw("failed to stage cover image", "err", err)
			respondError(w, http.StatusBadRequest, "invalid cover image file")
			return
		}

		user, err := svc.UpdateCoverImage(r.Context(), claims.UserID, coverImagePath)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, user, "Cover image updated successfully")
	}
}

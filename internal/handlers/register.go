package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, fullName, username, email, password, avatarLocalPath, coverImageLocalPath string) (*models.UserResponse, error)
}

// maxUploadSize caps the multipart form held in memory.
const maxUploadSize = 32 << 20

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account from a multipart form. Requires an avatar file; the cover image is optional. Ensures unique username and email before uploading any media.
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param fullName formData string true "Full name"
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param avatar formData file true "Avatar image"
// @Param coverImage formData file false "Cover image"
// @Success 201 {object} models.APIResponse "User successfully registered"
// @Failure 400 {object} models.APIResponse "Missing fields or failed upload"
// @Failure 409 {object} models.APIResponse "Username or email already exists"
// @Router /users/register [post]
func NewRegisterHandler(svc Registerer, tempDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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
		coverImagePath, err := saveUploadedFile(r, "coverImage", tempDir)
		if err != nil {
			logger.Log.Errorw("failed to stage cover image", "err", err)
			respondError(w, http.StatusBadRequest, "invalid cover image file")
			return
		}

		user, err := svc.Register(
			r.Context(),
			r.FormValue("fullName"),
			r.FormValue("username"),
			r.FormValue("email"),
			r.FormValue("password"),
			avatarPath,
			coverImagePath,
		)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, user, "User registered successfully")
	}
}

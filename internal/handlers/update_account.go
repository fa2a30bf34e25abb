package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// AccountUpdater defines the interface that the service must implement.
type AccountUpdater interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, fullName, email string) (*models.UserResponse, error)
}

// UpdateAccountRequest represents the JSON body for a profile update
// swagger:model UpdateAccountRequest
type UpdateAccountRequest struct {
	// Full name
	// required: true
	FullName string `json:"fullName"`

	// Email
	// required: true
	Email string `json:"email"`
}

// NewUpdateAccountHandler returns an HTTP handler for updating profile fields.
// @Summary Update account details
// @Description Overwrites full name and email of the authenticated user
// @Tags users
// @Accept json
// @Produce json
// @Param updateAccountRequest body handlers.UpdateAccountRequest true "Profile update request"
// @Success 200 {object} models.APIResponse "Updated user"
// @Failure 400 {object} models.APIResponse "Missing fields"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Router /users/update-account [patch]
// @Security BearerAuth
func NewUpdateAccountHandler(svc AccountUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.GetClaimsFromContext(r.Context())
		if claims == nil {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req UpdateAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := svc.UpdateProfile(r.Context(), claims.UserID, req.FullName, req.Email)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, user, "Account details updated successfully")
	}
}

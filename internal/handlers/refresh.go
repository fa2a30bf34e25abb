package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-user-accounts/internal/jwt"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// Refresher defines the interface that the refresh service must implement.
type Refresher interface {
	Refresh(ctx context.Context, incomingToken string) (*models.TokenPair, error)
}

// RefreshRequest carries the refresh token when it is not sent as a cookie
// swagger:model RefreshRequest
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// NewRefreshHandler returns an HTTP handler for refresh-token rotation.
// @Summary Rotate refresh token
// @Description Verifies the incoming refresh token (cookie or body), rejects stale tokens that were already rotated away, and issues a new token pair
// @Tags users
// @Accept json
// @Produce json
// @Param refreshRequest body handlers.RefreshRequest false "Refresh token when not sent as a cookie"
// @Success 200 {object} models.APIResponse "New token pair"
// @Failure 401 {object} models.APIResponse "Missing, invalid or replayed refresh token"
// @Router /users/refresh-token [post]
func NewRefreshHandler(svc Refresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var incoming string
		if cookie, err := r.Cookie(jwt.RefreshTokenCookie); err == nil {
			incoming = cookie.Value
		}
		if incoming == "" && r.Body != nil {
			var req RefreshRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
				incoming = req.RefreshToken
			}
		}

		pair, err := svc.Refresh(r.Context(), incoming)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		setAuthCookies(w, pair.AccessToken, pair.RefreshToken)
		respondJSON(w, http.StatusOK, pair, "Access token refreshed")
	}
}

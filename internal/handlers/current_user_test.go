package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/jwt"
	"github.com/sbilibin2017/gw-user-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentUserHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	svc := NewMockCurrentUserGetter(ctrl)
	svc.EXPECT().GetCurrent(gomock.Any(), userID).Return(&models.UserResponse{
		UserID:   userID,
		Username: "alice",
		Email:    "alice@example.com",
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req = req.WithContext(middlewares.WithClaims(req.Context(), &jwt.Claims{UserID: userID}))
	rec := httptest.NewRecorder()

	NewCurrentUserHandler(svc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice", data["username"])
	// The sanitized projection never carries a password hash
	assert.NotContains(t, data, "password_hash")
	assert.NotContains(t, data, "passwordHash")
}

func TestCurrentUserHandler_Unauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	rec := httptest.NewRecorder()

	NewCurrentUserHandler(NewMockCurrentUserGetter(ctrl))(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

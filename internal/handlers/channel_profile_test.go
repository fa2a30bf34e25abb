package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/jwt"
	"github.com/sbilibin2017/gw-user-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
	"github.com/sbilibin2017/gw-user-accounts/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelProfileHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	viewerID := uuid.New()

	svc := NewMockChannelProfileGetter(ctrl)
	svc.EXPECT().GetChannelProfile(gomock.Any(), viewerID, "alice").Return(&models.ChannelProfileResponse{
		Username:          "alice",
		FullName:          "Alice Smith",
		SubscribersCount:  42,
		SubscribedToCount: 7,
		IsSubscribed:      true,
	}, nil)

	router := chi.NewRouter()
	router.Get("/channel/{username}", NewChannelProfileHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/channel/alice", nil)
	req = req.WithContext(middlewares.WithClaims(req.Context(), &jwt.Claims{UserID: viewerID}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice", data["username"])
	assert.Equal(t, float64(42), data["subscribersCount"])
	assert.Equal(t, float64(7), data["channelsSubscribedToCount"])
	assert.Equal(t, true, data["isSubscribed"])
}

func TestChannelProfileHandler_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	viewerID := uuid.New()

	svc := NewMockChannelProfileGetter(ctrl)
	svc.EXPECT().GetChannelProfile(gomock.Any(), viewerID, "ghost").Return(nil, services.ErrChannelNotFound)

	router := chi.NewRouter()
	router.Get("/channel/{username}", NewChannelProfileHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/channel/ghost", nil)
	req = req.WithContext(middlewares.WithClaims(req.Context(), &jwt.Claims{UserID: viewerID}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decodeResponse(t, rec).Success)
}

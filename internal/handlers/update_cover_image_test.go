package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/jwt"
	"github.com/sbilibin2017/gw-user-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
	"github.com/sbilibin2017/gw-user-accounts/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestUpdateCoverImageHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	svc := NewMockCoverImageUpdater(ctrl)
	handler := NewUpdateCoverImageHandler(svc, t.TempDir())

	// 1. Successful replacement
	svc.EXPECT().UpdateCoverImage(gomock.Any(), userID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ uuid.UUID, coverImagePath string) (*models.UserResponse, error) {
			assert.FileExists(t, coverImagePath)
			return &models.UserResponse{
				UserID:        userID,
				Username:      "alice",
				CoverImageURL: "https://cdn.example.com/media/cover.png",
			}, nil
		})
	req := newMultipartRequest(t, "/api/v1/users/update-cover-image", nil, map[string][]byte{
		"coverImage": []byte("cover-bytes"),
	})
	req = req.WithContext(middlewares.WithClaims(req.Context(), &jwt.Claims{UserID: userID}))
	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// 2. Upload failure
	svc.EXPECT().UpdateCoverImage(gomock.Any(), userID, gomock.Any()).Return(nil, services.ErrUploadFailed)
	req = newMultipartRequest(t, "/api/v1/users/update-cover-image", nil, map[string][]byte{
		"coverImage": []byte("cover-bytes"),
	})
	req = req.WithContext(middlewares.WithClaims(req.Context(), &jwt.Claims{UserID: userID}))
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

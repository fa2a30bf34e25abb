package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/jwt"
	"github.com/sbilibin2017/gw-user-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-user-accounts/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestChangePasswordHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	svc := NewMockPasswordChanger(ctrl)
	handler := NewChangePasswordHandler(svc)

	newRequest := func(body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/change-password", bytes.NewBufferString(body))
		return req.WithContext(middlewares.WithClaims(req.Context(), &jwt.Claims{UserID: userID}))
	}

	// 1. Successful change
	svc.EXPECT().ChangePassword(gomock.Any(), userID, "old-secret", "new-secret").Return(nil)
	rec := httptest.NewRecorder()
	handler(rec, newRequest(`{"oldPassword":"old-secret","newPassword":"new-secret"}`))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeResponse(t, rec).Success)

	// 2. Wrong old password
	svc.EXPECT().ChangePassword(gomock.Any(), userID, "wrong", "new-secret").Return(services.ErrInvalidCredentials)
	rec = httptest.NewRecorder()
	handler(rec, newRequest(`{"oldPassword":"wrong","newPassword":"new-secret"}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// 3. Malformed body
	rec = httptest.NewRecorder()
	handler(rec, newRequest("{"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// 4. No claims in context
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/change-password", bytes.NewBufferString(`{}`))
	handler(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

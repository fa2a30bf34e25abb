package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/jwt"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
	"github.com/sbilibin2017/gw-user-accounts/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewMockLoginer(ctrl)
	svc.EXPECT().Login(gomock.Any(), "alice", "", "secret123").Return(&models.LoginResult{
		User:         &models.UserResponse{UserID: uuid.New(), Username: "alice"},
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}, nil)

	body := bytes.NewBufferString(`{"username":"alice","password":"secret123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", body)
	rec := httptest.NewRecorder()

	NewLoginHandler(svc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)

	// Both token cookies are set httpOnly
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	byName := map[string]*http.Cookie{}
	for _, c := range cookies {
		byName[c.Name] = c
	}
	require.Contains(t, byName, jwt.AccessTokenCookie)
	require.Contains(t, byName, jwt.RefreshTokenCookie)
	assert.Equal(t, "access-token", byName[jwt.AccessTokenCookie].Value)
	assert.Equal(t, "refresh-token", byName[jwt.RefreshTokenCookie].Value)
	assert.True(t, byName[jwt.AccessTokenCookie].HttpOnly)
	assert.True(t, byName[jwt.RefreshTokenCookie].HttpOnly)
}

func TestLoginHandler_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := NewMockLoginer(ctrl)
	handler := NewLoginHandler(svc)

	// 1. Malformed body
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// 2. Wrong password
	svc.EXPECT().Login(gomock.Any(), "alice", "", "wrong").Return(nil, services.ErrInvalidCredentials)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/users/login", bytes.NewBufferString(`{"username":"alice","password":"wrong"}`))
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// 3. Unknown account
	svc.EXPECT().Login(gomock.Any(), "ghost", "", "secret123").Return(nil, services.ErrUserDoesNotExist)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/users/login", bytes.NewBufferString(`{"username":"ghost","password":"secret123"}`))
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

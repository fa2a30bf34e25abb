package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokener struct {
	token    string
	tokenErr error
	claims   *jwt.Claims
	parseErr error
}

func (s *stubTokener) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	return s.token, s.tokenErr
}

func (s *stubTokener) ParseAccess(ctx context.Context, tokenString string) (*jwt.Claims, error) {
	return s.claims, s.parseErr
}

func TestAuthMiddleware_Success(t *testing.T) {
	userID := uuid.New()
	tokener := &stubTokener{
		token:  "access-token",
		claims: &jwt.Claims{UserID: userID, Username: "alice"},
	}

	var seen *jwt.Claims
	handler := AuthMiddleware(tokener)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, userID, seen.UserID)
	assert.Equal(t, "alice", seen.Username)
}

func TestAuthMiddleware_Unauthorized(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	})

	// 1. No token in the request
	handler := AuthMiddleware(&stubTokener{tokenErr: errors.New("no token")})(next)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"statusCode":401,"message":"Unauthorized","success":false}`, rec.Body.String())

	// 2. Token fails verification
	handler = AuthMiddleware(&stubTokener{token: "expired", parseErr: jwt.ErrTokenExpired})(next)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetClaimsFromContext_Missing(t *testing.T) {
	assert.Nil(t, GetClaimsFromContext(context.Background()))
}

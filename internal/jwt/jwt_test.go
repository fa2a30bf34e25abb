package jwt_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/jwt"
	"github.com/stretchr/testify/assert"
)

func newJWT() *jwt.JWT {
	return jwt.New("access_secret", "refresh_secret", time.Minute, time.Hour)
}

func TestGenerateAndParseAccess(t *testing.T) {
	j := newJWT()
	ctx := context.Background()
	userID := uuid.New()

	token, err := j.GenerateAccess(ctx, userID, "alice@example.com", "alice", "Alice A")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := j.ParseAccess(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "Alice A", claims.FullName)
}

func TestGenerateAndParseRefresh(t *testing.T) {
	j := newJWT()
	ctx := context.Background()
	userID := uuid.New()

	token, err := j.GenerateRefresh(ctx, userID)
	assert.NoError(t, err)

	claims, err := j.ParseRefresh(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Empty(t, claims.Email)
	assert.Empty(t, claims.Username)
}

func TestParseExpired(t *testing.T) {
	j := jwt.New("access_secret", "refresh_secret", -time.Minute, -time.Minute)
	ctx := context.Background()

	token, err := j.GenerateAccess(ctx, uuid.New(), "a@x.com", "alice", "")
	assert.NoError(t, err)

	_, err = j.ParseAccess(ctx, token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseWrongSecret(t *testing.T) {
	j := newJWT()
	other := jwt.New("other_secret", "other_secret", time.Minute, time.Hour)
	ctx := context.Background()

	token, err := j.GenerateAccess(ctx, uuid.New(), "a@x.com", "alice", "")
	assert.NoError(t, err)

	_, err = other.ParseAccess(ctx, token)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}

func TestParseWrongTokenClass(t *testing.T) {
	// An access token must not verify as a refresh token: the secrets
	// are independent.
	j := newJWT()
	ctx := context.Background()

	token, err := j.GenerateAccess(ctx, uuid.New(), "a@x.com", "alice", "")
	assert.NoError(t, err)

	_, err = j.ParseRefresh(ctx, token)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}

func TestParseMalformed(t *testing.T) {
	j := newJWT()
	_, err := j.ParseAccess(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}

func TestGetTokenFromRequest(t *testing.T) {
	j := newJWT()
	ctx := context.Background()

	tests := []struct {
		name      string
		setup     func(r *http.Request)
		wantToken string
		wantErr   bool
	}{
		{
			name:      "bearer header",
			setup:     func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc123") },
			wantToken: "abc123",
		},
		{
			name:      "cookie fallback",
			setup:     func(r *http.Request) { r.AddCookie(&http.Cookie{Name: jwt.AccessTokenCookie, Value: "xyz789"}) },
			wantToken: "xyz789",
		},
		{
			name:    "malformed header",
			setup:   func(r *http.Request) { r.Header.Set("Authorization", "abc123") },
			wantErr: true,
		},
		{
			name:    "missing",
			setup:   func(r *http.Request) {},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(r)

			token, err := j.GetTokenFromRequest(ctx, r)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
			}
		})
	}
}

package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token errors. Verification fails closed: anything that is not a clean
// expiry collapses into ErrTokenInvalid.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// AccessTokenCookie and RefreshTokenCookie are the cookie names the tokens
// travel in alongside the Authorization header.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// Claims carries the identity encoded into tokens. Access tokens fill all
// fields, refresh tokens only UserID.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email,omitempty"`
	Username string    `json:"username,omitempty"`
	FullName string    `json:"full_name,omitempty"`
}

// JWT issues and verifies access and refresh tokens. The two classes are
// signed with independent secrets and expirations.
type JWT struct {
	AccessSecretKey  string        // Secret key for signing access tokens
	RefreshSecretKey string        // Secret key for signing refresh tokens
	AccessExp        time.Duration // Access token lifetime
	RefreshExp       time.Duration // Refresh token lifetime
}

// New creates a new JWT instance
func New(accessSecretKey, refreshSecretKey string, accessExp, refreshExp time.Duration) *JWT {
	return &JWT{
		AccessSecretKey:  accessSecretKey,
		RefreshSecretKey: refreshSecretKey,
		AccessExp:        accessExp,
		RefreshExp:       refreshExp,
	}
}

// GenerateAccess creates a short-lived access token carrying the user identity.
func (j *JWT) GenerateAccess(ctx context.Context, userID uuid.UUID, email, username, fullName string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.AccessExp)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   userID,
		Email:    email,
		Username: username,
		FullName: fullName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.AccessSecretKey))
}

// GenerateRefresh creates a long-lived refresh token carrying only the user id.
func (j *JWT) GenerateRefresh(ctx context.Context, userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.RefreshExp)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.RefreshSecretKey))
}

// ParseAccess verifies an access token and returns its claims.
func (j *JWT) ParseAccess(ctx context.Context, tokenString string) (*Claims, error) {
	return parse(tokenString, j.AccessSecretKey)
}

// ParseRefresh verifies a refresh token and returns its claims.
func (j *JWT) ParseRefresh(ctx context.Context, tokenString string) (*Claims, error) {
	return parse(tokenString, j.RefreshSecretKey)
}

func parse(tokenString, secretKey string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// GetTokenFromRequest extracts the access token from the Authorization
// header, falling back to the accessToken cookie.
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", errors.New("invalid authorization header format")
		}
		return parts[1], nil
	}

	cookie, err := r.Cookie(AccessTokenCookie)
	if err != nil || cookie.Value == "" {
		return "", errors.New("authorization header missing")
	}
	return cookie.Value, nil
}

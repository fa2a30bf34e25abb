package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID        uuid.UUID `db:"user_id"`         // Primary key
	Username      string    `db:"username"`        // Unique username, stored lower-cased
	Email         string    `db:"email"`           // Unique email, stored lower-cased
	FullName      string    `db:"full_name"`       // Display name
	AvatarURL     string    `db:"avatar_url"`      // Required avatar image URL
	CoverImageURL string    `db:"cover_image_url"` // Optional cover image URL
	PasswordHash  string    `db:"password_hash"`   // Hashed password
	RefreshToken  *string   `db:"refresh_token"`   // Current refresh token, NULL when logged out
	CreatedAt     time.Time `db:"created_at"`      // Creation timestamp
	UpdatedAt     time.Time `db:"updated_at"`      // Last update timestamp
}

// UserResponse is the sanitized user projection returned by the API.
// It never carries the password hash or the stored refresh token.
// swagger:model UserResponse
type UserResponse struct {
	UserID        uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName,omitempty"`
	AvatarURL     string    `json:"avatar"`
	CoverImageURL string    `json:"coverImage,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SanitizeUser converts a database record into the public projection.
func SanitizeUser(u *UserDB) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		UserID:        u.UserID,
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.FullName,
		AvatarURL:     u.AvatarURL,
		CoverImageURL: u.CoverImageURL,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

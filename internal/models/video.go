package models

import (
	"time"

	"github.com/google/uuid"
)

// VideoDB represents a video record in the database
type VideoDB struct {
	VideoID      uuid.UUID `db:"video_id"`      // Primary key
	OwnerID      uuid.UUID `db:"owner_id"`      // Uploading user
	Title        string    `db:"title"`         // Video title
	Description  string    `db:"description"`   // Video description
	VideoURL     string    `db:"video_url"`     // Durable media URL
	ThumbnailURL string    `db:"thumbnail_url"` // Durable thumbnail URL
	Duration     float64   `db:"duration"`      // Duration in seconds
	Views        int64     `db:"views"`         // View counter
	CreatedAt    time.Time `db:"created_at"`    // Creation timestamp
}

// WatchHistoryRow is the flattened result of the watch-history join:
// one video per row with its owner columns aliased alongside.
type WatchHistoryRow struct {
	VideoID        uuid.UUID `db:"video_id"`
	Title          string    `db:"title"`
	Description    string    `db:"description"`
	VideoURL       string    `db:"video_url"`
	ThumbnailURL   string    `db:"thumbnail_url"`
	Duration       float64   `db:"duration"`
	Views          int64     `db:"views"`
	CreatedAt      time.Time `db:"created_at"`
	OwnerFullName  string    `db:"owner_full_name"`
	OwnerUsername  string    `db:"owner_username"`
	OwnerAvatarURL string    `db:"owner_avatar_url"`
}

// VideoOwner is the reduced owner projection attached to each history entry.
// swagger:model VideoOwner
type VideoOwner struct {
	FullName  string `json:"fullName,omitempty"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar"`
}

// VideoView is a watch-history entry annotated with its owner.
// swagger:model VideoView
type VideoView struct {
	VideoID      uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	VideoURL     string     `json:"videoFile"`
	ThumbnailURL string     `json:"thumbnail"`
	Duration     float64    `json:"duration"`
	Views        int64      `json:"views"`
	CreatedAt    time.Time  `json:"createdAt"`
	Owner        VideoOwner `json:"owner"`
}

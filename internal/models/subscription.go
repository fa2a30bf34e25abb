package models

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionDB represents a subscriber -> channel edge in the database
type SubscriptionDB struct {
	SubscriptionID uuid.UUID `db:"subscription_id"` // Primary key
	SubscriberID   uuid.UUID `db:"subscriber_id"`   // User who subscribes
	ChannelID      uuid.UUID `db:"channel_id"`      // User being subscribed to
	CreatedAt      time.Time `db:"created_at"`      // Creation timestamp
}

// ChannelStats holds the aggregate counts computed over subscription edges.
type ChannelStats struct {
	SubscribersCount  int64 `db:"subscribers_count"`   // Edges where the channel is the target
	SubscribedToCount int64 `db:"subscribed_to_count"` // Edges where the channel is the subscriber
	IsSubscribed      bool  `db:"is_subscribed"`       // Whether the viewer subscribes to the channel
}

// ChannelProfileResponse is the public projection of a channel profile.
// swagger:model ChannelProfileResponse
type ChannelProfileResponse struct {
	FullName          string `json:"fullName,omitempty"`
	Username          string `json:"username"`
	SubscribersCount  int64  `json:"subscribersCount"`
	SubscribedToCount int64  `json:"channelsSubscribedToCount"`
	IsSubscribed      bool   `json:"isSubscribed"`
	AvatarURL         string `json:"avatar"`
	CoverImageURL     string `json:"coverImage,omitempty"`
	Email             string `json:"email"`
}

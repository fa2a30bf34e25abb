package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// ChannelProfileCacheRepository provides cached channel profiles using Redis.
// The cache key includes the viewer because isSubscribed is viewer-specific.
type ChannelProfileCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached profiles
}

// NewChannelProfileCacheRepository creates a new repository instance with TTL
func NewChannelProfileCacheRepository(client *redis.Client, expiration time.Duration) *ChannelProfileCacheRepository {
	return &ChannelProfileCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func channelProfileKey(username string, viewerID uuid.UUID) string {
	return fmt.Sprintf("channel_profile:%s:%s", username, viewerID)
}

// GetChannelProfile fetches a cached channel profile. A cache miss is an error.
func (r *ChannelProfileCacheRepository) GetChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*models.ChannelProfileResponse, error) {
	key := channelProfileKey(username, viewerID)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"error", err,
		)
		if err == redis.Nil {
			return nil, fmt.Errorf("channel profile not found in cache for %s", username)
		}
		return nil, err
	}

	var profile models.ChannelProfileResponse
	if err := json.Unmarshal([]byte(val), &profile); err != nil {
		logger.Log.Infow(
			"key", key,
			"value", val,
			"error", err,
		)
		return nil, err
	}

	logger.Log.Infow(
		"key", key,
		"result", profile.Username,
		"error", nil,
	)

	return &profile, nil
}

// SetChannelProfile caches a channel profile in Redis with expiration
func (r *ChannelProfileCacheRepository) SetChannelProfile(ctx context.Context, username string, viewerID uuid.UUID, profile *models.ChannelProfileResponse) error {
	key := channelProfileKey(username, viewerID)

	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"result", "ok",
		"error", err,
	)

	return err
}

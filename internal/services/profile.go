package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// SubscriptionReader computes subscription aggregates for a channel.
type SubscriptionReader interface {
	GetChannelStats(ctx context.Context, channelID, viewerID uuid.UUID) (*models.ChannelStats, error)
}

// VideoReader resolves watch-history references to video rows with owners.
type VideoReader interface {
	GetWatchHistoryByUserID(ctx context.Context, userID uuid.UUID) ([]models.WatchHistoryRow, error)
}

// ChannelProfileCache caches assembled channel profiles.
type ChannelProfileCache interface {
	GetChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*models.ChannelProfileResponse, error)
	SetChannelProfile(ctx context.Context, username string, viewerID uuid.UUID, profile *models.ChannelProfileResponse) error
}

// ProfileService builds read-only aggregated views over accounts,
// subscriptions and videos.
type ProfileService struct {
	reader        UserReader
	subscriptions SubscriptionReader
	videos        VideoReader
	cache         ChannelProfileCache
}

// NewProfileService creates a new ProfileService instance.
func NewProfileService(
	reader UserReader,
	subscriptions SubscriptionReader,
	videos VideoReader,
	cache ChannelProfileCache,
) *ProfileService {
	return &ProfileService{
		reader:        reader,
		subscriptions: subscriptions,
		videos:        videos,
		cache:         cache,
	}
}

// GetChannelProfile resolves a channel by username and annotates it with
// subscription aggregates from the viewer's perspective.
func (svc *ProfileService) GetChannelProfile(ctx context.Context, viewerID uuid.UUID, username string) (*models.ChannelProfileResponse, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, ErrAllFieldsRequired
	}

	if svc.cache != nil {
		if cached, err := svc.cache.GetChannelProfile(ctx, username, viewerID); err == nil && cached != nil {
			return cached, nil
		}
	}

	channel, err := svc.reader.GetByUsernameOrEmail(ctx, &username, nil)
	if err != nil {
		logger.Log.Errorw("failed to get channel", "username", username, "error", err)
		return nil, err
	}
	if channel == nil {
		return nil, ErrChannelNotFound
	}

	stats, err := svc.subscriptions.GetChannelStats(ctx, channel.UserID, viewerID)
	if err != nil {
		logger.Log.Errorw("failed to get channel stats", "username", username, "error", err)
		return nil, err
	}

	profile := &models.ChannelProfileResponse{
		FullName:          channel.FullName,
		Username:          channel.Username,
		SubscribersCount:  stats.SubscribersCount,
		SubscribedToCount: stats.SubscribedToCount,
		IsSubscribed:      stats.IsSubscribed,
		AvatarURL:         channel.AvatarURL,
		CoverImageURL:     channel.CoverImageURL,
		Email:             channel.Email,
	}

	if svc.cache != nil {
		if err := svc.cache.SetChannelProfile(ctx, username, viewerID, profile); err != nil {
			logger.Log.Warnw("failed to cache channel profile", "username", username, "error", err)
		}
	}

	return profile, nil
}

// GetWatchHistory resolves the user's watch history to annotated video views.
// An existing account with no history yields an empty slice, not an error.
func (svc *ProfileService) GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]models.VideoView, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserDoesNotExist
	}

	rows, err := svc.videos.GetWatchHistoryByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get watch history", "user_id", userID, "error", err)
		return nil, err
	}

	views := make([]models.VideoView, 0, len(rows))
	for _, row := range rows {
		views = append(views, models.VideoView{
			VideoID:      row.VideoID,
			Title:        row.Title,
			Description:  row.Description,
			VideoURL:     row.VideoURL,
			ThumbnailURL: row.ThumbnailURL,
			Duration:     row.Duration,
			Views:        row.Views,
			CreatedAt:    row.CreatedAt,
			Owner: models.VideoOwner{
				FullName:  row.OwnerFullName,
				Username:  row.OwnerUsername,
				AvatarURL: row.OwnerAvatarURL,
			},
		})
	}

	return views, nil
}

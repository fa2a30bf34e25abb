package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subscribe(t *testing.T, db *sqlx.DB, subscriberID, channelID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO subscriptions (subscriber_id, channel_id) VALUES ($1, $2)`,
		subscriberID, channelID,
	)
	require.NoError(t, err)
}

func TestSubscriptionReadRepository_GetChannelStats(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	repo := NewSubscriptionReadRepository(db)
	ctx := context.Background()

	channel := mustSaveUser(t, writeRepo, "channel", "channel@example.com")
	viewer := mustSaveUser(t, writeRepo, "viewer", "viewer@example.com")
	other := mustSaveUser(t, writeRepo, "other", "other@example.com")

	// viewer and other subscribe to channel; channel subscribes to other
	subscribe(t, db, viewer.UserID, channel.UserID)
	subscribe(t, db, other.UserID, channel.UserID)
	subscribe(t, db, channel.UserID, other.UserID)

	t.Run("SubscribedViewer", func(t *testing.T) {
		stats, err := repo.GetChannelStats(ctx, channel.UserID, viewer.UserID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.SubscribersCount)
		assert.Equal(t, int64(1), stats.SubscribedToCount)
		assert.True(t, stats.IsSubscribed)
	})

	t.Run("NonSubscribedViewer", func(t *testing.T) {
		stranger := mustSaveUser(t, writeRepo, "stranger", "stranger@example.com")
		stats, err := repo.GetChannelStats(ctx, channel.UserID, stranger.UserID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.SubscribersCount)
		assert.False(t, stats.IsSubscribed)
	})

	t.Run("ChannelWithoutEdges", func(t *testing.T) {
		lonely := mustSaveUser(t, writeRepo, "lonely", "lonely@example.com")
		stats, err := repo.GetChannelStats(ctx, lonely.UserID, viewer.UserID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), stats.SubscribersCount)
		assert.Equal(t, int64(0), stats.SubscribedToCount)
		assert.False(t, stats.IsSubscribed)
	})
}

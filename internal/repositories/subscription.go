package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

type SubscriptionReadRepository struct {
	db *sqlx.DB
}

func NewSubscriptionReadRepository(db *sqlx.DB) *SubscriptionReadRepository {
	return &SubscriptionReadRepository{db: db}
}

// GetChannelStats computes subscriber counts for a channel and whether the
// viewer subscribes to it, in a single aggregate query.
func (r *SubscriptionReadRepository) GetChannelStats(ctx context.Context, channelID, viewerID uuid.UUID) (*models.ChannelStats, error) {
	const query = `
		SELECT
			COUNT(*) FILTER (WHERE channel_id = $1)    AS subscribers_count,
			COUNT(*) FILTER (WHERE subscriber_id = $1) AS subscribed_to_count,
			COALESCE(BOOL_OR(channel_id = $1 AND subscriber_id = $2), FALSE) AS is_subscribed
		FROM subscriptions
		WHERE channel_id = $1 OR subscriber_id = $1
	`

	var stats models.ChannelStats
	err := r.db.GetContext(ctx, &stats, query, channelID, viewerID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{channelID, viewerID},
		"result", stats,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &stats, nil
}

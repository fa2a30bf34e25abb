package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

type VideoReadRepository struct {
	db *sqlx.DB
}

func NewVideoReadRepository(db *sqlx.DB) *VideoReadRepository {
	return &VideoReadRepository{db: db}
}

// GetWatchHistoryByUserID resolves a user's watch history to video rows, each
// joined with its owner's reduced projection. Rows come back in insertion
// order.
func (r *VideoReadRepository) GetWatchHistoryByUserID(ctx context.Context, userID uuid.UUID) ([]models.WatchHistoryRow, error) {
	const query = `
		SELECT v.video_id, v.title, v.description, v.video_url, v.thumbnail_url,
		       v.duration, v.views, v.created_at,
		       o.full_name  AS owner_full_name,
		       o.username   AS owner_username,
		       o.avatar_url AS owner_avatar_url
		FROM watch_history wh
		JOIN videos v ON v.video_id = wh.video_id
		JOIN users  o ON o.user_id = v.owner_id
		WHERE wh.user_id = $1
		ORDER BY wh.watched_at
	`

	var rows []models.WatchHistoryRow
	err := r.db.SelectContext(ctx, &rows, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(rows),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return rows, nil
}

package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertVideo(t *testing.T, db *sqlx.DB, ownerID uuid.UUID, title string) uuid.UUID {
	t.Helper()

	var videoID uuid.UUID
	err := db.Get(&videoID,
		`INSERT INTO videos (owner_id, title, video_url, thumbnail_url, duration, views)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING video_id`,
		ownerID, title,
		"https://cdn.example.com/media/"+title+".mp4",
		"https://cdn.example.com/media/"+title+".png",
		120.5, 999,
	)
	require.NoError(t, err)
	return videoID
}

func insertWatch(t *testing.T, db *sqlx.DB, userID, videoID uuid.UUID, watchedAt time.Time) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO watch_history (user_id, video_id, watched_at) VALUES ($1, $2, $3)`,
		userID, videoID, watchedAt,
	)
	require.NoError(t, err)
}

func TestVideoReadRepository_GetWatchHistoryByUserID(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	repo := NewVideoReadRepository(db)
	ctx := context.Background()

	owner := mustSaveUser(t, writeRepo, "creator", "creator@example.com")
	watcher := mustSaveUser(t, writeRepo, "watcher", "watcher@example.com")

	first := insertVideo(t, db, owner.UserID, "first")
	second := insertVideo(t, db, owner.UserID, "second")

	base := time.Now().Add(-time.Hour)
	insertWatch(t, db, watcher.UserID, second, base.Add(time.Minute))
	insertWatch(t, db, watcher.UserID, first, base)

	rows, err := repo.GetWatchHistoryByUserID(ctx, watcher.UserID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Ordered by watched_at, not by insertion
	assert.Equal(t, first, rows[0].VideoID)
	assert.Equal(t, second, rows[1].VideoID)

	assert.Equal(t, "first", rows[0].Title)
	assert.Equal(t, "creator", rows[0].OwnerUsername)
	assert.Equal(t, "Test User", rows[0].OwnerFullName)
	assert.NotEmpty(t, rows[0].OwnerAvatarURL)
	assert.Equal(t, int64(999), rows[0].Views)

	// A user with no history yields no rows and no error
	rows, err = repo.GetWatchHistoryByUserID(ctx, owner.UserID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

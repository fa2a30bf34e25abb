package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

const userColumns = `user_id, username, email, full_name, avatar_url, cover_image_url, password_hash, refresh_token, created_at, updated_at`

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByUsernameOrEmail finds a user matching either identifier. Nil arguments
// are skipped; a miss returns (nil, nil).
func (r *UserReadRepository) GetByUsernameOrEmail(ctx context.Context, username, email *string) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1::VARCHAR IS NOT NULL AND username = $1)
		   OR ($2::VARCHAR IS NOT NULL AND email = $2)
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, username, email)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username, email},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByID finds a user by primary key. A miss returns (nil, nil).
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE user_id = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewUserWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// executor returns the transaction bound to the context when present,
// otherwise the pooled connection.
func (r *UserWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new user and returns the stored row.
func (r *UserWriteRepository) Save(ctx context.Context, user *models.UserDB) (*models.UserDB, error) {
	query := `
		INSERT INTO users (username, email, full_name, avatar_url, cover_image_url, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + userColumns + `
	`
	args := []any{user.Username, user.Email, user.FullName, user.AvatarURL, user.CoverImageURL, user.PasswordHash}

	var created models.UserDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &created, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{user.Username, user.Email},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &created, nil
}

// SetRefreshToken overwrites the stored refresh token unconditionally.
// A nil token clears the active session (logout).
func (r *UserWriteRepository) SetRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error {
	query := `
		UPDATE users
		SET refresh_token = $2, updated_at = NOW()
		WHERE user_id = $1
	`

	_, err := r.executor(ctx).ExecContext(ctx, query, userID, token)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	return err
}

// CompareAndSwapRefreshToken replaces the stored refresh token only if it
// still equals oldToken. The guarded UPDATE is the atomic check-then-set that
// makes rotation replay-safe under concurrent refresh calls.
func (r *UserWriteRepository) CompareAndSwapRefreshToken(ctx context.Context, userID uuid.UUID, oldToken, newToken string) (bool, error) {
	query := `
		UPDATE users
		SET refresh_token = $3, updated_at = NOW()
		WHERE user_id = $1 AND refresh_token = $2
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, userID, oldToken, newToken)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return rowsAffected == 1, nil
}

// UpdatePassword replaces the stored password hash.
func (r *UserWriteRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE user_id = $1
	`

	_, err := r.executor(ctx).ExecContext(ctx, query, userID, passwordHash)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	return err
}

// UpdateProfile overwrites full name and email and returns the updated row.
func (r *UserWriteRepository) UpdateProfile(ctx context.Context, userID uuid.UUID, fullName, email string) (*models.UserDB, error) {
	query := `
		UPDATE users
		SET full_name = $2, email = $3, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + userColumns + `
	`

	var updated models.UserDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &updated, query, userID, fullName, email)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, fullName, email},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateAvatarURL overwrites the avatar URL and returns the updated row.
func (r *UserWriteRepository) UpdateAvatarURL(ctx context.Context, userID uuid.UUID, avatarURL string) (*models.UserDB, error) {
	query := `
		UPDATE users
		SET avatar_url = $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + userColumns + `
	`

	var updated models.UserDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &updated, query, userID, avatarURL)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateCoverImageURL overwrites the cover image URL and returns the updated row.
func (r *UserWriteRepository) UpdateCoverImageURL(ctx context.Context, userID uuid.UUID, coverImageURL string) (*models.UserDB, error) {
	query := `
		UPDATE users
		SET cover_image_url = $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + userColumns + `
	`

	var updated models.UserDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &updated, query, userID, coverImageURL)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &updated, nil
}

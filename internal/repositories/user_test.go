package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-user-accounts/internal/migrations"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)

	require.NoError(t, migrations.Up(db))

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

func mustSaveUser(t *testing.T, repo *UserWriteRepository, username, email string) *models.UserDB {
	t.Helper()

	user, err := repo.Save(context.Background(), &models.UserDB{
		Username:     username,
		Email:        email,
		FullName:     "Test User",
		AvatarURL:    "https://cdn.example.com/media/" + username + ".png",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return user
}

func TestUserWriteRepository_Save(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	repo := NewUserWriteRepository(db, nil)
	ctx := context.Background()

	created, err := repo.Save(ctx, &models.UserDB{
		Username:      "alice",
		Email:         "alice@example.com",
		FullName:      "Alice Smith",
		AvatarURL:     "https://cdn.example.com/media/a.png",
		CoverImageURL: "https://cdn.example.com/media/c.png",
		PasswordHash:  "hash",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.UserID)
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.Nil(t, created.RefreshToken)
	assert.False(t, created.CreatedAt.IsZero())

	// Duplicate username violates the unique constraint
	_, err = repo.Save(ctx, &models.UserDB{
		Username:     "alice",
		Email:        "other@example.com",
		AvatarURL:    "https://cdn.example.com/media/o.png",
		PasswordHash: "hash",
	})
	assert.Error(t, err)
}

func TestUserReadRepository_GetByUsernameOrEmail(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	mustSaveUser(t, writeRepo, "charlie", "charlie@example.com")
	mustSaveUser(t, writeRepo, "dave", "dave@example.com")

	t.Run("ByUsername", func(t *testing.T) {
		username := "charlie"
		user, err := readRepo.GetByUsernameOrEmail(ctx, &username, nil)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "charlie", user.Username)
	})

	t.Run("ByEmail", func(t *testing.T) {
		email := "dave@example.com"
		user, err := readRepo.GetByUsernameOrEmail(ctx, nil, &email)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "dave", user.Username)
	})

	t.Run("EitherMatches", func(t *testing.T) {
		// Username of one account and email of another still finds a row
		username := "charlie"
		email := "unknown@example.com"
		user, err := readRepo.GetByUsernameOrEmail(ctx, &username, &email)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "charlie", user.Username)
	})

	t.Run("NotFound", func(t *testing.T) {
		username := "nonexistent"
		user, err := readRepo.GetByUsernameOrEmail(ctx, &username, nil)
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserReadRepository_GetByID(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	created := mustSaveUser(t, writeRepo, "erin", "erin@example.com")

	user, err := readRepo.GetByID(ctx, created.UserID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, created.UserID, user.UserID)

	missing, err := readRepo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserWriteRepository_RefreshTokenLifecycle(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	user := mustSaveUser(t, writeRepo, "frank", "frank@example.com")

	// Login stores a token
	token := "refresh-1"
	require.NoError(t, writeRepo.SetRefreshToken(ctx, user.UserID, &token))

	stored, err := readRepo.GetByID(ctx, user.UserID)
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, "refresh-1", *stored.RefreshToken)

	// Rotation swaps the token atomically
	swapped, err := writeRepo.CompareAndSwapRefreshToken(ctx, user.UserID, "refresh-1", "refresh-2")
	require.NoError(t, err)
	assert.True(t, swapped)

	// Replaying the rotated-away token fails
	swapped, err = writeRepo.CompareAndSwapRefreshToken(ctx, user.UserID, "refresh-1", "refresh-3")
	require.NoError(t, err)
	assert.False(t, swapped)

	stored, err = readRepo.GetByID(ctx, user.UserID)
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, "refresh-2", *stored.RefreshToken)

	// Logout clears the token
	require.NoError(t, writeRepo.SetRefreshToken(ctx, user.UserID, nil))
	stored, err = readRepo.GetByID(ctx, user.UserID)
	require.NoError(t, err)
	assert.Nil(t, stored.RefreshToken)

	// CAS against a cleared token also fails
	swapped, err = writeRepo.CompareAndSwapRefreshToken(ctx, user.UserID, "refresh-2", "refresh-4")
	require.NoError(t, err)
	assert.False(t, swapped)
}

func TestUserWriteRepository_Updates(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	ctx := context.Background()

	user := mustSaveUser(t, writeRepo, "grace", "grace@example.com")

	require.NoError(t, writeRepo.UpdatePassword(ctx, user.UserID, "new-hash"))

	updated, err := writeRepo.UpdateProfile(ctx, user.UserID, "Grace Hopper", "grace.h@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", updated.FullName)
	assert.Equal(t, "grace.h@example.com", updated.Email)
	assert.Equal(t, "new-hash", updated.PasswordHash)

	updated, err = writeRepo.UpdateAvatarURL(ctx, user.UserID, "https://cdn.example.com/media/new-avatar.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/media/new-avatar.png", updated.AvatarURL)

	updated, err = writeRepo.UpdateCoverImageURL(ctx, user.UserID, "https://cdn.example.com/media/new-cover.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/media/new-cover.png", updated.CoverImageURL)
}

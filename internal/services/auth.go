package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/hash"
	"github.com/sbilibin2017/gw-user-accounts/internal/jwt"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
	"github.com/segmentio/kafka-go"
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsernameOrEmail(ctx context.Context, username *string, email *string) (*models.UserDB, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user *models.UserDB) (*models.UserDB, error)
	SetRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error
	CompareAndSwapRefreshToken(ctx context.Context, userID uuid.UUID, oldToken, newToken string) (bool, error)
}

// TokenGenerator defines the token operations the auth service depends on.
type TokenGenerator interface {
	GenerateAccess(ctx context.Context, userID uuid.UUID, email, username, fullName string) (string, error)
	GenerateRefresh(ctx context.Context, userID uuid.UUID) (string, error)
	ParseRefresh(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// MediaUploader pushes a staged local file to the object store and returns
// its durable URL.
type MediaUploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// AuthService handles registration, login, logout and refresh rotation.
type AuthService struct {
	reader      UserReader
	writer      UserWriter
	jwt         TokenGenerator
	uploader    MediaUploader
	kafkaWriter KafkaWriter
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	jwt TokenGenerator,
	uploader MediaUploader,
	kafkaWriter KafkaWriter,
) *AuthService {
	return &AuthService{
		reader:      reader,
		writer:      writer,
		jwt:         jwt,
		uploader:    uploader,
		kafkaWriter: kafkaWriter,
	}
}

// publishEvent publishes an account lifecycle event to Kafka. Publishing is
// best effort and never fails the calling operation.
func (svc *AuthService) publishEvent(ctx context.Context, userID uuid.UUID, action string) {
	if svc.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "action", action)
		return
	}

	event := models.AccountEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		UserID:    userID.String(),
		Action:    action,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal account event", "action", action, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
	}

	if err := svc.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish account event", "action", action, "error", err)
	} else {
		logger.Log.Infow("account event published", "action", action, "user_id", event.UserID)
	}
}

// Register creates a new account. The uniqueness check runs before any media
// upload so a conflicting registration never wastes an upload. The returned
// projection carries neither the password hash nor a refresh token.
func (svc *AuthService) Register(ctx context.Context, fullName, username, email, password, avatarLocalPath, coverImageLocalPath string) (*models.UserResponse, error) {
	fullName = strings.TrimSpace(fullName)
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	if fullName == "" || username == "" || email == "" || strings.TrimSpace(password) == "" {
		return nil, ErrAllFieldsRequired
	}
	if avatarLocalPath == "" {
		return nil, ErrAvatarFileRequired
	}

	existing, err := svc.reader.GetByUsernameOrEmail(ctx, &username, &email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "error", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Errorw("user already exists", "username", username, "email", email)
		return nil, ErrUserAlreadyExists
	}

	avatarURL, err := svc.uploader.Upload(ctx, avatarLocalPath)
	if err != nil || avatarURL == "" {
		logger.Log.Errorw("failed to upload avatar", "error", err)
		return nil, ErrUploadFailed
	}

	var coverImageURL string
	if coverImageLocalPath != "" {
		coverImageURL, err = svc.uploader.Upload(ctx, coverImageLocalPath)
		if err != nil {
			// The cover image is optional, a failed upload does not
			// abort registration.
			logger.Log.Warnw("failed to upload cover image", "error", err)
			coverImageURL = ""
		}
	}

	hashedPassword, err := hash.Hash(password)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "error", err)
		return nil, err
	}

	created, err := svc.writer.Save(ctx, &models.UserDB{
		Username:      username,
		Email:         email,
		FullName:      fullName,
		AvatarURL:     avatarURL,
		CoverImageURL: coverImageURL,
		PasswordHash:  hashedPassword,
	})
	if err != nil {
		logger.Log.Errorw("failed to save user", "error", err)
		return nil, err
	}

	svc.publishEvent(ctx, created.UserID, "registered")

	return models.SanitizeUser(created), nil
}

// Login authenticates a user by username or email and issues a fresh token
// pair. The stored refresh token is overwritten, which implicitly invalidates
// the previous session.
func (svc *AuthService) Login(ctx context.Context, username, email, password string) (*models.LoginResult, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" && email == "" {
		return nil, ErrAllFieldsRequired
	}

	var usernameArg, emailArg *string
	if username != "" {
		usernameArg = &username
	}
	if email != "" {
		emailArg = &email
	}

	user, err := svc.reader.GetByUsernameOrEmail(ctx, usernameArg, emailArg)
	if err != nil {
		logger.Log.Errorw("failed to get user", "error", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "username", username, "email", email)
		return nil, ErrUserDoesNotExist
	}

	if !hash.Verify(password, user.PasswordHash) {
		logger.Log.Errorw("invalid credentials", "username", user.Username)
		return nil, ErrInvalidCredentials
	}

	accessToken, err := svc.jwt.GenerateAccess(ctx, user.UserID, user.Email, user.Username, user.FullName)
	if err != nil {
		logger.Log.Errorw("failed to generate access token", "error", err)
		return nil, err
	}
	refreshToken, err := svc.jwt.GenerateRefresh(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate refresh token", "error", err)
		return nil, err
	}

	if err := svc.writer.SetRefreshToken(ctx, user.UserID, &refreshToken); err != nil {
		logger.Log.Errorw("failed to store refresh token", "error", err)
		return nil, err
	}

	svc.publishEvent(ctx, user.UserID, "logged_in")

	return &models.LoginResult{
		User:         models.SanitizeUser(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout clears the stored refresh token. Logging out an already logged-out
// account is a no-op.
func (svc *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := svc.writer.SetRefreshToken(ctx, userID, nil); err != nil {
		logger.Log.Errorw("failed to clear refresh token", "user_id", userID, "error", err)
		return err
	}

	svc.publishEvent(ctx, userID, "logged_out")
	return nil
}

// Refresh rotates a refresh token: the incoming token must verify AND still
// be the stored one. The swap is a single conditional update, so a stale
// token presented after rotation is rejected even if it has not expired.
func (svc *AuthService) Refresh(ctx context.Context, incomingToken string) (*models.TokenPair, error) {
	if incomingToken == "" {
		return nil, ErrUnauthorized
	}

	claims, err := svc.jwt.ParseRefresh(ctx, incomingToken)
	if err != nil {
		logger.Log.Errorw("failed to verify refresh token", "error", err)
		return nil, ErrInvalidRefreshToken
	}

	user, err := svc.reader.GetByID(ctx, claims.UserID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "error", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Errorw("refresh token user does not exist", "user_id", claims.UserID)
		return nil, ErrInvalidRefreshToken
	}

	accessToken, err := svc.jwt.GenerateAccess(ctx, user.UserID, user.Email, user.Username, user.FullName)
	if err != nil {
		logger.Log.Errorw("failed to generate access token", "error", err)
		return nil, err
	}
	refreshToken, err := svc.jwt.GenerateRefresh(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate refresh token", "error", err)
		return nil, err
	}

	swapped, err := svc.writer.CompareAndSwapRefreshToken(ctx, user.UserID, incomingToken, refreshToken)
	if err != nil {
		logger.Log.Errorw("failed to rotate refresh token", "user_id", user.UserID, "error", err)
		return nil, err
	}
	if !swapped {
		logger.Log.Errorw("refresh token replay detected", "user_id", user.UserID)
		return nil, ErrRefreshTokenExpiredOrUsed
	}

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

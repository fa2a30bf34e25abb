package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/hash"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// AccountWriter defines profile mutation operations for users.
type AccountWriter interface {
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, fullName, email string) (*models.UserDB, error)
	UpdateAvatarURL(ctx context.Context, userID uuid.UUID, avatarURL string) (*models.UserDB, error)
	UpdateCoverImageURL(ctx context.Context, userID uuid.UUID, coverImageURL string) (*models.UserDB, error)
}

// AccountService handles profile reads and mutations for an authenticated user.
type AccountService struct {
	reader   UserReader
	writer   AccountWriter
	uploader MediaUploader
}

// NewAccountService creates a new AccountService instance.
func NewAccountService(reader UserReader, writer AccountWriter, uploader MediaUploader) *AccountService {
	return &AccountService{
		reader:   reader,
		writer:   writer,
		uploader: uploader,
	}
}

// GetCurrent returns the sanitized account of the authenticated user.
func (svc *AccountService) GetCurrent(ctx context.Context, userID uuid.UUID) (*models.UserResponse, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserDoesNotExist
	}
	return models.SanitizeUser(user), nil
}

// ChangePassword replaces the password hash after verifying the old password.
// The active refresh token is deliberately left in place, matching the
// original behavior: changing a password does not end the current session.
func (svc *AccountService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if strings.TrimSpace(oldPassword) == "" || strings.TrimSpace(newPassword) == "" {
		return ErrAllFieldsRequired
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "error", err)
		return err
	}
	if user == nil {
		return ErrUserDoesNotExist
	}

	if !hash.Verify(oldPassword, user.PasswordHash) {
		logger.Log.Errorw("invalid old password", "user_id", userID)
		return ErrInvalidCredentials
	}

	hashedPassword, err := hash.Hash(newPassword)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "error", err)
		return err
	}

	if err := svc.writer.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		logger.Log.Errorw("failed to update password", "user_id", userID, "error", err)
		return err
	}

	return nil
}

// UpdateProfile overwrites full name and email.
func (svc *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, fullName, email string) (*models.UserResponse, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))

	if fullName == "" || email == "" {
		return nil, ErrAllFieldsRequired
	}

	updated, err := svc.writer.UpdateProfile(ctx, userID, fullName, email)
	if err != nil {
		logger.Log.Errorw("failed to update profile", "user_id", userID, "error", err)
		return nil, err
	}

	return models.SanitizeUser(updated), nil
}

// UpdateAvatar uploads a new avatar and overwrites the stored URL. The old
// media object is not deleted.
func (svc *AccountService) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarLocalPath string) (*models.UserResponse, error) {
	if avatarLocalPath == "" {
		return nil, ErrAvatarFileRequired
	}

	avatarURL, err := svc.uploader.Upload(ctx, avatarLocalPath)
	if err != nil || avatarURL == "" {
		logger.Log.Errorw("failed to upload avatar", "user_id", userID, "error", err)
		return nil, ErrUploadFailed
	}

	updated, err := svc.writer.UpdateAvatarURL(ctx, userID, avatarURL)
	if err != nil {
		logger.Log.Errorw("failed to update avatar url", "user_id", userID, "error", err)
		return nil, err
	}

	return models.SanitizeUser(updated), nil
}

// UpdateCoverImage uploads a new cover image and overwrites the stored URL.
func (svc *AccountService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, coverImageLocalPath string) (*models.UserResponse, error) {
	if coverImageLocalPath == "" {
		return nil, ErrCoverImageFileRequired
	}

	coverImageURL, err := svc.uploader.Upload(ctx, coverImageLocalPath)
	if err != nil || coverImageURL == "" {
		logger.Log.Errorw("failed to upload cover image", "user_id", userID, "error", err)
		return nil, ErrUploadFailed
	}

	updated, err := svc.writer.UpdateCoverImageURL(ctx, userID, coverImageURL)
	if err != nil {
		logger.Log.Errorw("failed to update cover image url", "user_id", userID, "error", err)
		return nil, err
	}

	return models.SanitizeUser(updated), nil
}

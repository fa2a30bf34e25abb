package services

import "errors"

// Error variables shared by the account, auth and profile services.
// Handlers map them onto HTTP statuses.
var (
	ErrAllFieldsRequired         = errors.New("all fields are required")
	ErrAvatarFileRequired        = errors.New("avatar file is required")
	ErrCoverImageFileRequired    = errors.New("cover image file is required")
	ErrUserAlreadyExists         = errors.New("username or email already exists")
	ErrUserDoesNotExist          = errors.New("user does not exist")
	ErrInvalidCredentials        = errors.New("invalid user credentials")
	ErrUnauthorized              = errors.New("unauthorized request")
	ErrInvalidRefreshToken       = errors.New("invalid refresh token")
	ErrRefreshTokenExpiredOrUsed = errors.New("refresh token is expired or used")
	ErrUploadFailed              = errors.New("media upload failed")
	ErrChannelNotFound           = errors.New("channel does not exist")
)

package models

// TokenPair holds a freshly issued access/refresh token pair.
// swagger:model TokenPair
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginResult is the login payload: the sanitized user plus both tokens.
// swagger:model LoginResult
type LoginResult struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
}

// AccountEvent is published to Kafka on account lifecycle changes.
type AccountEvent struct {
	EventID   string `json:"event_id"`  // Unique event id
	Timestamp int64  `json:"timestamp"` // Unix timestamp
	UserID    string `json:"user_id"`   // Affected user
	Action    string `json:"action"`    // registered, logged_in, logged_out, password_changed
}

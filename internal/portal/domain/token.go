package domain

import "time"

// TokenPair is what a successful login or refresh returns: a short-lived
// access token and the long-lived refresh token that replaces whatever the
// account held before. It is never persisted as a unit; only the refresh
// token string is stored, on the user record.
type TokenPair struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	ExpiresIn    time.Duration `json:"-"`
	RefreshTTL   time.Duration `json:"-"`
}

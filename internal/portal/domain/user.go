package domain

import (
	"net/url"
	"time"
)

// User is an account record. The password digest and the current refresh
// token never leave the backend: anything returned to a client goes
// through Public().
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string // stored lowercased, matched case-insensitively
	PasswordHash string // argon2id, PHC encoded
	Avatar       string
	Role         Role
	Verified     bool

	// RefreshToken is the single refresh token currently valid for this
	// account. Nil means no active session. Issuing a new one supersedes
	// the previous token permanently.
	RefreshToken *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicUser is the redacted view handed to clients.
type PublicUser struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName,omitempty"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	Role      Role      `json:"role"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public strips the credential fields.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Role:      u.Role,
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt,
	}
}

// DefaultAvatarURL builds the placeholder avatar used when registration
// carries no image.
func DefaultAvatarURL(firstName, lastName string) string {
	name := url.QueryEscape(firstName)
	if lastName != "" {
		name += "+" + url.QueryEscape(lastName)
	}
	return "https://ui-avatars.com/api/?name=" + name + "&background=random"
}

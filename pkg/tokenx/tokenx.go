// Package tokenx signs and verifies the access/refresh token pair used by
// the auth core. Both tokens are HS256 JWTs but they are signed with
// separate secrets, so a leaked access token can never be replayed against
// the refresh endpoint.
//
// The codec is a pure function boundary: no I/O, no shared mutable state,
// safe to call from any number of goroutines.
package tokenx

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default TTLs mirror the usual split: access tokens measured in minutes,
// refresh tokens in days.
const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

var (
	ErrExpired          = errors.New("tokenx: token expired")
	ErrInvalidSignature = errors.New("tokenx: invalid signature")
	ErrMalformed        = errors.New("tokenx: malformed token")
)

// Claims are the claims carried by both token kinds. Access tokens embed
// the subject's role; refresh tokens carry the subject only.
type Claims struct {
	jwt.RegisteredClaims

	Role string `json:"role,omitempty"`
}

// Config is supplied explicitly by the caller. Token operations never read
// ambient environment state.
type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration // defaults to DefaultAccessTTL when zero
	RefreshTTL    time.Duration // defaults to DefaultRefreshTTL when zero
	Issuer        string
}

// Codec issues and verifies the token pair.
type Codec struct {
	cfg Config
}

// New validates the config and returns a Codec. Reusing one secret for both
// token kinds defeats the key separation, so it is rejected outright.
func New(cfg Config) (*Codec, error) {
	if len(cfg.AccessSecret) == 0 {
		return nil, errors.New("tokenx: access secret is required")
	}
	if len(cfg.RefreshSecret) == 0 {
		return nil, errors.New("tokenx: refresh secret is required")
	}
	if bytes.Equal(cfg.AccessSecret, cfg.RefreshSecret) {
		return nil, errors.New("tokenx: access and refresh secrets must differ")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	return &Codec{cfg: cfg}, nil
}

// AccessTTL reports the configured access-token lifetime.
func (c *Codec) AccessTTL() time.Duration { return c.cfg.AccessTTL }

// RefreshTTL reports the configured refresh-token lifetime.
func (c *Codec) RefreshTTL() time.Duration { return c.cfg.RefreshTTL }

// IssueAccessToken signs a short-lived token carrying the subject's
// identity and role.
func (c *Codec) IssueAccessToken(subject, role string) (string, error) {
	return c.issueAccessAt(subject, role, time.Now().UTC())
}

// IssueRefreshToken signs a long-lived token carrying the subject only.
func (c *Codec) IssueRefreshToken(subject string) (string, error) {
	return c.issueRefreshAt(subject, time.Now().UTC())
}

func (c *Codec) issueAccessAt(subject, role string, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: registered(subject, c.cfg.Issuer, now, c.cfg.AccessTTL),
		Role:             role,
	}
	return c.sign(claims, c.cfg.AccessSecret)
}

func (c *Codec) issueRefreshAt(subject string, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: registered(subject, c.cfg.Issuer, now, c.cfg.RefreshTTL),
	}
	return c.sign(claims, c.cfg.RefreshSecret)
}

// VerifyAccess checks the signature and expiry of an access token and
// returns its claims.
func (c *Codec) VerifyAccess(token string) (Claims, error) {
	return c.verify(token, c.cfg.AccessSecret)
}

// VerifyRefresh checks the signature and expiry of a refresh token.
// Signature validity proves origin only; whether the token is still the
// account's current one is the Authenticator's question, not ours.
func (c *Codec) VerifyRefresh(token string) (Claims, error) {
	return c.verify(token, c.cfg.RefreshSecret)
}

func (c *Codec) sign(claims Claims, secret []byte) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("tokenx: sign: %w", err)
	}
	return signed, nil
}

func (c *Codec) verify(token string, secret []byte) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.cfg.Issuer),
		jwt.WithExpirationRequired(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSignature
		default:
			return Claims{}, ErrMalformed
		}
	}
	if claims.Subject == "" {
		return Claims{}, ErrMalformed
	}
	return claims, nil
}

func registered(subject, issuer string, now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        newJTI(),
	}
}

// newJTI returns a URL-safe random identifier for the "jti" claim, so two
// pairs issued within the same second never collide byte-for-byte.
func newJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

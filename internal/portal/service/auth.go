package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/placementpro/placementd/internal/portal/domain"
	"github.com/placementpro/placementd/internal/portal/obs"
	"github.com/placementpro/placementd/internal/portal/store"
	"github.com/placementpro/placementd/pkg/cryptox"
	"github.com/placementpro/placementd/pkg/idx"
	"github.com/placementpro/placementd/pkg/slogx"
	"github.com/placementpro/placementd/pkg/tokenx"
)

// AuthService owns the session lifecycle: registration, login, refresh
// rotation, logout and password changes. Exactly one refresh token is live
// per account at any time; it is the one stored on the user record.
type AuthService struct {
	Store store.Store
	Codec *tokenx.Codec
}

type RegisterParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
	Avatar    string
}

// Register creates an account. The role must be one of the self-signup
// roles (Company or Student; empty defaults to Student) and the email must
// be unused.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (domain.PublicUser, error) {
	l := slogx.FromContext(ctx)

	p.FirstName = strings.TrimSpace(p.FirstName)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	if p.FirstName == "" || p.Email == "" || p.Password == "" {
		return domain.PublicUser{}, ErrValidation
	}

	role, err := domain.SignupRole(p.Role)
	if err != nil {
		return domain.PublicUser{}, ErrValidation
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.PublicUser{}, err
	}

	avatar := p.Avatar
	if avatar == "" {
		avatar = domain.DefaultAvatarURL(p.FirstName, p.LastName)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		FirstName:    p.FirstName,
		LastName:     strings.TrimSpace(p.LastName),
		Email:        p.Email,
		PasswordHash: hash,
		Avatar:       avatar,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.PublicUser{}, ErrEmailTaken
		}
		return domain.PublicUser{}, err
	}

	obs.Registration(role.String())
	l.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("role", role.String()),
	)
	return user.Public(), nil
}

// Login verifies credentials and starts a session. The freshly issued
// refresh token overwrites whatever was stored, so a login from a second
// device silently ends the first device's session.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.PublicUser, domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Registration already discloses which emails exist, so an
			// unknown email answers not-found rather than a credential error.
			obs.LoginOutcome("not_found")
			return domain.PublicUser{}, domain.TokenPair{}, ErrNotFound
		}
		return domain.PublicUser{}, domain.TokenPair{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		obs.LoginOutcome("invalid_credentials")
		l.Info("login failed", slog.String("user_id", user.ID))
		return domain.PublicUser{}, domain.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return domain.PublicUser{}, domain.TokenPair{}, err
	}

	if err := s.Store.Users().SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return domain.PublicUser{}, domain.TokenPair{}, err
	}

	obs.LoginOutcome("success")
	l.Info("login succeeded", slog.String("user_id", user.ID))
	return user.Public(), pair, nil
}

// Refresh rotates a session. The presented token must pass signature and
// expiry checks AND byte-equal the stored token; the swap to the new token
// is conditional on the stored value, so of two concurrent refreshes with
// the same token exactly one wins and the other is handled as reuse.
func (s *AuthService) Refresh(ctx context.Context, presented string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	claims, err := s.Codec.VerifyRefresh(presented)
	if err != nil {
		obs.RefreshOutcome("invalid_token")
		return domain.TokenPair{}, ErrInvalidToken
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Account deleted while the token was still in flight.
			obs.RefreshOutcome("invalid_token")
			return domain.TokenPair{}, ErrInvalidToken
		}
		return domain.TokenPair{}, err
	}

	if user.RefreshToken == nil || *user.RefreshToken != presented {
		return domain.TokenPair{}, s.handleReuse(ctx, user.ID)
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return domain.TokenPair{}, err
	}

	err = s.Store.Users().ReplaceRefreshToken(ctx, user.ID, presented, pair.RefreshToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Lost the swap: someone rotated this token between our read
			// and our write. Same treatment as a straight replay.
			return domain.TokenPair{}, s.handleReuse(ctx, user.ID)
		}
		return domain.TokenPair{}, err
	}

	obs.RefreshOutcome("success")
	l.Debug("refresh token rotated", slog.String("user_id", user.ID))
	return pair, nil
}

// handleReuse records a superseded token coming back. Stale tokens are a
// normal byproduct of multi-device login churn, so the live session stays
// untouched; the replay is logged and counted, and the caller only ever
// sees the generic invalid-token error.
func (s *AuthService) handleReuse(ctx context.Context, userID string) error {
	l := slogx.FromContext(ctx)

	obs.RefreshOutcome("reuse")
	obs.TokenReuseDetected()
	l.Warn("superseded refresh token presented", slog.String("user_id", userID))

	return ErrTokenReuse
}

// Logout ends the account's session by clearing the persisted refresh
// token unconditionally. The caller supplies the authenticated user ID,
// so a client that never presents its refresh token is still logged out.
// Idempotent: clearing an already-cleared token is not an error.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	l := slogx.FromContext(ctx)

	if err := s.Store.Users().ClearRefreshToken(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}

	l.Info("logout", slog.String("user_id", userID))
	return nil
}

// ChangePassword swaps the stored digest after verifying the current
// password. The active session stays valid: the refresh token on the
// record is untouched.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	l := slogx.FromContext(ctx)

	if next == "" {
		return ErrValidation
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := cryptox.VerifyPassword(current, user.PasswordHash); err != nil {
		l.Info("password change rejected", slog.String("user_id", userID))
		return ErrInvalidCredentials
	}

	hash, err := cryptox.HashPassword(next)
	if err != nil {
		return err
	}

	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}

	l.Info("password changed", slog.String("user_id", userID))
	return nil
}

func (s *AuthService) issuePair(user domain.User) (domain.TokenPair, error) {
	access, err := s.Codec.IssueAccessToken(user.ID, user.Role.String())
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.Codec.IssueRefreshToken(user.ID)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    s.Codec.AccessTTL(),
		RefreshTTL:   s.Codec.RefreshTTL(),
	}, nil
}

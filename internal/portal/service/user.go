package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/placementpro/placementd/internal/portal/domain"
	"github.com/placementpro/placementd/internal/portal/media"
	"github.com/placementpro/placementd/internal/portal/store"
	"github.com/placementpro/placementd/pkg/slogx"
)

type UserService struct {
	Store store.Store

	// Media is nil when no object store is configured; avatar uploads
	// then fail with ErrMediaUnavailable.
	Media media.Storage
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrNotFound
	}
	return user, err
}

func (s *UserService) UpdateName(ctx context.Context, userID, firstName, lastName string) error {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return ErrValidation
	}

	err := s.Store.Users().UpdateName(ctx, userID, firstName, strings.TrimSpace(lastName))
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// UploadAvatar stores the image and points the profile at it. Returns the
// public URL of the new avatar.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, size int64, contentType string) (string, error) {
	if s.Media == nil {
		return "", ErrMediaUnavailable
	}

	ext, err := media.ImageExt(contentType)
	if err != nil {
		return "", ErrValidation
	}

	// Fixed key per user: a re-upload replaces the old object in place.
	key := "avatars/" + userID + ext
	url, err := s.Media.Upload(ctx, key, r, size, contentType)
	if err != nil {
		return "", err
	}

	if err := s.Store.Users().UpdateAvatar(ctx, userID, url); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	slogx.FromContext(ctx).Info("avatar updated", slog.String("user_id", userID))
	return url, nil
}

// ResetAvatar drops any uploaded image and falls back to the generated
// placeholder. Works without an object store; the stale object, if any,
// is removed best effort.
func (s *UserService) ResetAvatar(ctx context.Context, userID string) (string, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if s.Media != nil {
		for _, ext := range []string{".png", ".jpg", ".webp"} {
			_ = s.Media.Remove(ctx, "avatars/"+userID+ext)
		}
	}

	url := domain.DefaultAvatarURL(user.FirstName, user.LastName)
	if err := s.Store.Users().UpdateAvatar(ctx, userID, url); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return url, nil
}

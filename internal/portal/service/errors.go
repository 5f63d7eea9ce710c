package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not_found")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailTaken         = errors.New("email_taken")

	// ErrInvalidToken is the single outward answer for any refresh that
	// cannot proceed: expired, forged, unknown account, superseded token.
	// Callers never learn which.
	ErrInvalidToken = errors.New("invalid_token")

	// ErrTokenReuse refines ErrInvalidToken for logging and metrics. It
	// wraps ErrInvalidToken, so errors.Is(err, ErrInvalidToken) still
	// holds and the transport layer cannot leak the distinction.
	ErrTokenReuse = fmt.Errorf("%w: superseded token presented", ErrInvalidToken)

	// ErrMediaUnavailable means no object store is configured, so upload
	// endpoints cannot serve.
	ErrMediaUnavailable = errors.New("media_unavailable")

	ErrCompanyExists      = errors.New("company_profile_exists")
	ErrCompanyNotApproved = errors.New("company_not_approved")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation_failed")
)

package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/placementpro/placementd/internal/portal/service"
	"github.com/placementpro/placementd/pkg/httpx"
	"github.com/placementpro/placementd/pkg/slogx"
)

// writeServiceError maps service sentinels onto the stable wire errors.
// Anything unmapped is a 500 with a generic body; the detail goes to the
// log, never to the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, "validation_failed", "request failed validation")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "email or password is incorrect")
	case errors.Is(err, service.ErrInvalidToken):
		// ErrTokenReuse wraps ErrInvalidToken, so reuse lands here too
		// and the client cannot tell the two apart.
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "token is invalid or expired")
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusConflict, "email_taken", "an account with this email already exists")
	case errors.Is(err, service.ErrCompanyExists):
		httpx.WriteError(w, http.StatusConflict, "company_exists", "a company profile already exists for this account")
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "insufficient permissions")
	case errors.Is(err, service.ErrCompanyNotApproved):
		httpx.WriteError(w, http.StatusForbidden, "company_not_approved", "an approved company profile is required")
	case errors.Is(err, service.ErrMediaUnavailable):
		httpx.WriteError(w, http.StatusServiceUnavailable, "media_unavailable", "uploads are not available on this deployment")
	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}

// decodeJSON reads a JSON body into dst, answering 400 itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := jsonDecode(r, dst); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_body", "request body must be valid JSON")
		return false
	}
	return true
}

package http

import (
	"net/http"

	"github.com/placementpro/placementd/internal/portal/service"
	"github.com/placementpro/placementd/pkg/httpx"
)

// UserHandler serves the session-holder's own account: refresh, password
// change, profile and avatar.
type UserHandler struct {
	Auth  *service.AuthService
	Users *service.UserService
}

// HandleRefresh rotates the refresh token and issues a new access token.
// It runs outside the authentication gate: the refresh token itself is the
// credential here.
func (h *UserHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	token := refreshTokenFrom(r)
	if token == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "refresh token is required")
		return
	}

	pair, err := h.Auth.Refresh(r.Context(), token)
	if err != nil {
		clearSession(w)
		writeServiceError(w, r, err)
		return
	}

	writeSession(w, http.StatusOK, pair, nil)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *UserHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	var req changePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.Auth.ChangePassword(r.Context(), id.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	user, err := h.Users.GetUserByID(r.Context(), id.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"user": user.Public()})
}

type updateMeRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (h *UserHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	var req updateMeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.Users.UpdateName(r.Context(), id.UserID, req.FirstName, req.LastName); err != nil {
		writeServiceError(w, r, err)
		return
	}

	user, err := h.Users.GetUserByID(r.Context(), id.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"user": user.Public()})
}

// maxUploadBytes bounds avatar and logo uploads.
const maxUploadBytes = 5 << 20

func (h *UserHandler) HandleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	file, header, err := openImageUpload(w, r)
	if err != nil {
		return
	}
	defer file.Close()

	url, err := h.Users.UploadAvatar(r.Context(), id.UserID, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"avatar": url})
}

func (h *UserHandler) HandleResetAvatar(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	url, err := h.Users.ResetAvatar(r.Context(), id.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{"avatar": url})
}

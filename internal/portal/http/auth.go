package http

import (
	"net/http"

	"github.com/placementpro/placementd/internal/portal/service"
	"github.com/placementpro/placementd/pkg/httpx"
)

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	Auth *service.AuthService
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.Auth.Register(r.Context(), service.RegisterParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "validation_failed", "email and password are required")
		return
	}

	user, pair, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSession(w, http.StatusOK, pair, map[string]any{"user": user})
}

// HandleLogout revokes the authenticated account's session and expires the
// cookies. The refresh token is cleared whether or not the client sent it:
// the bearer identity names the account. Always 204 on repeat calls.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	if err := h.Auth.Logout(r.Context(), id.UserID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	clearSession(w)
	w.WriteHeader(http.StatusNoContent)
}

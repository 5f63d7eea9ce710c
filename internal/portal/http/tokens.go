package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/placementpro/placementd/internal/portal/domain"
	"github.com/placementpro/placementd/pkg/httpx"
)

const (
	refreshCookie = "refreshToken"

	// maxBodyBytes bounds JSON request bodies.
	maxBodyBytes = 1 << 20
)

func jsonDecode(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// Exactly one JSON value.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected trailing data")
	}
	return nil
}

// writeSession sets the httpOnly cookies and returns the pair in the body,
// so browser clients and API clients both work.
func writeSession(w http.ResponseWriter, status int, pair domain.TokenPair, extra map[string]any) {
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.AccessCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   int(pair.ExpiresIn.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookie,
		Value:    pair.RefreshToken,
		Path:     "/",
		MaxAge:   int(pair.RefreshTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	body := map[string]any{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"expiresIn":    int64(pair.ExpiresIn.Seconds()),
	}
	for k, v := range extra {
		body[k] = v
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, status, body)
}

// clearSession expires both cookies.
func clearSession(w http.ResponseWriter) {
	for _, name := range []string{httpx.AccessCookie, refreshCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

// refreshTokenFrom pulls the refresh token from the JSON body or, failing
// that, the cookie.
func refreshTokenFrom(r *http.Request) string {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err == nil && body.RefreshToken != "" {
		return body.RefreshToken
	}

	if c, err := r.Cookie(refreshCookie); err == nil {
		return c.Value
	}
	return ""
}

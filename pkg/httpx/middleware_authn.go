package httpx

import (
	"net/http"
	"strings"

	"github.com/placementpro/placementd/pkg/slogx"
	"github.com/placementpro/placementd/pkg/tokenx"
)

// AccessCookie is the cookie the token endpoints set alongside the JSON
// body. The middleware accepts the token from either carrier.
const AccessCookie = "accessToken"

// AccessVerifier verifies an access token and returns its claims.
type AccessVerifier interface {
	VerifyAccess(token string) (tokenx.Claims, error)
}

// AuthnMiddleware verifies the request's access token and attaches the
// subject identity to the context. Signature and expiry are the only
// authority consulted; access tokens never hit storage. A role change
// therefore shows up only once the client refreshes.
func AuthnMiddleware(v AccessVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				WriteError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
				return
			}

			claims, err := v.VerifyAccess(raw)
			if err != nil {
				// Expired, forged and garbled tokens all look the same to
				// the client; the log keeps the distinction.
				slogx.FromContext(r.Context()).Warn("access token rejected", "err", err)
				WriteError(w, http.StatusUnauthorized, "unauthenticated", "invalid or expired token")
				return
			}

			ctx := ContextWithIdentity(r.Context(), Identity{
				UserID: claims.Subject,
				Role:   claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken pulls the access token from the Authorization header, falling
// back to the cookie carrier.
func bearerToken(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	}
	if c, err := r.Cookie(AccessCookie); err == nil {
		return c.Value
	}
	return ""
}

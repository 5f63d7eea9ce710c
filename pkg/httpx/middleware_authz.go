package httpx

import "net/http"

// RequireRole enforces that the authenticated identity holds one of the
// given roles. An empty list means any authenticated principal passes.
// Must be chained after AuthnMiddleware; it never infers identity itself;
// a request without one is rejected, not re-authenticated.
func RequireRole(roles ...string) Middleware {
	want := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		want[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				WriteError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
				return
			}

			if len(want) > 0 {
				if _, ok := want[id.Role]; !ok {
					WriteError(w, http.StatusForbidden, "forbidden",
						"you do not have permission to perform this action")
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/placementpro/placementd/pkg/httpx"
	"github.com/placementpro/placementd/pkg/tokenx"
	"github.com/stretchr/testify/require"
)

func testCodec(t *testing.T) *tokenx.Codec {
	t.Helper()

	codec, err := tokenx.New(tokenx.Config{
		AccessSecret:  []byte("httpx-access-secret"),
		RefreshSecret: []byte("httpx-refresh-secret"),
		AccessTTL:     time.Minute,
		Issuer:        "placementd-test",
	})
	require.NoError(t, err)
	return codec
}

func identityEcho(t *testing.T, captured *httpx.Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.IdentityFromContext(r.Context())
		require.True(t, ok)
		*captured = id
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthnMiddlewareBearerHeader(t *testing.T) {
	t.Parallel()
	codec := testCodec(t)

	token, err := codec.IssueAccessToken("01JM0USER", "Student")
	require.NoError(t, err)

	var id httpx.Identity
	h := httpx.Chain(identityEcho(t, &id), httpx.AuthnMiddleware(codec))

	req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "01JM0USER", id.UserID)
	require.Equal(t, "Student", id.Role)
}

func TestAuthnMiddlewareCookieCarrier(t *testing.T) {
	t.Parallel()
	codec := testCodec(t)

	token, err := codec.IssueAccessToken("01JM0USER", "Company")
	require.NoError(t, err)

	var id httpx.Identity
	h := httpx.Chain(identityEcho(t, &id), httpx.AuthnMiddleware(codec))

	req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
	req.AddCookie(&http.Cookie{Name: httpx.AccessCookie, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "Company", id.Role)
}

func TestAuthnMiddlewareRejections(t *testing.T) {
	t.Parallel()
	codec := testCodec(t)

	h := httpx.Chain(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run")
		}),
		httpx.AuthnMiddleware(codec),
	)

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbled token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
		req.Header.Set("Authorization", "Bearer junk")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	t.Parallel()
	codec := testCodec(t)

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	serve := func(h http.Handler, role string) *httptest.ResponseRecorder {
		token, err := codec.IssueAccessToken("01JM0USER", role)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/job/create", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	companyOnly := httpx.Chain(ok, httpx.AuthnMiddleware(codec), httpx.RequireRole("Company"))

	t.Run("matching role passes", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, serve(companyOnly, "Company").Code)
	})

	t.Run("student is forbidden on company route", func(t *testing.T) {
		require.Equal(t, http.StatusForbidden, serve(companyOnly, "Student").Code)
	})

	t.Run("empty role set means any authenticated", func(t *testing.T) {
		anyAuthed := httpx.Chain(ok, httpx.AuthnMiddleware(codec), httpx.RequireRole())
		require.Equal(t, http.StatusNoContent, serve(anyAuthed, "Student").Code)
	})

	t.Run("no identity is unauthenticated not forbidden", func(t *testing.T) {
		gateOnly := httpx.Chain(ok, httpx.RequireRole("Company"))
		req := httptest.NewRequest(http.MethodPost, "/job/create", nil)
		rec := httptest.NewRecorder()
		gateOnly.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRateLimitByIP(t *testing.T) {
	t.Parallel()

	h := httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}),
		httpx.RateLimitByIP(httpx.RateLimitConfig{
			RequestsPerWindow: 2,
			Window:            time.Minute,
			Burst:             2,
		}),
	)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "203.0.113.9:4411"

	for range 2 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	// A different client keeps its own budget.
	other := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	other.RemoteAddr = "198.51.100.7:2200"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

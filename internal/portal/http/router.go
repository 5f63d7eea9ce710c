// Package http wires the portal's handlers onto a ServeMux with the
// middleware each route needs: request logging everywhere, rate limits on
// the credential endpoints, the authentication gate and role checks on
// everything private.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/placementpro/placementd/internal/portal/domain"
	"github.com/placementpro/placementd/internal/portal/obs"
	"github.com/placementpro/placementd/internal/portal/service"
	"github.com/placementpro/placementd/internal/portal/store"
	"github.com/placementpro/placementd/pkg/httpx"
	"github.com/placementpro/placementd/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier  httpx.AccessVerifier
	version   string
	startTime time.Time
	logger    *slog.Logger
	store     store.Store

	AuthService    *service.AuthService
	UserService    *service.UserService
	CompanyService *service.CompanyService
	JobService     *service.JobService
}

func NewRouter(verifier httpx.AccessVerifier, version string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:       http.NewServeMux(),
		verifier:  verifier,
		version:   version,
		startTime: time.Now(),
		logger:    logger,
		store:     st,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUser()
	r.registerCompany()
	r.registerJob()
	r.registerSystem()
}

// ServeHTTP applies the global middleware chain around the mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle wraps a route with metrics instrumentation plus its middleware.
func (r *Router) handle(pattern string, h http.Handler, mws ...httpx.Middleware) {
	r.Mux.Handle(pattern, obs.Instrument(pattern, httpx.Chain(h, mws...)))
}

func (r *Router) registerAuth() {
	h := &AuthHandler{Auth: r.AuthService}

	// Credential endpoints are brute-forceable, so they get the strict
	// per-IP budget.
	r.handle("POST /auth/register", http.HandlerFunc(h.HandleRegister),
		httpx.RateLimitByIP(httpx.StrictLimit),
	)
	r.handle("POST /auth/login", http.HandlerFunc(h.HandleLogin),
		httpx.RateLimitByIP(httpx.StrictLimit),
	)
	r.handle("POST /auth/logout", http.HandlerFunc(h.HandleLogout),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
}

func (r *Router) registerUser() {
	h := &UserHandler{Auth: r.AuthService, Users: r.UserService}

	// Refresh carries no access token by definition, so this route is
	// authenticated by the refresh token itself rather than the gate.
	r.handle("POST /user/refresh-token", http.HandlerFunc(h.HandleRefresh),
		httpx.RateLimitByIP(httpx.StrictLimit),
	)
	r.handle("POST /user/change-password", http.HandlerFunc(h.HandleChangePassword),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.StrictLimit),
	)
	r.handle("GET /user/me", http.HandlerFunc(h.HandleMe),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
	r.handle("PATCH /user/me", http.HandlerFunc(h.HandleUpdateMe),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	r.handle("PATCH /user/avatar", http.HandlerFunc(h.HandleUploadAvatar),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	r.handle("DELETE /user/avatar", http.HandlerFunc(h.HandleResetAvatar),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
}

func (r *Router) registerCompany() {
	h := &CompanyHandler{Companies: r.CompanyService}

	r.handle("POST /company/profile", http.HandlerFunc(h.HandleCreateProfile),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole(domain.RoleCompany.String()),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	r.handle("GET /company/profile", http.HandlerFunc(h.HandleOwnProfile),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole(domain.RoleCompany.String()),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
	r.handle("PATCH /company/profile", http.HandlerFunc(h.HandleUpdateProfile),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole(domain.RoleCompany.String()),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	r.handle("PATCH /company/logo", http.HandlerFunc(h.HandleUploadLogo),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole(domain.RoleCompany.String()),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	r.handle("GET /company/{id}", http.HandlerFunc(h.HandleGet),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
	r.handle("PATCH /company/{id}/status", http.HandlerFunc(h.HandleSetStatus),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole(domain.RoleAdmin.String()),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
}

func (r *Router) registerJob() {
	h := &JobHandler{Jobs: r.JobService}

	r.handle("GET /job", http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
	r.handle("POST /job/create", http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireRole(domain.RoleCompany.String()),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	r.handle("GET /job/{id}", http.HandlerFunc(h.HandleGet),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
	r.handle("PATCH /job/{id}", http.HandlerFunc(h.HandleUpdate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
	r.handle("DELETE /job/{id}", http.HandlerFunc(h.HandleDelete),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.version))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.store))
	r.Mux.Handle("GET /metrics", obs.Handler())
}

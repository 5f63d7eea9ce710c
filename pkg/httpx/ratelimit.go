package httpx

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig defines the per-key request budget.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// Profiles for the endpoint classes we expose. Credential endpoints get the
// strict budget to blunt brute forcing; everything authenticated gets the
// lenient one.
var (
	StrictLimit = RateLimitConfig{
		RequestsPerWindow: 5,
		Window:            time.Minute,
		Burst:             5,
	}

	ModerateLimit = RateLimitConfig{
		RequestsPerWindow: 20,
		Window:            time.Minute,
		Burst:             20,
	}

	LenientLimit = RateLimitConfig{
		RequestsPerWindow: 100,
		Window:            time.Minute,
		Burst:             100,
	}
)

// KeyExtractor derives the limiter key from a request.
type KeyExtractor func(r *http.Request) string

// IPKeyExtractor keys on the remote IP (port stripped).
func IPKeyExtractor(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// UserKeyExtractor keys on the authenticated user, falling back to IP for
// anonymous requests.
func UserKeyExtractor(r *http.Request) string {
	if id, ok := IdentityFromContext(r.Context()); ok {
		return "user:" + id.UserID
	}
	return "ip:" + IPKeyExtractor(r)
}

// limiterPool is a grow-only map of key -> limiter with periodic eviction
// of idle entries, so one process never accumulates unbounded limiters.
type limiterPool struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	cfg      RateLimitConfig
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLimiterPool(cfg RateLimitConfig) *limiterPool {
	p := &limiterPool{
		limiters: make(map[string]*limiterEntry),
		cfg:      cfg,
	}
	go p.janitor()
	return p
}

func (p *limiterPool) get(key string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.limiters[key]
	if !ok {
		limit := rate.Every(p.cfg.Window / time.Duration(p.cfg.RequestsPerWindow))
		entry = &limiterEntry{limiter: rate.NewLimiter(limit, p.cfg.Burst)}
		p.limiters[key] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

func (p *limiterPool) janitor() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-10 * time.Minute)
		p.mu.Lock()
		for key, entry := range p.limiters {
			if entry.lastSeen.Before(cutoff) {
				delete(p.limiters, key)
			}
		}
		p.mu.Unlock()
	}
}

// RateLimitMiddleware rejects requests over budget with 429 and a
// Retry-After hint.
func RateLimitMiddleware(cfg RateLimitConfig, key KeyExtractor) Middleware {
	pool := newLimiterPool(cfg)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !pool.get(key(r)).Allow() {
				w.Header().Set("Retry-After", cfg.Window.String())
				WriteError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitByIP applies cfg keyed on the client IP.
func RateLimitByIP(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, IPKeyExtractor)
}

// RateLimitByUser applies cfg keyed on the authenticated user.
func RateLimitByUser(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, UserKeyExtractor)
}

package middleware

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"book-journal/internal/handler/http/respond"
	"book-journal/internal/handler/http/viewer"
)

// ErrRateLimited is the message of every 429 response.
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimitConfig holds the per-client token bucket settings.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate. Zero disables limiting.
	RequestsPerSecond float64
	Burst             int
	// IdleTTL is how long an unused client bucket is kept.
	IdleTTL time.Duration
	Logger  *slog.Logger
}

// Enabled reports whether requests should be limited at all.
func (c RateLimitConfig) Enabled() bool {
	return c.RequestsPerSecond > 0
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client. A client is the viewer when
// the request carries X-User-ID and the remote IP otherwise.
type RateLimiter struct {
	cfg RateLimitConfig

	mu      sync.Mutex
	buckets map[string]*clientBucket
	now     func() time.Time
}

// NewRateLimiter creates a limiter. Burst defaults to one second's worth of
// requests and IdleTTL to ten minutes.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Burst <= 0 {
		cfg.Burst = max(1, int(cfg.RequestsPerSecond))
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 10 * time.Minute
	}
	return &RateLimiter{
		cfg:     cfg,
		buckets: make(map[string]*clientBucket),
		now:     time.Now,
	}
}

// Allow takes one token from key's bucket.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(rate.Limit(l.cfg.RequestsPerSecond), l.cfg.Burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// Cleanup drops buckets that have been idle longer than IdleTTL and returns
// how many were removed.
func (l *RateLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.cfg.IdleTTL)
	removed := 0
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked clients.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// StartCleanup runs Cleanup every interval until stop is closed.
func (l *RateLimiter) StartCleanup(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := l.Cleanup(); n > 0 && l.cfg.Logger != nil {
					l.cfg.Logger.Debug("rate limiter cleanup", slog.Int("removed", n))
				}
			case <-stop:
				return
			}
		}
	}()
}

// RateLimit rejects clients over their budget with 429 and a Retry-After
// header. It must run after viewer.Middleware.
func RateLimit(l *RateLimiter) func(http.Handler) http.Handler {
	retryAfter := strconv.Itoa(max(1, int(1/l.cfg.RequestsPerSecond)))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ClientKey(r)
			if !l.Allow(key) {
				if l.cfg.Logger != nil {
					l.cfg.Logger.Warn("rate limit exceeded",
						slog.String("client", key),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path))
				}
				w.Header().Set("Retry-After", retryAfter)
				respond.Error(w, http.StatusTooManyRequests, ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientKey identifies the caller for rate limiting.
//
// The API runs behind a gateway that authenticates the caller, sets
// X-User-ID and appends the peer address to X-Forwarded-For. Neither header
// is trustworthy when the service is exposed directly.
func ClientKey(r *http.Request) string {
	if id := viewer.FromContext(r.Context()); id != uuid.Nil {
		return "user:" + id.String()
	}
	return "ip:" + clientIP(r)
}

// clientIP prefers the last X-Forwarded-For hop, then X-Real-IP, then the
// connection's remote address. Earlier hops are client supplied and ignored.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		last := xff
		if i := strings.LastIndexByte(xff, ','); i >= 0 {
			last = xff[i+1:]
		}
		if ip := strings.TrimSpace(last); net.ParseIP(ip) != nil {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(xri) != nil {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

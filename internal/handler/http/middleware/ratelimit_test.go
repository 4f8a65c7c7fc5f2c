package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-journal/internal/handler/http/respond"
	"book-journal/internal/handler/http/viewer"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time            { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(rps float64, burst int) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewRateLimiter(RateLimitConfig{RequestsPerSecond: rps, Burst: burst, IdleTTL: time.Minute})
	l.now = clock.now
	return l, clock
}

func TestRateLimiter_Allow(t *testing.T) {
	l, clock := newTestLimiter(1, 2)

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"), "burst exhausted")
	assert.True(t, l.Allow("b"), "buckets are per client")

	clock.advance(time.Second)
	assert.True(t, l.Allow("a"), "one token refilled")
	assert.False(t, l.Allow("a"))
}

func TestNewRateLimiter_Defaults(t *testing.T) {
	l := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 5})
	assert.Equal(t, 5, l.cfg.Burst)
	assert.Equal(t, 10*time.Minute, l.cfg.IdleTTL)

	l = NewRateLimiter(RateLimitConfig{RequestsPerSecond: 0.5})
	assert.Equal(t, 1, l.cfg.Burst)
}

func TestRateLimitConfig_Enabled(t *testing.T) {
	assert.False(t, RateLimitConfig{}.Enabled())
	assert.True(t, RateLimitConfig{RequestsPerSecond: 1}.Enabled())
}

func TestRateLimiter_Cleanup(t *testing.T) {
	l, clock := newTestLimiter(1, 1)
	l.Allow("old")
	clock.advance(2 * time.Minute)
	l.Allow("fresh")

	assert.Equal(t, 1, l.Cleanup())
	assert.Equal(t, 1, l.Len())
}

func TestRateLimiter_StartCleanup(t *testing.T) {
	l, clock := newTestLimiter(1, 1)
	l.Allow("old")
	clock.advance(2 * time.Minute)

	stop := make(chan struct{})
	defer close(stop)
	l.StartCleanup(5*time.Millisecond, stop)

	assert.Eventually(t, func() bool { return l.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestRateLimit_Middleware(t *testing.T) {
	l, _ := newTestLimiter(1, 1)
	h := RateLimit(l)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send().Code)

	rec := send()
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	var body respond.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, ErrRateLimited.Error(), body.Message)
	assert.Equal(t, http.StatusTooManyRequests, body.StatusCode)
}

func TestClientKey(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name    string
		setup   func(r *http.Request) *http.Request
		wantKey string
	}{
		{
			name: "viewer wins over ip",
			setup: func(r *http.Request) *http.Request {
				r.Header.Set("X-Forwarded-For", "198.51.100.1")
				return r.WithContext(viewer.WithViewer(r.Context(), id))
			},
			wantKey: "user:" + id.String(),
		},
		{
			name: "last forwarded hop",
			setup: func(r *http.Request) *http.Request {
				r.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
				return r
			},
			wantKey: "ip:10.0.0.1",
		},
		{
			name: "spoofed leading hops ignored",
			setup: func(r *http.Request) *http.Request {
				r.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8, 198.51.100.9")
				return r
			},
			wantKey: "ip:198.51.100.9",
		},
		{
			name: "invalid last hop falls back to real ip",
			setup: func(r *http.Request) *http.Request {
				r.Header.Set("X-Forwarded-For", "198.51.100.1, garbage")
				r.Header.Set("X-Real-IP", "198.51.100.2")
				return r
			},
			wantKey: "ip:198.51.100.2",
		},
		{
			name: "invalid forwarded falls back to real ip",
			setup: func(r *http.Request) *http.Request {
				r.Header.Set("X-Forwarded-For", "not-an-ip")
				r.Header.Set("X-Real-IP", "198.51.100.2")
				return r
			},
			wantKey: "ip:198.51.100.2",
		},
		{
			name:    "remote addr",
			setup:   func(r *http.Request) *http.Request { return r },
			wantKey: "ip:203.0.113.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "203.0.113.7:5000"
			assert.Equal(t, tt.wantKey, ClientKey(tt.setup(req)))
		})
	}
}

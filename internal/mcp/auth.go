package mcp

import (
	"crypto/subtle"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// maxRequestBodyBytes caps a single request body when the caller sets no
// explicit limit.
const maxRequestBodyBytes int64 = 1 << 20

// HTTPHandlerConfig guards the streamable HTTP transport. AuthToken must be
// set for the http transport (cmd/mcp refuses to start without one);
// RateLimitPerMin and MaxBodyBytes fall back to package defaults when zero.
type HTTPHandlerConfig struct {
	AuthToken       string
	RateLimitPerMin int
	MaxBodyBytes    int64
}

// wrapHTTPHandler layers bearer auth, per-client throttling, and a body cap
// around the transport. Auth runs first; unauthenticated traffic never
// consumes rate-limit budget.
func wrapHTTPHandler(base http.Handler, cfg HTTPHandlerConfig) http.Handler {
	var h http.Handler = capBody(base, cfg.MaxBodyBytes)
	h = throttle(h, newClientLimiter(cfg.RateLimitPerMin))
	h = requireBearer(h, cfg.AuthToken)
	return h
}

func requireBearer(next http.Handler, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := strings.TrimSpace(r.Header.Get("Authorization"))
		if !strings.HasPrefix(authz, "Bearer ") {
			denyJSON(w, http.StatusUnauthorized, "bearer token required")
			return
		}
		provided := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
		if token == "" || provided == "" ||
			subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			denyJSON(w, http.StatusForbidden, "invalid bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func capBody(next http.Handler, limit int64) http.Handler {
	if limit <= 0 {
		limit = maxRequestBodyBytes
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		next.ServeHTTP(w, r)
	})
}

func throttle(next http.Handler, limiter *clientLimiter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.allow(clientKey(r)) {
			denyJSON(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey buckets throttling by bearer token, falling back to the remote
// host for tokenless requests.
func clientKey(r *http.Request) string {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if token := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer ")); token != "" {
		return token
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil || host == "" {
		host = strings.TrimSpace(r.RemoteAddr)
	}
	if host == "" {
		return "unknown"
	}
	return host
}

// clientLimiter enforces a fixed per-minute request budget per client key.
// The budget resets when a key's window expires.
type clientLimiter struct {
	mu      sync.Mutex
	perMin  int
	windows map[string]*requestWindow
}

type requestWindow struct {
	start time.Time
	count int
}

func newClientLimiter(perMin int) *clientLimiter {
	if perMin <= 0 {
		perMin = 60
	}
	return &clientLimiter{perMin: perMin, windows: make(map[string]*requestWindow)}
}

func (l *clientLimiter) allow(key string) bool {
	if l == nil {
		return true
	}
	if key == "" {
		key = "unknown"
	}

	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= time.Minute {
		l.windows[key] = &requestWindow{start: now, count: 1}
		return true
	}
	if w.count >= l.perMin {
		return false
	}
	w.count++
	return true
}

// denyJSON mirrors the gin handlers' {"error": ...} body shape.
func denyJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

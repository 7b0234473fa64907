package github

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/KOFI-GYIMAH/github-digest/pkg/logger"
)

// RateLimitMonitor records the X-RateLimit-* headers GitHub sends back and
// warns when the budget runs low. It never delays or replays a request.
type RateLimitMonitor struct {
	mu        sync.Mutex
	remaining int
	reset     time.Time
	lowWarn   int
}

func NewRateLimitMonitor() *RateLimitMonitor {
	return &RateLimitMonitor{
		remaining: -1,
		lowWarn:   100,
	}
}

// * Remaining returns the last observed budget, or -1 before any response.
func (r *RateLimitMonitor) Remaining() (int, time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining, r.reset
}

func (r *RateLimitMonitor) updateFromHeaders(headers http.Header) {
	r.mu.Lock()
	defer r.mu.Unlock()

	remaining := headers.Get("X-RateLimit-Remaining")
	if remaining == "" {
		return
	}

	val, err := strconv.Atoi(remaining)
	if err != nil {
		return
	}
	r.remaining = val

	if reset := headers.Get("X-RateLimit-Reset"); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			r.reset = time.Unix(val, 0)
		}
	}

	if r.remaining < r.lowWarn {
		logger.Warn("[RateLimit] Low rate limit: %d remaining. Resets at %s", r.remaining, r.reset.Format(time.RFC1123))
	}
}

func (r *RateLimitMonitor) Middleware(next http.RoundTripper) http.RoundTripper {
	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		resp, err := next.RoundTrip(req)
		if err != nil {
			logger.Error("Network error in RoundTrip: %v", err)
			return nil, err
		}

		r.updateFromHeaders(resp.Header)
		return resp, nil
	})
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

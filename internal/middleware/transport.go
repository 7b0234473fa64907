package middleware

import (
	"net/http"
	"time"

	"github.com/KOFI-GYIMAH/github-digest/pkg/logger"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// LoggingTransport logs method, path, status and duration of every outbound
// request at debug level. A nil next means http.DefaultTransport.
func LoggingTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		start := time.Now()

		resp, err := next.RoundTrip(req)
		duration := time.Since(start)

		if err != nil {
			logger.Debug("%s %s failed after %s: %v", req.Method, req.URL.RequestURI(), duration, err)
			return nil, err
		}

		logger.Debug("%s %s %d %s", req.Method, req.URL.RequestURI(), resp.StatusCode, duration)
		return resp, nil
	})
}

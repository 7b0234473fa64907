package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/github-digest/internal/middleware"
	"github.com/KOFI-GYIMAH/github-digest/pkg/errors"
	"golang.org/x/oauth2"
)

const DefaultBaseURL = "https://api.github.com"

type Client struct {
	httpClient *http.Client
	baseURL    string
	rateLimit  *RateLimitMonitor
}

// * NewClient builds a GitHub REST client. An empty token sends anonymous
// * requests; an empty baseURL targets api.github.com.
func NewClient(token, baseURL string) *Client {
	rl := NewRateLimitMonitor()

	var transport http.RoundTripper = rl.Middleware(middleware.LoggingTransport(http.DefaultTransport))
	if token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   transport,
		}
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		rateLimit: rl,
	}
}

func (c *Client) RateLimit() *RateLimitMonitor {
	return c.rateLimit
}

func (c *Client) makeRequest(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	return resp, nil
}

// * getJSON issues a GET and decodes a 200 body into v. For any other status
// * it returns the status with a nil error and leaves v untouched; callers
// * decide how to report it.
func (c *Client) getJSON(ctx context.Context, path, what string, v any) (int, error) {
	resp, err := c.makeRequest(ctx, http.MethodGet, path)
	if err != nil {
		return 0, errors.New(
			"GITHUB_API_ERROR",
			"Failed to fetch "+what+" from GitHub",
			fmt.Sprintf("Could not connect to GitHub API at %s", path),
			err,
			errors.LevelError,
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, errors.New(
			"GITHUB_API_ERROR",
			"Failed to read "+what+" from GitHub",
			fmt.Sprintf("Could not read the response body for %s", path),
			err,
			errors.LevelError,
		)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return resp.StatusCode, errors.New(
			"GITHUB_API_ERROR",
			"Failed to parse "+what+" from GitHub",
			fmt.Sprintf("Could not understand the %s data returned for %s", what, path),
			err,
			errors.LevelError,
		)
	}

	return resp.StatusCode, nil
}

package github

import (
	"context"

	"github.com/KOFI-GYIMAH/github-digest/pkg/logger"
)

// ListUserRepositories pages through every repository visible to the token.
func (c *Client) ListUserRepositories(ctx context.Context) ([]Repository, error) {
	repos, err := fetchPages(ctx, c, "repositories", "/user/repos", pageOptions[Repository]{})
	if err != nil {
		return nil, err
	}

	logger.Info("Found %d repositories", len(repos))
	return repos, nil
}

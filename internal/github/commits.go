package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/KOFI-GYIMAH/github-digest/pkg/logger"
)

// GetCommitFiles returns the changed files of one commit. repoFullName is
// "owner/name". Any non-200 answer is logged and yields an empty list.
func (c *Client) GetCommitFiles(ctx context.Context, repoFullName, sha string) ([]CommitFile, error) {
	path := fmt.Sprintf("/repos/%s/commits/%s", repoFullName, url.PathEscape(sha))

	var detail commitDetail
	status, err := c.getJSON(ctx, path, "commit changes", &detail)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		logger.Error("Error fetching commit changes: %d", status)
		return []CommitFile{}, nil
	}

	if detail.Files == nil {
		return []CommitFile{}, nil
	}
	return detail.Files, nil
}

// ListCommits pages through the full commit history of owner/repo.
func (c *Client) ListCommits(ctx context.Context, owner, repo string) ([]Commit, error) {
	path := fmt.Sprintf("/repos/%s/%s/commits", url.PathEscape(owner), url.PathEscape(repo))

	commits, err := fetchPages(ctx, c, "commit history for "+repo, path, pageOptions[Commit]{})
	if err != nil {
		return nil, err
	}

	logger.Info("Fetched %d commits for %s/%s", len(commits), owner, repo)
	return commits, nil
}

package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/KOFI-GYIMAH/github-digest/pkg/errors"
	"github.com/KOFI-GYIMAH/github-digest/pkg/logger"
)

func contentsPath(owner, repo, path string) string {
	base := fmt.Sprintf("/repos/%s/%s/contents", url.PathEscape(owner), url.PathEscape(repo))
	if path == "" {
		return base
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return base + "/" + strings.Join(segments, "/")
}

// ListContents lists one directory of owner/repo; "" is the repository root.
// A non-200 answer is logged and returns a nil listing.
func (c *Client) ListContents(ctx context.Context, owner, repo, path string) ([]ContentEntry, error) {
	var entries []ContentEntry
	status, err := c.getJSON(ctx, contentsPath(owner, repo, path), "contents", &entries)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		logger.Error("Error fetching contents for %s/%s: %d", repo, path, status)
		return nil, nil
	}
	return entries, nil
}

// GetFileContent fetches a single file and decodes its base64 payload.
// A non-200 answer is logged and yields "".
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path string) (string, error) {
	var entry ContentEntry
	status, err := c.getJSON(ctx, contentsPath(owner, repo, path), "file content", &entry)
	if err != nil {
		return "", err
	}

	if status != http.StatusOK {
		logger.Error("Error fetching file content for %s/%s: %d", repo, path, status)
		return "", nil
	}

	return decodeContent(repo, path, entry.Content)
}

// decodeContent turns GitHub's line-wrapped base64 into text. Bytes that are
// not valid UTF-8 are replaced with U+FFFD.
func decodeContent(repo, path, encoded string) (string, error) {
	cleaned := strings.NewReplacer("\n", "", "\r", "").Replace(encoded)

	raw, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return "", errors.New(
			"CONTENT_DECODE_ERROR",
			"Failed to decode file content",
			fmt.Sprintf("Content of %s/%s is not valid base64", repo, path),
			err,
			errors.LevelError,
		)
	}

	if !utf8.Valid(raw) {
		logger.Warn("%s/%s is not valid UTF-8; invalid bytes replaced", repo, path)
		return strings.ToValidUTF8(string(raw), "\uFFFD"), nil
	}
	return string(raw), nil
}

type walkFrame struct {
	entries []ContentEntry
	next    int
}

// WalkContents returns every file below path in owner/repo with decoded
// content, in the same depth-first order a recursive listing would produce.
// A directory whose listing fails contributes nothing; its siblings are kept.
func (c *Client) WalkContents(ctx context.Context, owner, repo, path string) ([]FileContent, error) {
	files := make([]FileContent, 0)

	root, err := c.ListContents(ctx, owner, repo, path)
	if err != nil {
		return nil, err
	}

	stack := []*walkFrame{{entries: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.entries) {
			stack = stack[:len(stack)-1]
			continue
		}

		entry := top.entries[top.next]
		top.next++

		switch entry.Type {
		case ContentTypeFile:
			content, err := c.GetFileContent(ctx, owner, repo, entry.Path)
			if err != nil {
				return nil, err
			}
			files = append(files, FileContent{Path: entry.Path, Content: content})

		case ContentTypeDir:
			children, err := c.ListContents(ctx, owner, repo, entry.Path)
			if err != nil {
				return nil, err
			}
			stack = append(stack, &walkFrame{entries: children})

		default:
			logger.Debug("skipping %s entry %s in %s", entry.Type, entry.Path, repo)
		}
	}

	return files, nil
}

package github

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/KOFI-GYIMAH/github-digest/pkg/logger"
)

const PerPage = 100

type pageOptions[T any] struct {
	// keep filters items of each page before they are accumulated
	keep func(T) bool
	// done is consulted after every page with everything accumulated so far
	done func(acc []T) bool
}

// fetchPages walks path page by page until a page is empty, GitHub answers
// with a non-200 status, or opts.done reports true. A non-200 status is
// logged and ends the walk with whatever was gathered; it is not an error.
func fetchPages[T any](ctx context.Context, c *Client, what, path string, opts pageOptions[T]) ([]T, error) {
	all := make([]T, 0)

	for page := 1; ; page++ {
		params := make(url.Values)
		params.Set("page", strconv.Itoa(page))
		params.Set("per_page", strconv.Itoa(PerPage))

		var items []T
		status, err := c.getJSON(ctx, path+"?"+params.Encode(), what, &items)
		if err != nil {
			return nil, err
		}

		if status != http.StatusOK {
			logger.Error("Error fetching %s: %d", what, status)
			break
		}

		if len(items) == 0 {
			break
		}

		for _, item := range items {
			if opts.keep == nil || opts.keep(item) {
				all = append(all, item)
			}
		}

		logger.Debug("fetched page %d of %s (%d kept so far)", page, what, len(all))

		if opts.done != nil && opts.done(all) {
			break
		}
	}

	return all, nil
}

package github

import (
	"context"
	"fmt"
	"net/url"
)

// MaxPushEvents caps how many push events ListPushEvents returns.
const MaxPushEvents = 10

// ListPushEvents returns up to MaxPushEvents of the user's most recent push
// events, newest first as GitHub orders them.
func (c *Client) ListPushEvents(ctx context.Context, user string) ([]Event, error) {
	path := fmt.Sprintf("/users/%s/events", url.PathEscape(user))

	events, err := fetchPages(ctx, c, "events", path, pageOptions[Event]{
		keep: func(e Event) bool { return e.Type == PushEventType },
		done: func(acc []Event) bool { return len(acc) >= MaxPushEvents },
	})
	if err != nil {
		return nil, err
	}

	if len(events) > MaxPushEvents {
		events = events[:MaxPushEvents]
	}
	return events, nil
}

package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"geekfill/internal/core/standup"
	perr "geekfill/internal/platform/errors"
	ptime "geekfill/internal/platform/time"
)

// UserEvents fetches the public event feed for a user and returns it as
// canonical activities. If cutoff is non-zero, only activities created at
// or after it survive; the comparison is at millisecond resolution.
// The feed is whatever single page the API returns; no pagination
func (c *Client) UserEvents(ctx context.Context, user string, cutoff time.Time) ([]standup.Activity, error) {
	if user == "" {
		return nil, perr.InvalidArgf("github user is required")
	}

	path := fmt.Sprintf("/users/%s/events", user)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+path, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "github new request failed")
	}

	resp, err := c.get(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("github close body failed")
		}
	}()

	var events []Event
	lim := io.LimitReader(resp.Body, 1<<22)
	b, err := io.ReadAll(lim)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "github read body failed")
	}
	if err := json.Unmarshal(b, &events); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "github decode events failed")
	}

	out := make([]standup.Activity, 0, len(events))
	floor := ptime.TruncMillis(cutoff)
	for _, ev := range events {
		if !cutoff.IsZero() && ptime.TruncMillis(ev.CreatedAt).Before(floor) {
			continue
		}
		out = append(out, ev.Normalize())
	}

	c.log.Debug().Str("user", user).Time("cutoff", cutoff).
		Int("fetched", len(events)).Int("kept", len(out)).Msg("github user events")
	return out, nil
}

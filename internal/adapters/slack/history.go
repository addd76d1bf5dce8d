package slack

import (
	"context"
	"net/url"
	"strconv"

	perr "geekfill/internal/platform/errors"
)

// Message is one channel message, newest first in history listings
type Message struct {
	User string `json:"user"`
	Text string `json:"text"`
	TS   string `json:"ts"`
}

type historyResponse struct {
	apiResponse
	Messages []Message `json:"messages"`
}

// RecentHistory fetches the most recent count messages of a dm channel in a
// single page. unreadsOnly asks the API to include unread marker info, which
// scopes the listing to the unread tail of the conversation
func (c *Client) RecentHistory(ctx context.Context, channel string, count int, unreadsOnly bool) ([]Message, error) {
	if channel == "" {
		return nil, perr.InvalidArgf("channel is required")
	}
	if count <= 0 {
		count = 1
	}

	params := url.Values{}
	params.Set("channel", channel)
	params.Set("count", strconv.Itoa(count))
	if unreadsOnly {
		params.Set("unreads", "true")
	}

	var out historyResponse
	if err := c.call(ctx, "im.history", params, &out); err != nil {
		return nil, perr.WithOp(err, "RecentHistory")
	}
	return out.Messages, nil
}

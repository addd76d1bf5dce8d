package slack

import (
	"context"
	"net/url"
	"strconv"

	perr "geekfill/internal/platform/errors"
)

// Member is one entry from the team directory
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	IsBot bool   `json:"is_bot"`
}

// IM is one direct-message channel from the im listing
type IM struct {
	ID   string `json:"id"`
	User string `json:"user"`
}

type responseMetadata struct {
	NextCursor string `json:"next_cursor"`
}

type usersListResponse struct {
	apiResponse
	Members          []Member         `json:"members"`
	ResponseMetadata responseMetadata `json:"response_metadata"`
}

type imListResponse struct {
	apiResponse
	IMs              []IM             `json:"ims"`
	ResponseMetadata responseMetadata `json:"response_metadata"`
}

// UserQuery is the directory match criteria: exact name plus the bot flag
type UserQuery struct {
	Name  string
	IsBot bool
}

// ResolveUserID walks the paginated team directory until a member matches
// the query exactly. Pagination is an iterative cursor loop; an absent
// next_cursor is the natural terminal condition and yields a not found error
func (c *Client) ResolveUserID(ctx context.Context, q UserQuery) (string, error) {
	if q.Name == "" {
		return "", perr.InvalidArgf("user name is required")
	}

	cursor := ""
	for {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(pageLimit))
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		var page usersListResponse
		if err := c.call(ctx, "users.list", params, &page); err != nil {
			return "", perr.WithOp(err, "ResolveUserID")
		}

		for _, m := range page.Members {
			if m.Name == q.Name && m.IsBot == q.IsBot {
				c.log.Debug().Str("name", q.Name).Str("id", m.ID).Msg("slack user resolved")
				return m.ID, nil
			}
		}

		cursor = page.ResponseMetadata.NextCursor
		if cursor == "" {
			return "", perr.NotFoundf("no member named %q with bot=%v on this team", q.Name, q.IsBot)
		}
	}
}

// ResolveIMChannelID walks the paginated direct-message listing until a
// channel's participant matches userID. Same loop and same exhaustion
// semantics as ResolveUserID
func (c *Client) ResolveIMChannelID(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", perr.InvalidArgf("user id is required")
	}

	cursor := ""
	for {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(pageLimit))
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		var page imListResponse
		if err := c.call(ctx, "im.list", params, &page); err != nil {
			return "", perr.WithOp(err, "ResolveIMChannelID")
		}

		for _, im := range page.IMs {
			if im.User == userID {
				c.log.Debug().Str("user", userID).Str("channel", im.ID).Msg("slack dm channel resolved")
				return im.ID, nil
			}
		}

		cursor = page.ResponseMetadata.NextCursor
		if cursor == "" {
			return "", perr.NotFoundf("no dm channel with user %s", userID)
		}
	}
}

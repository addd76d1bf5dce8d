// Package slack provides a minimal Slack Web API and RTM client: just the
// directory, history, messaging and live-stream calls the responder needs
package slack

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "geekfill/internal/platform/errors"
	"geekfill/internal/platform/logger"
)

const (
	baseURLDefault = "https://slack.com/api"
	defaultTimeout = 10 * time.Second

	// directory pages are fetched 100 at a time, like the upstream default
	pageLimit = 100
)

// Options configures the Client
type Options struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client is a minimal Slack Web API client.
// Single-shot calls, no retries; a failed call aborts the run
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("slack"),
		now:  time.Now,
	}
}

// apiResponse is the envelope every Web API method returns
type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func (r apiResponse) ok() bool       { return r.OK }
func (r apiResponse) apiErr() string { return r.Error }

// okayer lets call check the envelope regardless of the concrete response type
type okayer interface {
	ok() bool
	apiErr() string
}

// call POSTs a form-encoded Web API method and decodes the JSON response.
// Slack signals failure in-band with ok:false, which maps to a transport error
func (c *Client) call(ctx context.Context, method string, params url.Values, out okayer) error {
	if params == nil {
		params = url.Values{}
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.opts.BaseURL+"/"+method, strings.NewReader(params.Encode()))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "slack new request failed")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "slack %s failed", method)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("method", method).Msg("slack close body failed")
		}
	}()

	c.log.Debug().
		Str("method", method).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("slack http response")

	if resp.StatusCode == http.StatusTooManyRequests {
		return perr.Newf(perr.ErrorCodeTooManyRequests, "slack rate limited on %s", method)
	}
	if resp.StatusCode != http.StatusOK {
		return perr.Newf(perr.ErrorCodeUnavailable, "slack %s status %d", method, resp.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<22))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "slack read body failed")
	}
	if err := json.Unmarshal(b, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "slack decode %s failed", method)
	}
	if !out.ok() {
		return perr.Newf(perr.ErrorCodeUnavailable, "slack %s returned %s", method, out.apiErr())
	}
	return nil
}

// PostMessage sends text to a channel as the authenticated user
func (c *Client) PostMessage(ctx context.Context, channel, text string) error {
	params := url.Values{}
	params.Set("channel", channel)
	params.Set("text", text)
	params.Set("as_user", "true")

	var out apiResponse
	if err := c.call(ctx, "chat.postMessage", params, &out); err != nil {
		return perr.WithOp(err, "PostMessage")
	}
	c.log.Debug().Str("channel", channel).Int("len", len(text)).Msg("slack message posted")
	return nil
}

// Package github provides a small GitHub REST v3 client for the activity feed
package github

import (
	"io"
	"net/http"
	"time"

	perr "geekfill/internal/platform/errors"
	"geekfill/internal/platform/logger"
)

const (
	baseURLDefault = "https://api.github.com"
	defaultTimeout = 10 * time.Second
	defaultUA      = "geekfill standup responder"
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client is a minimal unauthenticated GitHub REST client.
// It issues single-shot requests: retry policy belongs to the caller
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
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("github"),
		now:  time.Now,
	}
}

// get issues a GET with the identifying headers and maps failures onto
// platform error codes. The caller owns the response body on success
func (c *Client) get(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)

	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "github do failed")
	}

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("github http response")

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		_ = drainAndClose(resp.Body)
		return nil, perr.Newf(perr.ErrorCodeTooManyRequests, "github rate limited")
	default:
		// read a small tail for diagnostics then return
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		_ = resp.Body.Close()
		return nil, perr.Newf(perr.ErrorCodeUnavailable, "github unexpected status %d body %s", resp.StatusCode, string(body))
	}
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 1<<20))
	return rc.Close()
}

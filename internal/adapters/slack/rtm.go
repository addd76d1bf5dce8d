package slack

import (
	"context"
	"net/url"
	"sync"
	"time"

	perr "geekfill/internal/platform/errors"
	"geekfill/internal/platform/logger"

	"github.com/gorilla/websocket"
)

type rtmConnectResponse struct {
	apiResponse
	URL string `json:"url"`
}

// rtmEvent is the subset of RTM events we read off the socket
type rtmEvent struct {
	Type string `json:"type"`
	User string `json:"user"`
	Text string `json:"text"`
	TS   string `json:"ts"`
}

// StreamMessage is one inbound live message from the filtered user
type StreamMessage struct {
	User      string
	Text      string
	Timestamp string
}

// Stream is a live RTM connection. A reader goroutine pushes inbound
// messages onto Messages; exactly one consumer is expected to drain it,
// which is what serializes message handling
type Stream struct {
	conn *websocket.Conn
	log  logger.Logger

	msgs       chan StreamMessage
	quit       chan struct{}
	readerDone chan struct{}
	stopOnce   sync.Once
}

// StartRTM opens the real-time connection and begins reading events,
// keeping only messages from userFilter
func (c *Client) StartRTM(ctx context.Context, userFilter string) (*Stream, error) {
	if userFilter == "" {
		return nil, perr.InvalidArgf("user filter is required")
	}

	var out rtmConnectResponse
	if err := c.call(ctx, "rtm.connect", url.Values{}, &out); err != nil {
		return nil, perr.WithOp(err, "StartRTM")
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, out.URL, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "rtm dial failed")
	}

	s := &Stream{
		conn:       conn,
		log:        *logger.Named("rtm"),
		msgs:       make(chan StreamMessage, 16),
		quit:       make(chan struct{}),
		readerDone: make(chan struct{}),
	}
	go s.readLoop(userFilter)

	s.log.Info().Str("user_filter", userFilter).Msg("rtm connected")
	return s, nil
}

// Messages returns the inbound message channel. It is closed when the
// connection ends, from either side
func (s *Stream) Messages() <-chan StreamMessage { return s.msgs }

// readLoop reads events until the socket closes or Stop is requested
func (s *Stream) readLoop(userFilter string) {
	defer close(s.readerDone)
	defer close(s.msgs)

	for {
		var ev rtmEvent
		if err := s.conn.ReadJSON(&ev); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug().Msg("rtm closed")
			} else {
				s.log.Warn().Err(err).Msg("rtm read failed")
			}
			return
		}
		if ev.Type != "message" || ev.User != userFilter || ev.Text == "" {
			continue
		}
		select {
		case s.msgs <- StreamMessage{User: ev.User, Text: ev.Text, Timestamp: ev.TS}:
		case <-s.quit:
			return
		}
	}
}

// Stop signals a clean disconnect and waits for the reader to confirm.
// Safe to call more than once; in-flight reads finish naturally
func (s *Stream) Stop(ctx context.Context) error {
	var err error
	s.stopOnce.Do(func() {
		close(s.quit)

		deadline := time.Now().Add(3 * time.Second)
		if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
			deadline = d
		}
		_ = s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			deadline,
		)

		select {
		case <-s.readerDone:
		case <-time.After(time.Until(deadline)):
			s.log.Warn().Msg("rtm reader did not confirm close in time")
		case <-ctx.Done():
		}

		err = s.conn.Close()
		s.log.Info().Msg("rtm stopped")
	})
	return err
}

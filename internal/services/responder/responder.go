// Package responder drives one standup conversation: it resolves the bot's
// identity and DM channel, replays the latest prompt from history, then
// answers live prompts until the session terminates
package responder

import (
	"context"

	"geekfill/internal/adapters/slack"
	"geekfill/internal/platform/logger"
	pstrings "geekfill/internal/platform/strings"
)

// The four standup prompts, matched by substring, case-sensitive,
// in this priority order
const (
	MoodPrompt      = "How do you feel today?"
	YesterdayPrompt = "What did you do yesterday?"
	TodayPrompt     = "What will you do today?"
	BlockingPrompt  = "Anything blocking your progress?"
)

// yesterday answers separate one summary line per repository
const answerSeparator = "\n"

// State is the session lifecycle
type State int

const (
	// StateIdle is the initial state, before the live connection is up
	StateIdle State = iota

	// StateListening means live messages are being processed in arrival order
	StateListening

	// StateTerminated is absorbing; no further message is processed
	StateTerminated
)

// String implements fmt.Stringer
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Engine is the standup response engine port
type Engine interface {
	Mood() string
	Blockers() string
	Yesterday(ctx context.Context, separator string) (string, error)
	Today(ctx context.Context) (string, error)
	HasActivities(ctx context.Context) (bool, error)
	ResetCache()
}

// Directory resolves identities, channels and recent history
type Directory interface {
	ResolveUserID(ctx context.Context, q slack.UserQuery) (string, error)
	ResolveIMChannelID(ctx context.Context, userID string) (string, error)
	RecentHistory(ctx context.Context, channel string, count int, unreadsOnly bool) ([]slack.Message, error)
}

// Messenger posts replies
type Messenger interface {
	PostMessage(ctx context.Context, channel, text string) error
}

// Stream is a live inbound message feed owned by the responder for the
// session's duration
type Stream interface {
	Messages() <-chan slack.StreamMessage
	Stop(ctx context.Context) error
}

// ConnectFunc opens the live connection filtered to one user's messages
type ConnectFunc func(ctx context.Context, userFilter string) (Stream, error)

// Config for a responder session
type Config struct {
	// BotName is the directory name of the standup bot
	BotName string

	// ExitOnEnd terminates the session once the terminal prompt is answered
	// or a message cannot be handled ("respond" mode). Without it the
	// session keeps listening ("watch" mode)
	ExitOnEnd bool
}

// Responder runs one conversational session. Messages are handled strictly
// one at a time: each handler runs to completion, replies included, before
// the next message is taken off the stream
type Responder struct {
	engine  Engine
	dir     Directory
	msgr    Messenger
	connect ConnectFunc
	cfg     Config

	log   logger.Logger
	state State
}

// New builds a Responder in the Idle state
func New(engine Engine, dir Directory, msgr Messenger, connect ConnectFunc, cfg Config) *Responder {
	if cfg.BotName == "" {
		cfg.BotName = "geekbot"
	}
	return &Responder{
		engine:  engine,
		dir:     dir,
		msgr:    msgr,
		connect: connect,
		cfg:     cfg,
		log:     *logger.Named("responder"),
		state:   StateIdle,
	}
}

// State reports the session state
func (r *Responder) State() State { return r.state }

// Run resolves the session, bootstraps from the most recent history message,
// then serves live messages until termination or until the remote side
// closes the stream. Any transport failure aborts the session
func (r *Responder) Run(ctx context.Context) error {
	botID, err := r.dir.ResolveUserID(ctx, slack.UserQuery{Name: r.cfg.BotName, IsBot: true})
	if err != nil {
		return err
	}
	channelID, err := r.dir.ResolveIMChannelID(ctx, botID)
	if err != nil {
		return err
	}
	history, err := r.dir.RecentHistory(ctx, channelID, 1, true)
	if err != nil {
		return err
	}

	stream, err := r.connect(ctx, botID)
	if err != nil {
		return err
	}

	r.state = StateListening
	r.log.Info().Str("bot_id", botID).Str("channel", channelID).
		Bool("exit_on_end", r.cfg.ExitOnEnd).Stringer("state", r.state).Msg("session started")

	// bootstrap: the newest history message is handled as if just received
	if len(history) > 0 {
		if stop, err := r.handle(ctx, channelID, history[0].Text); err != nil || stop {
			return r.finish(ctx, stream, err)
		}
	}

	for msg := range stream.Messages() {
		if stop, err := r.handle(ctx, channelID, msg.Text); err != nil || stop {
			return r.finish(ctx, stream, err)
		}
	}

	// remote side ended the stream
	return r.finish(ctx, stream, nil)
}

// handle processes one inbound message and reports whether the session
// should terminate afterwards
func (r *Responder) handle(ctx context.Context, channel, text string) (stop bool, err error) {
	has, err := r.engine.HasActivities(ctx)
	if err != nil {
		return false, err
	}
	if !has {
		r.log.Info().Str("message", text).
			Msg("no github activity for this timeframe; you may want to send a cancel, skipping message")
		if r.cfg.ExitOnEnd {
			return true, nil
		}
		r.engine.ResetCache()
		return false, nil
	}

	switch {
	case pstrings.Contains(text, MoodPrompt):
		return false, r.msgr.PostMessage(ctx, channel, r.engine.Mood())

	case pstrings.Contains(text, YesterdayPrompt):
		answer, err := r.engine.Yesterday(ctx, answerSeparator)
		if err != nil {
			return false, err
		}
		return false, r.msgr.PostMessage(ctx, channel, answer)

	case pstrings.Contains(text, TodayPrompt):
		answer, err := r.engine.Today(ctx)
		if err != nil {
			return false, err
		}
		return false, r.msgr.PostMessage(ctx, channel, answer)

	case pstrings.Contains(text, BlockingPrompt):
		// the terminal prompt: a completed standup ends the session in respond mode
		if err := r.msgr.PostMessage(ctx, channel, r.engine.Blockers()); err != nil {
			return false, err
		}
		return r.cfg.ExitOnEnd, nil

	default:
		r.log.Info().Str("message", text).Msg("don't know how to answer")
		return r.cfg.ExitOnEnd, nil
	}
}

// finish stops the live connection cleanly and absorbs the session
func (r *Responder) finish(ctx context.Context, stream Stream, cause error) error {
	stopErr := stream.Stop(ctx)
	r.state = StateTerminated
	r.log.Info().Stringer("state", r.state).Msg("session terminated")
	if cause != nil {
		return cause
	}
	return stopErr
}

package standup

import (
	"context"
	"strings"
	"time"

	"geekfill/internal/platform/logger"
	pstrings "geekfill/internal/platform/strings"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// NoActivityAnswer is the sentinel for answers with nothing to report
const NoActivityAnswer = "nope"

// Fetcher is the activity source port. A zero cutoff means the whole feed
type Fetcher interface {
	UserEvents(ctx context.Context, user string, cutoff time.Time) ([]Activity, error)
}

// Engine answers the four standup questions for one GitHub user.
// The activity fetch is cached for the duration of one standup cycle;
// the subjective answers start a new cycle by resetting the cache.
// An Engine belongs to a single session and is not safe for concurrent use
type Engine struct {
	username string
	from     string
	renderer Renderer
	fetch    Fetcher
	phrases  PhraseSource

	parser *when.Parser
	log    logger.Logger
	now    func() time.Time

	cache  []Activity
	cached bool
}

// NewEngine builds an Engine. Blank organization entries are dropped;
// from is a natural-language cutoff expression like "yesterday"
func NewEngine(username string, organizations []string, from string, fetch Fetcher, phrases PhraseSource) *Engine {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	return &Engine{
		username: username,
		from:     from,
		renderer: Renderer{Organizations: pstrings.Compact(organizations)},
		fetch:    fetch,
		phrases:  phrases,
		parser:   w,
		log:      *logger.Named("standup"),
		now:      time.Now,
	}
}

// Mood answers "How do you feel today?". It starts a new cycle
func (e *Engine) Mood() string {
	e.ResetCache()
	return pstrings.Capitalize(e.phrases.Adjective())
}

// Blockers answers "Anything blocking your progress?". It starts a new cycle
func (e *Engine) Blockers() string {
	e.ResetCache()
	return pstrings.Capitalize(e.phrases.HackerPhrase())
}

// Activities returns the cycle's activity set, fetching and filtering it on
// first use. Only activities that survive the organization filter are kept
func (e *Engine) Activities(ctx context.Context) ([]Activity, error) {
	if e.cached {
		return e.cache, nil
	}

	acts, err := e.fetch.UserEvents(ctx, e.username, e.cutoff())
	if err != nil {
		return nil, err
	}

	kept := make([]Activity, 0, len(acts))
	for _, a := range acts {
		if e.renderer.RepoName(a) != "" {
			kept = append(kept, a)
		}
	}

	e.cache = kept
	e.cached = true
	e.log.Debug().Int("fetched", len(acts)).Int("kept", len(kept)).Msg("activity cycle populated")
	return e.cache, nil
}

// HasActivities reports whether the current cycle has anything to report
func (e *Engine) HasActivities(ctx context.Context) (bool, error) {
	acts, err := e.Activities(ctx)
	if err != nil {
		return false, err
	}
	return len(acts) > 0, nil
}

// Yesterday answers "What did you do yesterday?" as deduplicated summary
// lines joined with separator
func (e *Engine) Yesterday(ctx context.Context, separator string) (string, error) {
	acts, err := e.Activities(ctx)
	if err != nil {
		return "", err
	}
	if separator == "" {
		separator = "\n"
	}
	text := e.renderer.RenderAll(acts, separator)
	if text == "" {
		return NoActivityAnswer, nil
	}
	return text, nil
}

// Today answers "What will you do today?" by projecting the cycle's distinct
// repositories forward
func (e *Engine) Today(ctx context.Context) (string, error) {
	acts, err := e.Activities(ctx)
	if err != nil {
		return "", err
	}

	names := e.renderer.RepoNames(acts)
	switch len(names) {
	case 0:
		return NoActivityAnswer, nil
	case 1:
		return "Probably more work on " + names[0], nil
	default:
		head := strings.Join(names[:len(names)-1], ", ")
		return "Probably more work on " + head + " and " + names[len(names)-1], nil
	}
}

// ResetCache clears the cached activity set, forcing the next answer to
// fetch again. Idempotent, callable at any time
func (e *Engine) ResetCache() {
	e.cache = nil
	e.cached = false
}

// cutoff parses the configured expression into an absolute time.
// Absent or unparsable expressions mean no cutoff at all
func (e *Engine) cutoff() time.Time {
	if strings.TrimSpace(e.from) == "" {
		return time.Time{}
	}
	r, err := e.parser.Parse(e.from, e.now())
	if err != nil || r == nil {
		e.log.Debug().Str("from", e.from).Msg("cutoff expression not understood; using whole feed")
		return time.Time{}
	}
	return r.Time
}

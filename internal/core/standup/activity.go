// Package standup turns a feed of GitHub activity into standup answers.
// The rendering and answer logic is pure; fetching and phrase generation
// come in through small ports so they can be stubbed in tests.
package standup

import "time"

// Activity is one canonical GitHub event record. The events API has grown
// three shapes over time (an embedded repository object, a repo reference,
// or just a ref string); the source adapter normalizes all of them into
// this record before any rendering logic runs.
type Activity struct {
	// Type is the raw event type, e.g. "PushEvent", "CreateEvent", "WatchEvent"
	Type string

	// CreatedAt is when the event happened
	CreatedAt time.Time

	// Repo is the raw repository field, usually "owner/name".
	// Empty when the event carried no usable repository reference
	Repo string

	// Description is an optional human blurb, only seen on CreateEvent
	Description string
}

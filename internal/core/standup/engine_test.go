package standup

import (
	"context"
	"testing"
	"time"

	kit "geekfill/internal/platform/testkit"
)

// stubFetcher plays a fixed feed and records calls
type stubFetcher struct {
	feed    []Activity
	err     error
	calls   int
	cutoffs []time.Time
}

func (f *stubFetcher) UserEvents(_ context.Context, _ string, cutoff time.Time) ([]Activity, error) {
	f.calls++
	f.cutoffs = append(f.cutoffs, cutoff)
	return f.feed, f.err
}

// stubPhrases is a deterministic PhraseSource
type stubPhrases struct{}

func (stubPhrases) Adjective() string    { return "sleek" }
func (stubPhrases) HackerPhrase() string { return "we need to reboot the optical array!" }

func newTestEngine(feed []Activity, orgs []string, from string) (*Engine, *stubFetcher) {
	f := &stubFetcher{feed: feed}
	return NewEngine("octocat", orgs, from, f, stubPhrases{}), f
}

func TestActivities_CachedWithinOneCycle(t *testing.T) {
	t.Parallel()

	e, f := newTestEngine([]Activity{act("PushEvent", "org/a")}, nil, "")
	ctx := context.Background()

	first, err := e.Activities(ctx)
	if err != nil {
		t.Fatalf("Activities: %v", err)
	}
	second, err := e.Activities(ctx)
	if err != nil {
		t.Fatalf("Activities: %v", err)
	}
	if f.calls != 1 {
		t.Fatalf("expected exactly one fetch, got %d", f.calls)
	}
	if len(first) != len(second) || first[0] != second[0] {
		t.Fatalf("cached result differs: %+v vs %+v", first, second)
	}
}

func TestResetCacheForcesExactlyOneNewFetch(t *testing.T) {
	t.Parallel()

	e, f := newTestEngine([]Activity{act("PushEvent", "org/a")}, nil, "")
	ctx := context.Background()

	_, _ = e.Activities(ctx)
	e.ResetCache()
	e.ResetCache() // idempotent
	_, _ = e.Activities(ctx)
	_, _ = e.Activities(ctx)

	if f.calls != 2 {
		t.Fatalf("expected 2 fetches across two cycles, got %d", f.calls)
	}
}

func TestEmptyResultIsCachedToo(t *testing.T) {
	t.Parallel()

	e, f := newTestEngine(nil, nil, "")
	ctx := context.Background()

	if has, err := e.HasActivities(ctx); err != nil || has {
		t.Fatalf("HasActivities=%v,%v want false,nil", has, err)
	}
	_, _ = e.Activities(ctx)
	if f.calls != 1 {
		t.Fatalf("empty cycle refetched: %d calls", f.calls)
	}
}

func TestMoodAndBlockersResetTheCycle(t *testing.T) {
	t.Parallel()

	e, f := newTestEngine([]Activity{act("PushEvent", "org/a")}, nil, "")
	ctx := context.Background()

	_, _ = e.Activities(ctx)
	if got := e.Mood(); got != "Sleek" {
		t.Fatalf("Mood=%q want capitalized adjective", got)
	}
	_, _ = e.Activities(ctx)
	if got := e.Blockers(); got != "We need to reboot the optical array!" {
		t.Fatalf("Blockers=%q want capitalized phrase", got)
	}
	_, _ = e.Activities(ctx)

	if f.calls != 3 {
		t.Fatalf("mood/blockers should each start a new cycle: %d calls", f.calls)
	}
}

func TestOrganizationFilterAppliedAtFetchTime(t *testing.T) {
	t.Parallel()

	feed := []Activity{
		act("PushEvent", "org/kept"),
		act("PushEvent", "stranger/dropped"),
	}
	// blank org entries are dropped at construction
	e, _ := newTestEngine(feed, []string{"", "org", "  "}, "")

	acts, err := e.Activities(context.Background())
	if err != nil {
		t.Fatalf("Activities: %v", err)
	}
	if len(acts) != 1 || acts[0].Repo != "org/kept" {
		t.Fatalf("filter not applied at fetch time: %+v", acts)
	}
}

func TestYesterday(t *testing.T) {
	t.Parallel()

	t.Run("no activity", func(t *testing.T) {
		t.Parallel()
		e, _ := newTestEngine(nil, nil, "")
		got, err := e.Yesterday(context.Background(), "\n")
		if err != nil || got != NoActivityAnswer {
			t.Fatalf("Yesterday=%q,%v want %q", got, err, NoActivityAnswer)
		}
	})

	t.Run("watch suppressed and deduped", func(t *testing.T) {
		t.Parallel()
		feed := []Activity{
			act("CreateEvent", "org/r1"),
			act("WatchEvent", "org/r1"),
		}
		e, _ := newTestEngine(feed, []string{"org"}, "")
		got, err := e.Yesterday(context.Background(), "\n")
		if err != nil || got != "Created r1" {
			t.Fatalf("Yesterday=%q,%v want %q", got, err, "Created r1")
		}
	})

	t.Run("only watches still answers nope", func(t *testing.T) {
		t.Parallel()
		e, _ := newTestEngine([]Activity{act("WatchEvent", "org/r1")}, []string{"org"}, "")
		got, err := e.Yesterday(context.Background(), "\n")
		if err != nil || got != NoActivityAnswer {
			t.Fatalf("Yesterday=%q,%v want %q", got, err, NoActivityAnswer)
		}
	})

	t.Run("custom separator", func(t *testing.T) {
		t.Parallel()
		feed := []Activity{act("PushEvent", "org/a"), act("PushEvent", "org/b")}
		e, _ := newTestEngine(feed, []string{"org"}, "")
		got, _ := e.Yesterday(context.Background(), "\n  ")
		if got != "Worked on a\n  Worked on b" {
			t.Fatalf("Yesterday=%q", got)
		}
	})
}

func TestToday(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		feed []Activity
		want string
	}{
		{"zero repos", nil, NoActivityAnswer},
		{"one repo", []Activity{act("PushEvent", "org/x")}, "Probably more work on x"},
		{"three repos, final and without comma",
			[]Activity{act("PushEvent", "org/a"), act("PushEvent", "org/b"), act("PushEvent", "org/c")},
			"Probably more work on a, b and c"},
		{"duplicates collapse",
			[]Activity{act("PushEvent", "org/a"), act("CreateEvent", "org/a"), act("PushEvent", "org/b")},
			"Probably more work on a and b"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			e, _ := newTestEngine(c.feed, []string{"org"}, "")
			got, err := e.Today(context.Background())
			if err != nil || got != c.want {
				t.Fatalf("Today=%q,%v want %q", got, err, c.want)
			}
		})
	}
}

func TestCutoffParsing(t *testing.T) {
	t.Parallel()

	base := time.Date(2018, 5, 2, 15, 0, 0, 0, time.UTC)

	t.Run("natural language expression produces a cutoff", func(t *testing.T) {
		t.Parallel()
		e, f := newTestEngine(nil, nil, "yesterday")
		kit.Swap(t, &e.now, func() time.Time { return base })

		_, _ = e.Activities(context.Background())
		if len(f.cutoffs) != 1 || f.cutoffs[0].IsZero() {
			t.Fatalf("expected a non-zero cutoff, got %v", f.cutoffs)
		}
		if f.cutoffs[0].After(base) {
			t.Fatalf("yesterday cutoff after reference now: %v", f.cutoffs[0])
		}
	})

	t.Run("unparsable expression falls back to whole feed", func(t *testing.T) {
		t.Parallel()
		e, f := newTestEngine(nil, nil, "zorp blarg")
		_, _ = e.Activities(context.Background())
		if len(f.cutoffs) != 1 || !f.cutoffs[0].IsZero() {
			t.Fatalf("unparsable expression should mean zero cutoff, got %v", f.cutoffs)
		}
	})

	t.Run("absent expression means no cutoff", func(t *testing.T) {
		t.Parallel()
		e, f := newTestEngine(nil, nil, "   ")
		_, _ = e.Activities(context.Background())
		if !f.cutoffs[0].IsZero() {
			t.Fatalf("blank expression should mean zero cutoff, got %v", f.cutoffs)
		}
	})
}

func TestFetchErrorSurfaces(t *testing.T) {
	t.Parallel()

	f := &stubFetcher{err: context.DeadlineExceeded}
	e := NewEngine("octocat", nil, "", f, stubPhrases{})

	if _, err := e.Activities(context.Background()); err == nil {
		t.Fatalf("fetch error swallowed")
	}
	// a failed fetch must not poison the cache
	f.err = nil
	f.feed = []Activity{act("PushEvent", "org/a")}
	acts, err := e.Activities(context.Background())
	if err != nil || len(acts) != 1 {
		t.Fatalf("engine did not recover after failed fetch: %v %v", acts, err)
	}
}

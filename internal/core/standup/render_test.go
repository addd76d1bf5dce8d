package standup

import (
	"strings"
	"testing"
	"time"
)

func act(typ, repo string) Activity {
	return Activity{Type: typ, CreatedAt: time.Now(), Repo: repo}
}

func TestRepoName_OrgFilter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		orgs []string
		repo string
		want string
	}{
		{"no orgs passes through", nil, "owner/project", "owner/project"},
		{"matching org stripped", []string{"org"}, "org/project", "project"},
		{"first matching org wins", []string{"a", "b"}, "b/project", "project"},
		{"non-matching filtered out", []string{"org"}, "other/project", ""},
		{"prefix only, not substring", []string{"org"}, "fork/org/project", ""},
		{"empty repo stays empty", []string{"org"}, "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			r := Renderer{Organizations: c.orgs}
			if got := r.RepoName(act("PushEvent", c.repo)); got != c.want {
				t.Fatalf("RepoName(%q) with orgs %v = %q want %q", c.repo, c.orgs, got, c.want)
			}
		})
	}
}

func TestToText(t *testing.T) {
	t.Parallel()

	r := Renderer{}
	cases := []struct {
		a    Activity
		want string
	}{
		{Activity{Type: "CreateEvent", Repo: "org/fresh"}, "Created org/fresh"},
		{Activity{Type: "CreateEvent", Repo: "org/fresh", Description: "a fresh start"}, "Created org/fresh (a fresh start)"},
		{Activity{Type: "WatchEvent", Repo: "org/starred"}, ""},
		{Activity{Type: "PushEvent", Repo: "org/busy"}, "Worked on org/busy"},
		{Activity{Type: "IssuesEvent", Repo: "org/busy"}, "Worked on org/busy"}, // any other type
		{Activity{Type: "PushEvent", Repo: ""}, ""},                             // no repo, no line
	}
	for _, c := range cases {
		if got := r.ToText(c.a); got != c.want {
			t.Errorf("ToText(%+v)=%q want %q", c.a, got, c.want)
		}
	}
}

func TestRenderAll_DedupFirstOccurrenceWins(t *testing.T) {
	t.Parallel()

	r := Renderer{}
	acts := []Activity{
		act("PushEvent", "org/a"),
		act("CreateEvent", "org/b"),
		act("PushEvent", "org/a"), // repeat, skipped
		act("IssuesEvent", "org/b"),
		act("PushEvent", "org/c"),
	}
	got := r.RenderAll(acts, ", ")
	want := "Worked on org/a, Created org/b, Worked on org/c"
	if got != want {
		t.Fatalf("RenderAll=%q want %q", got, want)
	}
	// never two summaries for the same repo regardless of position
	for _, name := range []string{"org/a", "org/b", "org/c"} {
		if strings.Count(got, name) != 1 {
			t.Fatalf("repo %s rendered more than once: %q", name, got)
		}
	}
}

func TestRenderAll_WatchEventSuppressedAndDoesNotClaimRepo(t *testing.T) {
	t.Parallel()

	r := Renderer{Organizations: []string{"org"}}

	// a suppressed watch event must not count as the repo's one mention
	acts := []Activity{
		act("CreateEvent", "org/r1"),
		act("WatchEvent", "org/r1"),
	}
	if got := r.RenderAll(acts, "\n"); got != "Created r1" {
		t.Fatalf("RenderAll=%q want %q", got, "Created r1")
	}

	// a watch first does not block a later substantive event on the same repo
	acts2 := []Activity{
		act("WatchEvent", "org/r1"),
		act("PushEvent", "org/r1"),
	}
	if got := r.RenderAll(acts2, "\n"); got != "Worked on r1" {
		t.Fatalf("watch claimed the repo: %q", got)
	}
}

func TestRenderAll_FilteredOutReposExcluded(t *testing.T) {
	t.Parallel()

	r := Renderer{Organizations: []string{"org"}}
	acts := []Activity{
		act("PushEvent", "other/x"),
		act("PushEvent", "org/kept"),
	}
	if got := r.RenderAll(acts, "\n"); got != "Worked on kept" {
		t.Fatalf("RenderAll=%q, filtered repo leaked", got)
	}
}

func TestRepoNames_DistinctFirstSeenOrder(t *testing.T) {
	t.Parallel()

	r := Renderer{Organizations: []string{"org"}}
	acts := []Activity{
		act("PushEvent", "org/b"),
		act("PushEvent", "org/a"),
		act("WatchEvent", "org/b"), // repeat via different type still dedups
		act("PushEvent", "stranger/z"),
	}
	got := r.RepoNames(acts)
	if len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Fatalf("RepoNames=%v want [b a]", got)
	}
}

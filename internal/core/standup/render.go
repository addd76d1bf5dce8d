package standup

import (
	"fmt"
	"strings"
)

// Renderer maps activities to repository names and one-line summaries.
// Organizations, when configured, act as an allow-list: a repository only
// survives if it is namespaced under one of them, and the prefix is stripped
type Renderer struct {
	Organizations []string
}

// RepoName derives the filtered repository name for an activity.
// Empty means the activity carried no usable repository or was filtered out
func (r Renderer) RepoName(a Activity) string {
	name := a.Repo
	if len(r.Organizations) == 0 {
		return name
	}
	for _, org := range r.Organizations {
		prefix := org + "/"
		if strings.HasPrefix(name, prefix) {
			return strings.TrimPrefix(name, prefix)
		}
	}
	return ""
}

// ToText renders one activity as a short summary line.
// WatchEvents are noise and render to nothing
func (r Renderer) ToText(a Activity) string {
	name := r.RepoName(a)
	if name == "" {
		return ""
	}

	switch a.Type {
	case "CreateEvent":
		if a.Description != "" {
			return fmt.Sprintf("Created %s (%s)", name, a.Description)
		}
		return "Created " + name
	case "WatchEvent":
		return ""
	default:
		return "Worked on " + name
	}
}

// RenderAll joins activity summaries with separator, keeping only the first
// activity seen per repository and dropping empty summaries. A suppressed
// summary does not claim its repository, so a later substantive activity on
// the same repository still renders
func (r Renderer) RenderAll(activities []Activity, separator string) string {
	seen := make(map[string]bool, len(activities))
	texts := make([]string, 0, len(activities))

	for _, a := range activities {
		name := r.RepoName(a)
		if seen[name] {
			continue
		}
		text := r.ToText(a)
		if text == "" {
			continue
		}
		seen[name] = true
		texts = append(texts, text)
	}

	return strings.Join(texts, separator)
}

// RepoNames returns the distinct filtered repository names in first-seen order
func (r Renderer) RepoNames(activities []Activity) []string {
	seen := make(map[string]bool, len(activities))
	names := make([]string, 0, len(activities))

	for _, a := range activities {
		name := r.RepoName(a)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

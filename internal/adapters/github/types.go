package github

import (
	"time"

	"geekfill/internal/core/standup"
)

// Event is the raw activity record from /users/{user}/events.
// Three generations of the API are modelled at once: a full repository
// object, a short repo reference ("owner/name"), or a bare ref string.
// Normalize picks whichever is present, in that order
type Event struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	CreatedAt   time.Time  `json:"created_at"`
	Repository  *NamedRepo `json:"repository,omitempty"`
	Repo        *RepoRef   `json:"repo,omitempty"`
	Ref         string     `json:"ref,omitempty"`
	Description string     `json:"description,omitempty"`
	Payload     Payload    `json:"payload"`
}

// NamedRepo is the oldest event shape: an embedded repository object
type NamedRepo struct {
	Name string `json:"name"`
}

// RepoRef is the current event shape: id plus "owner/name"
type RepoRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Payload carries the type-specific fields we care about.
// Current CreateEvents put ref and description here rather than top level
type Payload struct {
	Ref         string `json:"ref"`
	Description string `json:"description"`
}

// Normalize collapses the raw shape into one canonical activity record
func (e Event) Normalize() standup.Activity {
	return standup.Activity{
		Type:        e.Type,
		CreatedAt:   e.CreatedAt,
		Repo:        e.repoField(),
		Description: e.description(),
	}
}

func (e Event) repoField() string {
	switch {
	case e.Repository != nil && e.Repository.Name != "":
		return e.Repository.Name
	case e.Repo != nil && e.Repo.Name != "":
		return e.Repo.Name
	case e.Ref != "":
		return e.Ref
	case e.Payload.Ref != "":
		return e.Payload.Ref
	default:
		return ""
	}
}

func (e Event) description() string {
	if e.Description != "" {
		return e.Description
	}
	return e.Payload.Description
}

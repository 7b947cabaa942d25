package models

import "context"

// ReleaseRecord is the normalized output of a single source fetch. It is
// produced fresh on every run and never persisted.
type ReleaseRecord struct {
	SourceKey   string   `json:"source_key"`
	SourceName  string   `json:"source_name"`
	Content     string   `json:"content"`
	URL         string   `json:"url"`
	Versions    []string `json:"versions,omitempty"`
	Fingerprint string   `json:"fingerprint,omitempty"`
}

type Category string

const (
	CategoryNewFeatures   Category = "New Features"
	CategoryImprovements  Category = "Improvements"
	CategoryBugFixes      Category = "Bug Fixes"
	CategoryPerformance   Category = "Performance"
	CategoryIDE           Category = "IDE & Editor"
	CategoryDocumentation Category = "Documentation"
	CategoryChanges       Category = "Changes"
	CategoryOther         Category = "Other Changes"
)

// CategoryOrder is the fixed display order for digest sections.
// CategoryOther is the catch-all and always renders last.
var CategoryOrder = []Category{
	CategoryNewFeatures,
	CategoryImprovements,
	CategoryIDE,
	CategoryPerformance,
	CategoryBugFixes,
	CategoryChanges,
	CategoryDocumentation,
	CategoryOther,
}

// ParsedRelease is the classified view of one source's new content,
// produced by either classification strategy.
type ParsedRelease struct {
	Summary  string                `json:"summary"`
	TryThis  []string              `json:"try_this,omitempty"`
	Sections map[Category][]string `json:"categories,omitempty"`
}

// ReleaseSource fetches one configured feed. A (nil, nil) return means the
// source has nothing new, which is an expected outcome rather than an error.
type ReleaseSource interface {
	Fetch(ctx context.Context, seenVersions []string) (*ReleaseRecord, error)
	Key() string
	Name() string
}

// ReleaseParser turns a fetched record into a classified ParsedRelease.
type ReleaseParser interface {
	ParseRelease(ctx context.Context, rec *ReleaseRecord) (*ParsedRelease, error)
}

// Transport delivers one digest chunk. Chunks are sent strictly in order
// and the first failure aborts the remainder of the run.
type Transport interface {
	Send(ctx context.Context, text string) error
}

// CommandRunner executes a prompt against a local claude CLI session.
type CommandRunner interface {
	Run(ctx context.Context, prompt string) (string, error)
}

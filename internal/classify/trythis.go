package classify

import (
	"regexp"
	"strings"
)

const (
	maxTryThis    = 3
	tryThisMaxLen = 80
)

// User-facing change lines start with an add/change verb; anything else is
// not something a reader can act on.
var actionableMarker = regexp.MustCompile(`^(added?|changed?)\b`)

// skipMarkers filter out plumbing a reader cannot try directly.
var skipMarkers = compileAll(
	`^fix`, `\binternal\b`, `\brefactor`, `\btypo\b`,
	`\[sdk\]`, `\[ide\]`, `\bdeprecation\b`,
)

// promoteMarkers flag concretely actionable items: new keystrokes, commands,
// settings, things a reader can invoke immediately.
var promoteMarkers = compileAll(
	`\bshortcut\b`, `\bcommand\b`, `\bsetting\b`, `\bmode\b`,
	`\bautocomplete\b`, `\bnavigation\b`, `ctrl\+`, `cmd\+`,
)

// WorthTrying picks up to three changes a reader could act on today.
// Promoted items keep their relative order ahead of the rest; within each
// tier input order is preserved.
func WorthTrying(changes []string) []string {
	var promoted, regular []string
	for _, change := range changes {
		lower := strings.ToLower(change)
		if matchesAny(skipMarkers, lower) {
			continue
		}
		if !actionableMarker.MatchString(lower) {
			continue
		}
		if matchesAny(promoteMarkers, lower) {
			promoted = append(promoted, change)
		} else {
			regular = append(regular, change)
		}
	}

	notable := append(promoted, regular...)
	if len(notable) > maxTryThis {
		notable = notable[:maxTryThis]
	}

	out := make([]string, len(notable))
	for i, item := range notable {
		out[i] = truncate(item, tryThisMaxLen)
	}
	return out
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

package state

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ObiAU/techdigest/internal/models"
)

// MaxSeenVersions caps per-source version history. When the cap is hit the
// smallest versions are evicted first.
const MaxSeenVersions = 50

// SourceState is the per-source novelty record. Version-identified sources
// use SeenVersions; scraped sources use ContentHash.
type SourceState struct {
	SeenVersions []string `json:"seen_versions,omitempty"`
	ContentHash  string   `json:"content_hash,omitempty"`
}

// DigestState maps source keys to their novelty records. A run loads it
// once, mutates a scratch copy, and persists only after full delivery.
type DigestState map[string]SourceState

// Seen returns the recorded version identifiers for a source.
func (s DigestState) Seen(key string) []string {
	return s[key].SeenVersions
}

// IsNew reports whether a fetched record carries unseen content. Records
// without a fingerprint were already filtered by version upstream.
func (s DigestState) IsNew(rec *models.ReleaseRecord) bool {
	if rec.Fingerprint == "" {
		return true
	}
	return s[rec.SourceKey].ContentHash != rec.Fingerprint
}

// Apply folds one delivered record into the state: new versions are merged
// into the capped seen set and the fingerprint is overwritten.
func (s DigestState) Apply(rec *models.ReleaseRecord) {
	entry := s[rec.SourceKey]
	if len(rec.Versions) > 0 {
		entry.SeenVersions = capVersions(mergeVersions(entry.SeenVersions, rec.Versions))
	}
	if rec.Fingerprint != "" {
		entry.ContentHash = rec.Fingerprint
	}
	s[rec.SourceKey] = entry
}

// Clone returns an independent copy safe to mutate while the original
// remains the durable baseline.
func (s DigestState) Clone() DigestState {
	clone := make(DigestState, len(s))
	for key, entry := range s {
		versions := make([]string, len(entry.SeenVersions))
		copy(versions, entry.SeenVersions)
		clone[key] = SourceState{
			SeenVersions: versions,
			ContentHash:  entry.ContentHash,
		}
	}
	return clone
}

func mergeVersions(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing)+len(incoming))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, v := range existing {
		if !seen[v] {
			seen[v] = true
			merged = append(merged, v)
		}
	}
	for _, v := range incoming {
		if !seen[v] {
			seen[v] = true
			merged = append(merged, v)
		}
	}
	return merged
}

// capVersions sorts ascending and keeps the greatest MaxSeenVersions
// entries, so eviction always discards the oldest releases.
func capVersions(versions []string) []string {
	sort.Slice(versions, func(i, j int) bool {
		return compareVersions(versions[i], versions[j]) < 0
	})
	if len(versions) > MaxSeenVersions {
		versions = versions[len(versions)-MaxSeenVersions:]
	}
	return versions
}

// compareVersions orders dotted version strings numerically per segment,
// falling back to string comparison for non-numeric segments.
func compareVersions(a, b string) int {
	as := strings.Split(strings.TrimPrefix(a, "v"), ".")
	bs := strings.Split(strings.TrimPrefix(b, "v"), ".")

	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		if aerr == nil && berr == nil {
			if an != bn {
				if an < bn {
					return -1
				}
				return 1
			}
			continue
		}
		if cmp := strings.Compare(as[i], bs[i]); cmp != 0 {
			return cmp
		}
	}

	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	default:
		return 0
	}
}

package state

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Store persists DigestState as an indented JSON document so operators can
// inspect and hand-edit it between runs.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted state. A missing file is a first run; a
// malformed file or entry degrades to empty rather than aborting.
func (s *Store) Load() (DigestState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return DigestState{}, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("state file %s is malformed, starting fresh: %v", s.path, err)
		return DigestState{}, nil
	}

	st := make(DigestState, len(raw))
	for key, msg := range raw {
		var entry SourceState
		if err := json.Unmarshal(msg, &entry); err != nil {
			log.Printf("skipping malformed state entry %q: %v", key, err)
			continue
		}
		st[key] = entry
	}
	return st, nil
}

// Save writes the state atomically via a temp file rename so a crash
// mid-write never leaves a truncated document.
func (s *Store) Save(st DigestState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create state dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// Reset clears state for the named sources, or everything when keys is
// empty. Unlike the digest cycle this writes immediately.
func (s *Store) Reset(keys []string) error {
	if len(keys) == 0 {
		return s.Save(DigestState{})
	}

	st, err := s.Load()
	if err != nil {
		return err
	}
	for _, key := range keys {
		delete(st, key)
	}
	return s.Save(st)
}

package bot

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// OffsetStore persists the last acknowledged Telegram update ID so a
// restart never replays already-handled commands.
type OffsetStore struct {
	path string
}

func NewOffsetStore(path string) *OffsetStore {
	return &OffsetStore{path: path}
}

// Load returns the stored offset, or (0, false) when the file is missing
// or unreadable. Starting from zero only re-reads recent updates.
func (s *OffsetStore) Load() (int, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0, false
	}
	offset, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false
	}
	return offset, true
}

func (s *OffsetStore) Save(offset int) error {
	return os.WriteFile(s.path, []byte(fmt.Sprintf("%d\n", offset)), 0o644)
}

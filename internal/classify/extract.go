package classify

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var numberedMarker = regexp.MustCompile(`^\d+\.\s*`)

// minChangeLen drops noise like bare "N/A" or stray markers.
const minChangeLen = 6

// ExtractChanges pulls individual change lines out of raw release body text.
// Only bulleted ("-", "*") and numbered ("1.") lines count; everything else
// is prose and is ignored. Input order is preserved.
func ExtractChanges(body string) []string {
	if body == "" {
		return nil
	}

	var changes []string
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)

		var item string
		switch {
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			item = strings.TrimSpace(line[2:])
		case strings.HasPrefix(line, "-"), strings.HasPrefix(line, "*"):
			item = strings.TrimSpace(line[1:])
		case numberedMarker.MatchString(line):
			item = numberedMarker.ReplaceAllString(line, "")
		default:
			continue
		}

		if utf8.RuneCountInString(item) >= minChangeLen {
			changes = append(changes, item)
		}
	}
	return changes
}

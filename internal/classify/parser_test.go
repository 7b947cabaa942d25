package classify

import (
	"context"
	"strings"
	"testing"

	"github.com/ObiAU/techdigest/internal/models"
)

func TestRuleParserSingleVersion(t *testing.T) {
	rec := &models.ReleaseRecord{
		SourceName: "Claude Code",
		Versions:   []string{"v1.2.3"},
		Content:    "## v1.2.3\n- Added dark mode toggle\n- Fixed crash on startup\n",
	}

	parsed, err := NewRuleParser().ParseRelease(context.Background(), rec)
	if err != nil {
		t.Fatalf("ParseRelease() error = %v", err)
	}

	if parsed.Summary != "Claude Code version v1.2.3 • 2 changes" {
		t.Errorf("Summary = %q", parsed.Summary)
	}
	if len(parsed.Sections[models.CategoryNewFeatures]) != 1 {
		t.Errorf("New Features = %q", parsed.Sections[models.CategoryNewFeatures])
	}
	if len(parsed.Sections[models.CategoryBugFixes]) != 1 {
		t.Errorf("Bug Fixes = %q", parsed.Sections[models.CategoryBugFixes])
	}
}

func TestRuleParserVersionRange(t *testing.T) {
	rec := &models.ReleaseRecord{
		SourceName: "Pydantic AI",
		Versions:   []string{"v0.5.0", "v0.4.9"},
		Content:    "## v0.5.0\n- Added streaming output mode\n\n## v0.4.9\n- Fixed retry backoff timing\n",
	}

	parsed, err := NewRuleParser().ParseRelease(context.Background(), rec)
	if err != nil {
		t.Fatalf("ParseRelease() error = %v", err)
	}

	// Versions arrive newest-first; the summary range reads oldest to newest.
	if !strings.Contains(parsed.Summary, "v0.4.9 → v0.5.0") {
		t.Errorf("Summary = %q, want oldest to newest range", parsed.Summary)
	}
}

func TestRuleParserChangelogPage(t *testing.T) {
	rec := &models.ReleaseRecord{
		SourceName:  "Linear",
		Fingerprint: "abc123",
		Content:     "Changelog\n- Added project milestones view\n- Improved issue search",
	}

	parsed, err := NewRuleParser().ParseRelease(context.Background(), rec)
	if err != nil {
		t.Fatalf("ParseRelease() error = %v", err)
	}

	if parsed.Summary != "Linear changelog updated • 2 changes" {
		t.Errorf("Summary = %q", parsed.Summary)
	}
}

func TestRuleParserTryThisPopulated(t *testing.T) {
	rec := &models.ReleaseRecord{
		SourceName: "Cursor",
		Versions:   []string{"v0.9"},
		Content:    "- Added cmd+e inline edit shortcut\n- Fixed hover flicker\n",
	}

	parsed, err := NewRuleParser().ParseRelease(context.Background(), rec)
	if err != nil {
		t.Fatalf("ParseRelease() error = %v", err)
	}

	if len(parsed.TryThis) != 1 || !strings.Contains(parsed.TryThis[0], "cmd+e") {
		t.Errorf("TryThis = %q, want the shortcut item only", parsed.TryThis)
	}
}

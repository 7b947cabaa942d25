package digest

import (
	"fmt"
	"strings"

	"github.com/ObiAU/techdigest/internal/models"
)

const (
	// Header opens every digest, including the empty one.
	Header = "☀️ *Tech Digest*"

	// Sentinel is the body of a digest with no new content. Callers treat
	// it as a valid, successful no-op.
	Sentinel = "No new updates today. You're all caught up!"

	// SectionSeparator joins source sections and marks the boundaries the
	// chunker is allowed to split on.
	SectionSeparator = "\n\n---\n\n"
)

type Options struct {
	MaxPerCategory int
	ItemMaxLen     int
}

func DefaultOptions() Options {
	return Options{
		MaxPerCategory: 4,
		ItemMaxLen:     100,
	}
}

// SourceDigest pairs one source's fetched record with its classified view.
type SourceDigest struct {
	Record *models.ReleaseRecord
	Parsed *models.ParsedRelease
}

type Composer struct {
	opts Options
}

func NewComposer(opts Options) *Composer {
	return &Composer{opts: opts}
}

// Compose assembles the full digest document. Sources render in the order
// given; sources with nothing new must already be filtered out. An empty
// section list yields the sentinel digest.
func (c *Composer) Compose(sections []SourceDigest, enrichment string) string {
	if len(sections) == 0 {
		return Header + "\n\n" + Sentinel
	}

	blocks := make([]string, 0, len(sections)+2)
	blocks = append(blocks, Header)
	for _, sec := range sections {
		blocks = append(blocks, c.renderSource(sec))
	}
	if enrichment != "" {
		blocks = append(blocks, strings.TrimSpace(enrichment))
	}

	return strings.Join(blocks, SectionSeparator)
}

func (c *Composer) renderSource(sec SourceDigest) string {
	var sb strings.Builder

	sb.WriteString("📌 ")
	sb.WriteString(sec.Parsed.Summary)
	sb.WriteString("\n")

	if len(sec.Parsed.TryThis) > 0 {
		sb.WriteString("\n🎯 *Try This*\n")
		for _, item := range sec.Parsed.TryThis {
			sb.WriteString("  → ")
			sb.WriteString(escapeMarkdown(item))
			sb.WriteString("\n")
		}
	}

	for _, cat := range models.CategoryOrder {
		items := sec.Parsed.Sections[cat]
		if len(items) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n%s *%s*\n", categoryEmoji(cat), cat))

		shown := items
		if len(shown) > c.opts.MaxPerCategory {
			shown = shown[:c.opts.MaxPerCategory]
		}
		for _, item := range shown {
			sb.WriteString("  • ")
			sb.WriteString(escapeMarkdown(truncate(item, c.opts.ItemMaxLen)))
			sb.WriteString("\n")
		}
		if hidden := len(items) - len(shown); hidden > 0 {
			sb.WriteString(fmt.Sprintf("  _...and %d more_\n", hidden))
		}
	}

	sb.WriteString(fmt.Sprintf("\n[View changelog](%s)", sec.Record.URL))
	return sb.String()
}

func categoryEmoji(cat models.Category) string {
	switch cat {
	case models.CategoryNewFeatures:
		return "✨"
	case models.CategoryImprovements:
		return "📈"
	case models.CategoryIDE:
		return "🖥"
	case models.CategoryPerformance:
		return "⚡"
	case models.CategoryBugFixes:
		return "🐛"
	case models.CategoryDocumentation:
		return "📚"
	case models.CategoryChanges:
		return "🔄"
	default:
		return "📝"
	}
}

// escapeMarkdown neutralizes Telegram Markdown control characters in
// extracted text.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

var markdownEscaper = strings.NewReplacer(
	"_", `\_`,
	"*", `\*`,
	"[", `\[`,
	"]", `\]`,
	"`", "\\`",
)

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

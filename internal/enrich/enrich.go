package enrich

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ObiAU/techdigest/internal/models"
)

const (
	maxBullets   = 4
	bulletMaxLen = 120

	// noDiscussion is the reply the prompt demands when the search comes
	// up empty, so formatting noise never masquerades as buzz.
	noDiscussion = "NO_DISCUSSION"
)

// Enricher adds an optional community-reaction section to the digest by
// asking a local claude session to search the web. Every failure path
// degrades to an empty section; enrichment never blocks a digest.
type Enricher struct {
	runner models.CommandRunner
}

func New(runner models.CommandRunner) *Enricher {
	return &Enricher{runner: runner}
}

// CommunityContext returns a formatted buzz section for the given release,
// or "" when there is nothing to add.
func (e *Enricher) CommunityContext(ctx context.Context, sourceName string, versions []string) string {
	if len(versions) > 3 {
		versions = versions[:3]
	}

	prompt := buildSearchPrompt(sourceName, versions)
	response, err := e.runner.Run(ctx, prompt)
	if err != nil {
		log.Printf("enrichment skipped: %v", err)
		return ""
	}

	if response == "" || strings.Contains(strings.ToUpper(response), noDiscussion) {
		return ""
	}

	return formatBuzzSection(response)
}

func buildSearchPrompt(sourceName string, versions []string) string {
	subject := sourceName
	if len(versions) > 0 {
		subject = fmt.Sprintf("%s %s", sourceName, strings.Join(versions, ", "))
	}

	var sb strings.Builder
	sb.WriteString("Search the web for recent community discussion about ")
	sb.WriteString(subject)
	sb.WriteString(" (Reddit, Hacker News, X).\n")
	sb.WriteString("Reply with 2-4 short bullet points starting with \"-\", ")
	sb.WriteString("each a concrete reaction, tip, or gotcha from users.\n")
	sb.WriteString("If you find nothing substantial, reply with exactly ")
	sb.WriteString(noDiscussion)
	sb.WriteString(".")
	return sb.String()
}

// formatBuzzSection keeps only bullet lines from the reply, so preamble the
// model adds despite instructions is dropped.
func formatBuzzSection(response string) string {
	var bullets []string
	for _, raw := range strings.Split(response, "\n") {
		line := strings.TrimSpace(raw)
		if !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "•") && !strings.HasPrefix(line, "*") {
			continue
		}
		line = strings.TrimSpace(strings.TrimLeft(line, "-•* "))
		if line == "" {
			continue
		}
		bullets = append(bullets, truncate(line, bulletMaxLen))
		if len(bullets) >= maxBullets {
			break
		}
	}

	if len(bullets) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("💬 *Community Buzz*\n")
	for _, bullet := range bullets {
		sb.WriteString("  • ")
		sb.WriteString(bullet)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

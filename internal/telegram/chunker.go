package telegram

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkLimit stays under Telegram's 4096-character message cap with
// margin for entity expansion.
const DefaultChunkLimit = 4000

// Chunker splits a composed digest into deliverable chunks at section
// boundaries. Every returned chunk is at most limit bytes.
type Chunker struct {
	limit     int
	separator string
}

func NewChunker(limit int, separator string) *Chunker {
	return &Chunker{limit: limit, separator: separator}
}

// Split packs consecutive sections greedily into chunks. Section order is
// preserved and the separator is kept between sections that share a chunk.
// A lone section over the limit is hard-truncated rather than split
// mid-section.
func (c *Chunker) Split(doc string) []string {
	if len(doc) <= c.limit {
		return []string{doc}
	}

	parts := strings.Split(doc, c.separator)
	if len(parts) == 1 {
		return []string{hardTruncate(doc, c.limit)}
	}

	var chunks []string
	var cur strings.Builder
	for _, part := range parts {
		if cur.Len() > 0 && cur.Len()+len(c.separator)+len(part) > c.limit {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteString(c.separator)
		}
		cur.WriteString(part)
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}

	for i, chunk := range chunks {
		if len(chunk) > c.limit {
			chunks[i] = hardTruncate(chunk, c.limit)
		}
	}
	return chunks
}

// SplitLines breaks free-form reply text at newline boundaries, falling
// back to a hard cut for a single overlong line.
func SplitLines(text string, limit int) []string {
	var chunks []string
	for text != "" {
		if len(text) <= limit {
			chunks = append(chunks, text)
			break
		}
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = runeBoundary(text, limit)
		}
		chunks = append(chunks, text[:cut])
		text = strings.TrimLeft(text[cut:], "\n")
	}
	return chunks
}

func hardTruncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := runeBoundary(s, limit-3)
	return s[:cut] + "..."
}

// runeBoundary walks back from a byte offset to the nearest rune start so
// cuts never split a multi-byte character.
func runeBoundary(s string, offset int) int {
	for offset > 0 && !utf8.RuneStart(s[offset]) {
		offset--
	}
	return offset
}

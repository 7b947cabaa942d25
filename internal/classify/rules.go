package classify

import (
	"regexp"
	"strings"

	"github.com/ObiAU/techdigest/internal/models"
)

// Rule maps a set of patterns to one category. Patterns are matched against
// the lowercased change line.
type Rule struct {
	Category models.Category
	Patterns []*regexp.Regexp
}

// DefaultRules returns the rule table in evaluation order. Order matters:
// the first matching rule wins, so specific categories sit above the broad
// prefix-driven ones. CategoryOther has no rule; it is the fallback.
func DefaultRules() []Rule {
	return []Rule{
		{models.CategoryBugFixes, compileAll(
			`^fix`, `\bfixed\b`, `\bfix\b`, `\bresolve`, `\bpatch\b`,
		)},
		{models.CategoryIDE, compileAll(
			`\[vscode\]`, `\[ide\]`, `\bvscode\b`, `\bvim\b`, `\bneovim\b`, `\bjetbrains\b`,
		)},
		{models.CategoryPerformance, compileAll(
			`\bperformance\b`, `\bfaster\b`, `\bspeed\b`, `\bmemory\b`, `\boptimiz`,
		)},
		{models.CategoryNewFeatures, compileAll(
			`^added?\b`, `^new\b`, `\bintroduce`, `^enabled?\b`, `^implement`,
		)},
		{models.CategoryImprovements, compileAll(
			`^improved?\b`, `^enhanced?\b`, `^updated?\b`, `^better\b`, `^refactor`,
		)},
		{models.CategoryDocumentation, compileAll(
			`\bdoc\b`, `\breadme\b`, `\bguide\b`, `\btutorial\b`,
		)},
		{models.CategoryChanges, compileAll(
			`^changed?\b`,
		)},
	}
}

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}

type Classifier struct {
	rules []Rule
}

func NewClassifier(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify assigns a change line to exactly one category. Matching is
// case-insensitive and deterministic; lines no rule claims land in
// CategoryOther.
func (c *Classifier) Classify(change string) models.Category {
	lower := strings.ToLower(change)
	for _, rule := range c.rules {
		for _, p := range rule.Patterns {
			if p.MatchString(lower) {
				return rule.Category
			}
		}
	}
	return models.CategoryOther
}

// ClassifyAll buckets changes by category, preserving input order within
// each bucket.
func (c *Classifier) ClassifyAll(changes []string) map[models.Category][]string {
	sections := make(map[models.Category][]string)
	for _, change := range changes {
		cat := c.Classify(change)
		sections[cat] = append(sections[cat], change)
	}
	return sections
}

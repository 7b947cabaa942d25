package classify

import (
	"context"
	"fmt"

	"github.com/ObiAU/techdigest/internal/models"
)

// RuleParser is the deterministic classification strategy. It never fails,
// which makes it the fallback when the semantic parser is unavailable.
type RuleParser struct {
	classifier *Classifier
}

func NewRuleParser() *RuleParser {
	return &RuleParser{classifier: NewClassifier(DefaultRules())}
}

func (p *RuleParser) ParseRelease(ctx context.Context, rec *models.ReleaseRecord) (*models.ParsedRelease, error) {
	changes := ExtractChanges(rec.Content)
	return &models.ParsedRelease{
		Summary:  summarize(rec, len(changes)),
		TryThis:  WorthTrying(changes),
		Sections: p.classifier.ClassifyAll(changes),
	}, nil
}

// summarize renders the one-line section header. Versions arrive
// newest-first, so the printed range starts from the oldest.
func summarize(rec *models.ReleaseRecord, changeCount int) string {
	switch {
	case len(rec.Versions) == 1:
		return fmt.Sprintf("%s version %s • %d changes", rec.SourceName, rec.Versions[0], changeCount)
	case len(rec.Versions) > 1:
		return fmt.Sprintf("%s versions %s → %s • %d changes",
			rec.SourceName, rec.Versions[len(rec.Versions)-1], rec.Versions[0], changeCount)
	default:
		return fmt.Sprintf("%s changelog updated • %d changes", rec.SourceName, changeCount)
	}
}

package aggregator

import (
	"context"
	"fmt"
	"log"

	"github.com/ObiAU/techdigest/internal/ai"
	"github.com/ObiAU/techdigest/internal/classify"
	"github.com/ObiAU/techdigest/internal/config"
	"github.com/ObiAU/techdigest/internal/digest"
	"github.com/ObiAU/techdigest/internal/enrich"
	"github.com/ObiAU/techdigest/internal/models"
	"github.com/ObiAU/techdigest/internal/state"
	"github.com/ObiAU/techdigest/internal/telegram"
)

// Aggregator runs one digest cycle: fetch each source in order, classify
// what is new, compose, deliver, then commit state. Everything is
// sequential; a run either delivers completely and commits, or leaves the
// persisted state untouched.
type Aggregator struct {
	config   *config.Config
	sources  []models.ReleaseSource
	store    *state.Store
	composer *digest.Composer
	chunker  *telegram.Chunker
	rules    models.ReleaseParser
	semantic models.ReleaseParser
	enricher *enrich.Enricher
}

func New(cfg *config.Config, srcs []models.ReleaseSource, store *state.Store) *Aggregator {
	a := &Aggregator{
		config:   cfg,
		sources:  srcs,
		store:    store,
		composer: digest.NewComposer(digest.DefaultOptions()),
		chunker:  telegram.NewChunker(telegram.DefaultChunkLimit, digest.SectionSeparator),
		rules:    classify.NewRuleParser(),
	}
	if cfg.OpenAIAPIKey != "" {
		a.semantic = ai.NewParser(cfg.OpenAIAPIKey)
	}
	return a
}

// EnableEnrichment turns on the optional community-buzz section.
func (a *Aggregator) EnableEnrichment(runner models.CommandRunner) {
	a.enricher = enrich.New(runner)
}

type cycle struct {
	doc     string
	scratch state.DigestState
	fresh   int
}

// Preview composes the digest without delivering or committing anything.
func (a *Aggregator) Preview(ctx context.Context) (string, error) {
	res, err := a.generate(ctx)
	if err != nil {
		return "", err
	}
	return res.doc, nil
}

// Send runs the full cycle. State is persisted only after every chunk has
// been delivered, so a failed run repeats its content next time instead of
// losing it.
func (a *Aggregator) Send(ctx context.Context, transport models.Transport) error {
	res, err := a.generate(ctx)
	if err != nil {
		return err
	}

	chunks := a.chunker.Split(res.doc)
	log.Printf("delivering %d chunk(s)", len(chunks))
	for i, chunk := range chunks {
		sendCtx, cancel := context.WithTimeout(ctx, a.config.SendTimeout)
		err := transport.Send(sendCtx, chunk)
		cancel()
		if err != nil {
			return fmt.Errorf("delivery aborted at chunk %d of %d: %w", i+1, len(chunks), err)
		}
	}

	if res.fresh == 0 {
		return nil
	}
	if err := a.store.Save(res.scratch); err != nil {
		return fmt.Errorf("digest delivered but state commit failed: %w", err)
	}
	log.Printf("digest sent, state committed for %d source(s)", res.fresh)
	return nil
}

func (a *Aggregator) generate(ctx context.Context) (*cycle, error) {
	stored, err := a.store.Load()
	if err != nil {
		return nil, err
	}
	scratch := stored.Clone()

	var sections []digest.SourceDigest
	var enrichName string
	var enrichVersions []string
	for _, src := range a.sources {
		rec := a.fetch(ctx, src, stored)
		if rec == nil {
			continue
		}

		sections = append(sections, digest.SourceDigest{
			Record: rec,
			Parsed: a.parse(ctx, rec),
		})
		scratch.Apply(rec)

		if enrichName == "" && len(rec.Versions) > 0 {
			enrichName = rec.SourceName
			enrichVersions = rec.Versions
		}
	}

	enrichment := ""
	if a.enricher != nil && enrichName != "" {
		enrichCtx, cancel := context.WithTimeout(ctx, a.config.EnrichTimeout)
		enrichment = a.enricher.CommunityContext(enrichCtx, enrichName, enrichVersions)
		cancel()
	}

	return &cycle{
		doc:     a.composer.Compose(sections, enrichment),
		scratch: scratch,
		fresh:   len(sections),
	}, nil
}

// fetch wraps one source call. Any failure is soft: it logs, skips the
// source, and the run carries on so one broken feed cannot block the rest.
func (a *Aggregator) fetch(ctx context.Context, src models.ReleaseSource, stored state.DigestState) *models.ReleaseRecord {
	fetchCtx, cancel := context.WithTimeout(ctx, a.config.FetchTimeout)
	defer cancel()

	rec, err := src.Fetch(fetchCtx, stored.Seen(src.Key()))
	if err != nil {
		log.Printf("fetch from %s failed, skipping: %v", src.Key(), err)
		return nil
	}
	if rec == nil {
		return nil
	}
	if !stored.IsNew(rec) {
		return nil
	}
	return rec
}

// parse classifies one record, preferring the semantic parser and falling
// back to rules on any failure so classification itself never fails a run.
func (a *Aggregator) parse(ctx context.Context, rec *models.ReleaseRecord) *models.ParsedRelease {
	if a.semantic != nil {
		parseCtx, cancel := context.WithTimeout(ctx, a.config.ParseTimeout)
		parsed, err := a.semantic.ParseRelease(parseCtx, rec)
		cancel()
		if err == nil {
			return parsed
		}
		log.Printf("semantic parse for %s failed, using rules: %v", rec.SourceKey, err)
	}

	parsed, _ := a.rules.ParseRelease(ctx, rec)
	return parsed
}

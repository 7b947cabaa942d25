package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/ObiAU/techdigest/internal/models"
)

// Parser is the semantic classification strategy. Any error here is
// recoverable: callers fall back to the rule-based parser.
type Parser struct {
	client openai.Client
}

type releaseAnalysis struct {
	Summary    string              `json:"summary"`
	TryThis    []string            `json:"try_this"`
	Categories map[string][]string `json:"categories"`
}

func NewParser(apiKey string) *Parser {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Parser{client: client}
}

func (p *Parser) ParseRelease(ctx context.Context, rec *models.ReleaseRecord) (*models.ParsedRelease, error) {
	prompt := buildReleasePrompt(rec)

	response, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: "gpt-4o-mini",
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String("You are a release notes analyst. Extract structured change data and respond with JSON only."),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature: openai.Float(0.1),
		MaxTokens:   openai.Int(4000),
	})

	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	return decodeRelease(response.Choices[0].Message.Content)
}

// decodeRelease validates the model payload and folds it into the fixed
// category set. Suggestion count and length are clamped here; the prompt
// asks for both but the model is not trusted to comply.
func decodeRelease(content string) (*models.ParsedRelease, error) {
	var analysis releaseAnalysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse openai response: %w", err)
	}
	if analysis.Summary == "" {
		return nil, fmt.Errorf("openai response missing summary")
	}

	sections := make(map[models.Category][]string)
	for name, items := range analysis.Categories {
		if len(items) == 0 {
			continue
		}
		cat := normalizeCategory(name)
		sections[cat] = append(sections[cat], items...)
	}

	tryThis := analysis.TryThis
	if len(tryThis) > 3 {
		tryThis = tryThis[:3]
	}
	for i, item := range tryThis {
		tryThis[i] = truncate(item, 80)
	}

	return &models.ParsedRelease{
		Summary:  analysis.Summary,
		TryThis:  tryThis,
		Sections: sections,
	}, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// normalizeCategory folds model-invented category names into the fixed set.
func normalizeCategory(name string) models.Category {
	for _, cat := range models.CategoryOrder {
		if strings.EqualFold(strings.TrimSpace(name), string(cat)) {
			return cat
		}
	}
	return models.CategoryOther
}

func buildReleasePrompt(rec *models.ReleaseRecord) string {
	var sb strings.Builder
	sb.WriteString("Analyze these release notes. Provide:\n")
	sb.WriteString("- summary: one line naming the product and the scale of the release\n")
	sb.WriteString("- try_this: up to 3 changes a reader could act on today, each under 80 characters\n")
	sb.WriteString("- categories: change lines grouped under exactly these names: ")
	for i, cat := range models.CategoryOrder {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(string(cat))
	}
	sb.WriteString("\n\nRespond with JSON format:\n")
	sb.WriteString(`{"summary": "...", "try_this": ["..."], "categories": {"New Features": ["..."]}}`)
	sb.WriteString("\n\nRelease notes for ")
	sb.WriteString(rec.SourceName)
	sb.WriteString(":\n\n")
	sb.WriteString(rec.Content)
	return sb.String()
}

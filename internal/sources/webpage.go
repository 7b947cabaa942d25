package sources

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/ObiAU/techdigest/internal/models"
)

// maxPageLines bounds how much scraped text a changelog page contributes.
// Pages are fingerprinted after the cap so trailing churn is ignored.
const maxPageLines = 200

type WebSource struct {
	key    string
	name   string
	url    string
	client *http.Client
}

func NewWebSource(key, name, url string, timeout time.Duration) *WebSource {
	return &WebSource{
		key:  key,
		name: name,
		url:  url,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *WebSource) Key() string  { return s.key }
func (s *WebSource) Name() string { return s.name }

// Fetch scrapes the changelog page and returns its visible text with a
// content fingerprint. Novelty against the stored fingerprint is decided by
// the caller; (nil, nil) is returned only when the page yields no text.
func (s *WebSource) Fetch(ctx context.Context, _ []string) (*models.ReleaseRecord, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; TechDigest/1.0)")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", s.key, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	content := extractPageText(doc)
	if content == "" {
		return nil, nil
	}

	return &models.ReleaseRecord{
		SourceKey:   s.key,
		SourceName:  s.name,
		Content:     content,
		URL:         s.url,
		Fingerprint: Fingerprint(content),
	}, nil
}

// extractPageText pulls readable text from the page, preferring the main
// content container over the full body and dropping chrome elements.
func extractPageText(doc *goquery.Document) string {
	doc.Find("script, style, nav, header, footer").Remove()

	sel := doc.Find("main").First()
	if sel.Length() == 0 {
		sel = doc.Find("article").First()
	}
	if sel.Length() == 0 {
		sel = doc.Find(".content, .changelog").First()
	}
	if sel.Length() == 0 {
		sel = doc.Find("body")
	}

	var lines []string
	for _, node := range sel.Nodes {
		lines = visibleLines(node, lines)
	}
	if len(lines) > maxPageLines {
		lines = lines[:maxPageLines]
	}

	return strings.Join(lines, "\n")
}

// visibleLines appends one trimmed line per text node, splitting embedded
// newlines. Element boundaries delimit lines even when the markup carries
// no source whitespace.
func visibleLines(n *html.Node, lines []string) []string {
	if n.Type == html.TextNode {
		for _, part := range strings.Split(n.Data, "\n") {
			if line := strings.TrimSpace(part); line != "" {
				lines = append(lines, line)
			}
		}
		return lines
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		lines = visibleLines(c, lines)
	}
	return lines
}

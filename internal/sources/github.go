package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ObiAU/techdigest/internal/models"
)

// githubAPIBase is a package variable so tests can point the client at a
// local server.
var githubAPIBase = "https://api.github.com"

type GitHubSource struct {
	key    string
	name   string
	repo   string
	url    string
	token  string
	limit  int
	client *http.Client
}

type githubRelease struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
}

func NewGitHubSource(key, name, repo, token string, limit int, timeout time.Duration) *GitHubSource {
	return &GitHubSource{
		key:   key,
		name:  name,
		repo:  repo,
		url:   fmt.Sprintf("https://github.com/%s/releases", repo),
		token: token,
		limit: limit,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *GitHubSource) Key() string  { return s.key }
func (s *GitHubSource) Name() string { return s.name }

// Fetch returns a record covering every release whose tag is not already in
// seenVersions, or (nil, nil) when there is nothing new. Releases arrive
// newest-first from the API and keep that order in the record.
func (s *GitHubSource) Fetch(ctx context.Context, seenVersions []string) (*models.ReleaseRecord, error) {
	url := fmt.Sprintf("%s/repos/%s/releases?per_page=%d", githubAPIBase, s.repo, s.limit)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "techdigest/1.0")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github returned status %d for %s", resp.StatusCode, s.repo)
	}

	var releases []githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(seenVersions))
	for _, v := range seenVersions {
		seen[v] = true
	}

	var content strings.Builder
	var versions []string
	for _, rel := range releases {
		if rel.TagName == "" || seen[rel.TagName] {
			continue
		}
		versions = append(versions, rel.TagName)
		content.WriteString(fmt.Sprintf("## %s\n%s\n\n", rel.TagName, rel.Body))
	}

	if len(versions) == 0 {
		return nil, nil
	}

	return &models.ReleaseRecord{
		SourceKey:  s.key,
		SourceName: s.name,
		Content:    content.String(),
		URL:        s.url,
		Versions:   versions,
	}, nil
}

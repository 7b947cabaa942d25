package sources

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ObiAU/techdigest/internal/config"
	"github.com/ObiAU/techdigest/internal/models"
)

type githubSpec struct {
	key  string
	name string
	repo string
}

type webSpec struct {
	key  string
	name string
	url  string
}

var githubSpecs = []githubSpec{
	{key: "claude-code", name: "Claude Code", repo: "anthropics/claude-code"},
	{key: "pydantic-ai", name: "Pydantic AI", repo: "pydantic/pydantic-ai"},
	{key: "agent-deck", name: "Agent Deck", repo: "asheshgoplani/agent-deck"},
}

var webSpecs = []webSpec{
	{key: "linear", name: "Linear", url: "https://linear.app/changelog"},
	{key: "cursor", name: "Cursor", url: "https://cursor.com/changelog"},
	{key: "granola", name: "Granola", url: "https://www.granola.ai/docs/changelog"},
	{key: "claude-app", name: "Claude App", url: "https://support.claude.com/en/articles/12138966-release-notes"},
}

// Info describes one registry entry for listings.
type Info struct {
	Key      string
	Name     string
	Kind     string
	Location string
}

// List reports the registry contents without constructing clients.
func List() []Info {
	infos := make([]Info, 0, len(githubSpecs)+len(webSpecs))
	for _, spec := range githubSpecs {
		infos = append(infos, Info{Key: spec.key, Name: spec.name, Kind: "github", Location: spec.repo})
	}
	for _, spec := range webSpecs {
		infos = append(infos, Info{Key: spec.key, Name: spec.name, Kind: "web", Location: spec.url})
	}
	return infos
}

// All builds every configured source in registry order: version-identified
// GitHub feeds first, then scraped changelog pages.
func All(cfg *config.Config) []models.ReleaseSource {
	srcs := make([]models.ReleaseSource, 0, len(githubSpecs)+len(webSpecs))
	for _, spec := range githubSpecs {
		srcs = append(srcs, NewGitHubSource(spec.key, spec.name, spec.repo, cfg.GitHubToken, cfg.ReleaseLimit, cfg.FetchTimeout))
	}
	for _, spec := range webSpecs {
		srcs = append(srcs, NewWebSource(spec.key, spec.name, spec.url, cfg.FetchTimeout))
	}
	return srcs
}

// Select returns the sources named by keys, preserving registry order. An
// empty key list selects everything; an unknown key is an error.
func Select(cfg *config.Config, keys []string) ([]models.ReleaseSource, error) {
	all := All(cfg)
	if len(keys) == 0 {
		return all, nil
	}

	wanted := make(map[string]bool, len(keys))
	for _, key := range keys {
		wanted[key] = true
	}

	var selected []models.ReleaseSource
	for _, src := range all {
		if wanted[src.Key()] {
			selected = append(selected, src)
			delete(wanted, src.Key())
		}
	}

	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for key := range wanted {
			unknown = append(unknown, key)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown source(s): %s", strings.Join(unknown, ", "))
	}

	return selected, nil
}

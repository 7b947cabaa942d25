package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"
)

func newGitHubTestSource(t *testing.T, handler http.HandlerFunc) *GitHubSource {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	old := githubAPIBase
	githubAPIBase = server.URL
	t.Cleanup(func() { githubAPIBase = old })

	return NewGitHubSource("claude-code", "Claude Code", "anthropics/claude-code", "", 10, 5*time.Second)
}

func TestGitHubFetchNewReleases(t *testing.T) {
	src := newGitHubTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/vnd.github+json" {
			t.Errorf("Accept = %q", got)
		}
		fmt.Fprint(w, `[
			{"tag_name": "v1.2.0", "body": "- Added dark mode"},
			{"tag_name": "v1.1.0", "body": "- Fixed crash"}
		]`)
	})

	rec, err := src.Fetch(context.Background(), nil)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if rec == nil {
		t.Fatal("Fetch() = nil, want a record")
	}

	if !reflect.DeepEqual(rec.Versions, []string{"v1.2.0", "v1.1.0"}) {
		t.Errorf("Versions = %v", rec.Versions)
	}
	want := "## v1.2.0\n- Added dark mode\n\n## v1.1.0\n- Fixed crash\n\n"
	if rec.Content != want {
		t.Errorf("Content = %q, want %q", rec.Content, want)
	}
	if rec.Fingerprint != "" {
		t.Errorf("Fingerprint = %q, want empty for version-identified source", rec.Fingerprint)
	}
	if rec.URL != "https://github.com/anthropics/claude-code/releases" {
		t.Errorf("URL = %q", rec.URL)
	}
}

func TestGitHubFetchFiltersSeen(t *testing.T) {
	src := newGitHubTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"tag_name": "v1.3.0", "body": "- Added split view"},
			{"tag_name": "v1.2.0", "body": "- Added dark mode"}
		]`)
	})

	rec, err := src.Fetch(context.Background(), []string{"v1.2.0"})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if rec == nil {
		t.Fatal("Fetch() = nil, want a record")
	}
	if !reflect.DeepEqual(rec.Versions, []string{"v1.3.0"}) {
		t.Errorf("Versions = %v, want only the unseen release", rec.Versions)
	}
	if strings.Contains(rec.Content, "dark mode") {
		t.Error("seen release leaked into content")
	}
}

func TestGitHubFetchAllSeen(t *testing.T) {
	src := newGitHubTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"tag_name": "v1.2.0", "body": "- Added dark mode"}]`)
	})

	rec, err := src.Fetch(context.Background(), []string{"v1.2.0"})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if rec != nil {
		t.Errorf("Fetch() = %+v, want nil when every release is seen", rec)
	}
}

func TestGitHubFetchStatusError(t *testing.T) {
	src := newGitHubTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := src.Fetch(context.Background(), nil)
	if err == nil {
		t.Fatal("Fetch() error = nil, want status error")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error %q should carry the status code", err)
	}
}

func TestGitHubFetchSendsAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	old := githubAPIBase
	githubAPIBase = server.URL
	defer func() { githubAPIBase = old }()

	src := NewGitHubSource("claude-code", "Claude Code", "anthropics/claude-code", "secret", 10, 5*time.Second)
	if _, err := src.Fetch(context.Background(), nil); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
}

func TestGitHubFetchLimitParam(t *testing.T) {
	src := newGitHubTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("per_page"); got != "10" {
			t.Errorf("per_page = %q", got)
		}
		fmt.Fprint(w, `[]`)
	})

	rec, err := src.Fetch(context.Background(), nil)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if rec != nil {
		t.Errorf("Fetch() = %+v, want nil for an empty release list", rec)
	}
}

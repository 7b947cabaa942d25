package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newWebTestSource(t *testing.T, handler http.HandlerFunc) *WebSource {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewWebSource("linear", "Linear", server.URL, 5*time.Second)
}

func TestWebFetchExtractsMainContent(t *testing.T) {
	src := newWebTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><script>tracking()</script></head><body>
			<nav>Home | Pricing</nav>
			<main>
				<h1>Changelog</h1>
				<p>Added project milestones</p>
			</main>
			<footer>Copyright</footer>
		</body></html>`)
	})

	rec, err := src.Fetch(context.Background(), nil)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if rec == nil {
		t.Fatal("Fetch() = nil, want a record")
	}

	if !strings.Contains(rec.Content, "Added project milestones") {
		t.Errorf("Content missing main text: %q", rec.Content)
	}
	for _, chrome := range []string{"tracking()", "Home | Pricing", "Copyright"} {
		if strings.Contains(rec.Content, chrome) {
			t.Errorf("Content includes chrome %q: %q", chrome, rec.Content)
		}
	}
	if rec.Fingerprint == "" {
		t.Error("Fingerprint empty for scraped source")
	}
	if len(rec.Versions) != 0 {
		t.Errorf("Versions = %v, want none", rec.Versions)
	}
}

func TestWebFetchMinifiedMarkup(t *testing.T) {
	src := newWebTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><main><h2>v1.2</h2><ul><li>Added dark mode support</li><li>Fixed crash on startup</li><li>Improved sync performance</li></ul></main></body></html>`)
	})

	rec, err := src.Fetch(context.Background(), nil)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if rec == nil {
		t.Fatal("Fetch() = nil, want a record")
	}

	want := "v1.2\nAdded dark mode support\nFixed crash on startup\nImproved sync performance"
	if rec.Content != want {
		t.Errorf("Content = %q, want one line per element:\n%q", rec.Content, want)
	}
}

func TestWebFetchFallsBackToBody(t *testing.T) {
	src := newWebTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>Released v2 with improved sync</p></body></html>`)
	})

	rec, err := src.Fetch(context.Background(), nil)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if rec == nil || !strings.Contains(rec.Content, "Released v2") {
		t.Errorf("Content = %+v", rec)
	}
}

func TestWebFetchEmptyPage(t *testing.T) {
	src := newWebTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><script>only_js()</script></body></html>`)
	})

	rec, err := src.Fetch(context.Background(), nil)
	if err != nil {
		t.Fatalf("Fetch() error = %v, want soft no-data", err)
	}
	if rec != nil {
		t.Errorf("Fetch() = %+v, want nil for an empty page", rec)
	}
}

func TestWebFetchStatusError(t *testing.T) {
	src := newWebTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	if _, err := src.Fetch(context.Background(), nil); err == nil {
		t.Fatal("Fetch() error = nil, want status error")
	}
}

func TestWebFetchCapsLines(t *testing.T) {
	src := newWebTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		var sb strings.Builder
		sb.WriteString("<html><body><main>")
		for i := 0; i < maxPageLines+50; i++ {
			fmt.Fprintf(&sb, "<p>entry line %d</p>\n", i)
		}
		sb.WriteString("</main></body></html>")
		fmt.Fprint(w, sb.String())
	})

	rec, err := src.Fetch(context.Background(), nil)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if rec == nil {
		t.Fatal("Fetch() = nil")
	}
	if got := len(strings.Split(rec.Content, "\n")); got > maxPageLines {
		t.Errorf("content has %d lines, want at most %d", got, maxPageLines)
	}
}

func TestWebFetchFingerprintStable(t *testing.T) {
	page := `<html><body><main><p>Added offline mode</p></main></body></html>`
	src := newWebTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	})

	first, err := src.Fetch(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := src.Fetch(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if first.Fingerprint != second.Fingerprint {
		t.Errorf("fingerprints differ for identical pages: %q vs %q", first.Fingerprint, second.Fingerprint)
	}
}

func TestWebFetchSetsUserAgent(t *testing.T) {
	src := newWebTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "TechDigest") {
			t.Errorf("User-Agent = %q", ua)
		}
		fmt.Fprint(w, `<html><body><main><p>Added offline mode</p></main></body></html>`)
	})

	if _, err := src.Fetch(context.Background(), nil); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
}

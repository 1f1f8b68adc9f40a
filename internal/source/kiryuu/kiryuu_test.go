package kiryuu

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ryogami/kiryuu-go/internal/source/fetch"
)

// newTestProvider points a provider at a local test server with a rate
// limit generous enough to never block a test.
func newTestProvider(server *httptest.Server) *Provider {
	return New(server.URL, fetch.NewClient(server.URL, 1000, time.Second))
}

// docFromHTML parses an HTML fragment for exercising the parsers directly.
func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("Failed to parse test HTML: %v", err)
	}
	return doc
}

func TestProviderInfo(t *testing.T) {
	p := New("", nil)
	info := p.GetInfo()
	if info.ID != "kiryuu" {
		t.Errorf("Expected provider ID 'kiryuu', got %q", info.ID)
	}
	if info.Language != "id" {
		t.Errorf("Expected language 'id', got %q", info.Language)
	}
	if info.SiteURL != "https://kiryuu03.com" {
		t.Errorf("Empty base URL should select the live site, got %q", info.SiteURL)
	}
}

func TestAbsoluteAndTrimBase(t *testing.T) {
	p := New("https://example.com", nil)

	if got := p.absolute("/manga/solo-leveling/"); got != "https://example.com/manga/solo-leveling/" {
		t.Errorf("absolute() = %q", got)
	}
	if got := p.absolute("manga/solo-leveling/"); got != "https://example.com/manga/solo-leveling/" {
		t.Errorf("absolute() without leading slash = %q", got)
	}
	if got := p.absolute("https://other.com/x"); got != "https://other.com/x" {
		t.Errorf("absolute() should pass through full URLs, got %q", got)
	}

	if got := p.trimBase("https://example.com/manga/a/"); got != "/manga/a/" {
		t.Errorf("trimBase() = %q", got)
	}
	if got := p.trimBase("https://cdn.other.com/img.jpg"); got != "https://cdn.other.com/img.jpg" {
		t.Errorf("trimBase() should keep foreign URLs, got %q", got)
	}
}

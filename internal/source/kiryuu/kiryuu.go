// Package kiryuu implements the provider for the Kiryuu manga site. The site
// is server-rendered and unversioned, and its markup differs between listing
// pages, the AJAX search fragment and old and new reader templates. Every
// extraction path is therefore an ordered chain of fallback strategies; a
// call fails only when the whole chain is exhausted.
package kiryuu

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ryogami/kiryuu-go/internal/models"
	"github.com/ryogami/kiryuu-go/internal/source/fetch"
)

const (
	defaultBaseURL = "https://kiryuu03.com"

	// The AJAX search response renders no pagination control; a full page of
	// results is taken to mean more pages probably exist.
	ajaxPageSize = 24
)

var (
	// ErrChapterListUnavailable means the details page carried no usable
	// dynamic chapter-list endpoint. No chapters are rendered anywhere else,
	// so there is no fallback source.
	ErrChapterListUnavailable = errors.New("kiryuu: no chapter list endpoint discovered")

	// ErrNoImagesFound means every page-resolution strategy came up empty.
	ErrNoImagesFound = errors.New("kiryuu: no images found for chapter")
)

// SiteRoot resolves an override base URL to the site root the fetch client
// should send as Referer. An empty override selects the live site.
func SiteRoot(baseURL string) string {
	if baseURL == "" {
		return defaultBaseURL
	}
	return strings.TrimRight(baseURL, "/")
}

type Provider struct {
	client  *fetch.Client
	baseURL string
}

// New creates a provider rooted at baseURL. An empty baseURL selects the
// live site.
func New(baseURL string, client *fetch.Client) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (p *Provider) GetInfo() models.ProviderInfo {
	return models.ProviderInfo{
		ID:       "kiryuu",
		Name:     "Kiryuu",
		SiteURL:  p.baseURL,
		Language: "id",
	}
}

func (p *Provider) Popular(page int) (*models.MangaPage, error) {
	return p.listing(fmt.Sprintf("%s/manga/?orderby=popular&page=%d", p.baseURL, page))
}

func (p *Provider) Latest(page int) (*models.MangaPage, error) {
	return p.listing(fmt.Sprintf("%s/manga/?orderby=update&page=%d", p.baseURL, page))
}

func (p *Provider) Search(page int, query string, filters models.SearchFilters) (*models.MangaPage, error) {
	req, err := p.buildSearchRequest(page, query, filtersFromState(filters), "")
	if err != nil {
		return nil, err
	}
	doc, err := p.client.Document(req)
	if err != nil {
		return nil, err
	}
	return p.parseListing(doc), nil
}

func (p *Provider) GetDetails(seriesURL string) (*models.MangaDetails, error) {
	doc, err := p.document(p.absolute(seriesURL))
	if err != nil {
		return nil, err
	}
	return p.parseDetails(doc), nil
}

func (p *Provider) listing(url string) (*models.MangaPage, error) {
	doc, err := p.document(url)
	if err != nil {
		return nil, err
	}
	return p.parseListing(doc), nil
}

func (p *Provider) document(url string) (*goquery.Document, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return p.client.Document(req)
}

// absolute resolves a site-relative URL against the base URL. URLs that are
// already absolute pass through untouched.
func (p *Provider) absolute(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return p.baseURL + u
}

// trimBase stores an href site-relative by stripping the base URL prefix.
// Foreign absolute URLs are kept as-is.
func (p *Provider) trimBase(href string) string {
	h := strings.TrimSpace(href)
	if h == "" {
		return ""
	}
	return strings.TrimPrefix(h, p.baseURL)
}

// imageSrc returns an image's absolute source URL, or "" when it has none.
func (p *Provider) imageSrc(img *goquery.Selection) string {
	src, _ := img.Attr("src")
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	return p.absolute(src)
}

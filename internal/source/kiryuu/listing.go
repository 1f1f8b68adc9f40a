package kiryuu

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ryogami/kiryuu-go/internal/models"
)

// One compound selector covers every card shape the site is known to render.
// Plain listing pages and the AJAX search fragment use different templates,
// so a single pass has to tolerate whichever shape is present.
const listingSelector = "div.flex.rounded-lg.overflow-hidden, " +
	"div.overflow-hidden.relative.flex.flex-col, " +
	"div.overflow-hidden, " +
	"article:has(a.text-base), " +
	"div:has(a.text-base), " +
	"div:has(a.font-medium), " +
	"div:has(img.wp-post-image)"

const nextPageSelector = "a.next, .pagination a.next, .wp-pagenavi a"

// parseListing extracts manga summaries from a listing document. Entries
// that are really navigation artifacts are filtered out, duplicates are
// dropped keeping first occurrence, and HasNext is inferred.
func (p *Provider) parseListing(doc *goquery.Document) *models.MangaPage {
	var extracted []models.MangaSummary
	doc.Find(listingSelector).Each(func(_ int, el *goquery.Selection) {
		extracted = append(extracted, p.summaryFromElement(el))
	})

	var items []models.MangaSummary
	seen := make(map[string]bool)
	for _, it := range extracted {
		if it.URL == "" || it.Title == "" || it.Title == "1" {
			continue
		}
		lower := strings.ToLower(it.URL)
		if strings.Contains(lower, "novel") ||
			strings.Contains(lower, "orderby=") ||
			strings.Contains(lower, "page=") {
			continue
		}
		if seen[it.URL] {
			continue
		}
		seen[it.URL] = true
		items = append(items, it)
	}

	hasNext := doc.Find(nextPageSelector).Length() > 0
	if !hasNext {
		// The AJAX fragment renders no pagination control; a full page of
		// results is taken to mean more exist. Heuristic, not exact.
		hasNext = len(items) >= ajaxPageSize
	}

	return &models.MangaPage{Items: items, HasNext: hasNext}
}

// summaryFromElement picks the first anchor into the manga namespace with
// non-blank text, falling back to the first such anchor at all.
func (p *Provider) summaryFromElement(el *goquery.Selection) models.MangaSummary {
	anchors := el.Find(`a[href*="/manga/"]`)
	link := anchors.FilterFunction(func(_ int, a *goquery.Selection) bool {
		return strings.TrimSpace(a.Text()) != ""
	}).First()
	if link.Length() == 0 {
		link = anchors.First()
	}
	href, _ := link.Attr("href")

	img := el.Find("img.wp-post-image").First()
	if img.Length() == 0 {
		img = el.Find("img").First()
	}

	return models.MangaSummary{
		Title:        strings.TrimSpace(link.Text()),
		URL:          p.trimBase(href),
		ThumbnailURL: p.imageSrc(img),
	}
}

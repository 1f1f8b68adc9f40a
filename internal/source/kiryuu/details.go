package kiryuu

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ryogami/kiryuu-go/internal/models"
)

const detailsContainerSelector = "article > section, .entry-content, .post, .manga-detail, .manga-info"

var reAuthorLabel = regexp.MustCompile(`(?i)author:\s*`)

// parseDetails maps a series details document to structured metadata. Every
// field has its own fallback chain; a field whose whole chain misses is left
// empty rather than failing the parse.
func (p *Provider) parseDetails(doc *goquery.Document) *models.MangaDetails {
	root := doc.Find(detailsContainerSelector).First()
	if root.Length() == 0 {
		root = doc.Selection
	}

	d := &models.MangaDetails{
		Title:        strings.TrimSpace(root.Find("h1[itemprop=name], h1.entry-title, h1.post-title, h1").First().Text()),
		ThumbnailURL: p.imageSrc(root.Find("img.wp-post-image, .post-thumbnail img, .cover img, .thumb img").First()),
	}

	// The synopsis lives in a tab panel that stays in the DOM whether or not
	// it is the visible tab; the data-show attribute only toggles display.
	desc := doc.Find(`#tabpanel-description div[data-show="true"]`).First()
	if desc.Length() == 0 {
		desc = doc.Find(`#tabpanel-description div[data-show="false"]`).First()
	}
	if desc.Length() == 0 {
		desc = doc.Find(".summary, .entry-summary, .manga-desc").First()
	}
	d.Description = strings.TrimSpace(desc.Text())

	root.Find("a[itemprop=genre], .genres a, .post-tags a, .tags a").Each(func(_ int, g *goquery.Selection) {
		if t := strings.TrimSpace(g.Text()); t != "" {
			d.Genres = append(d.Genres, t)
		}
	})

	author := root.Find("a[rel=author], .author").First().Text()
	d.Author = strings.TrimSpace(reAuthorLabel.ReplaceAllString(author, ""))

	d.Status = classifyStatus(root.Find("li:contains(Status), .status, .manga-status").First().Text())

	return d
}

// classifyStatus reduces a free-form status blob to the closed enum. The
// rules are order-sensitive: a text mentioning both "ongoing" and "hiatus"
// classifies as ongoing because the first rule wins.
func classifyStatus(s string) models.PublicationStatus {
	t := strings.ToLower(s)
	switch {
	case strings.Contains(t, "ongoing"), strings.Contains(t, "update"):
		return models.StatusOngoing
	case strings.Contains(t, "complete"):
		return models.StatusCompleted
	case strings.Contains(t, "hiatus"):
		return models.StatusOnHiatus
	case strings.Contains(t, "cancel"):
		return models.StatusCancelled
	default:
		return models.StatusUnknown
	}
}

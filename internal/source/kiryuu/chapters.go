package kiryuu

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ryogami/kiryuu-go/internal/models"
)

const (
	chapterLinkSelector = `a[href*="/chapter-"]`

	// Sub-elements that carry the displayed upload date inside a chapter
	// link. They get stripped before the chapter name is read so the date
	// text never leaks into the name.
	chapterDateSelector = "time, .date, .chapter-date, .chapter-time, span[class*=date]"
)

// GetChapters runs the two-phase resolution. The details page renders no
// chapters itself; it only carries a per-series HTMX endpoint that does. The
// phases are strictly sequential: phase two needs phase one's URL.
func (p *Provider) GetChapters(seriesURL string) ([]models.Chapter, error) {
	doc, err := p.document(p.absolute(seriesURL))
	if err != nil {
		return nil, err
	}

	endpoint := chapterListEndpoint(doc)
	if endpoint == "" {
		return nil, ErrChapterListUnavailable
	}

	listDoc, err := p.document(p.absolute(endpoint))
	if err != nil {
		return nil, err
	}
	return p.chaptersFromDocument(listDoc), nil
}

// chapterListEndpoint reads the dynamic-fetch attribute off the chapter
// container. An attribute that does not mention chapter_list belongs to some
// other widget and is treated as absent.
func chapterListEndpoint(doc *goquery.Document) string {
	v, _ := doc.Find("#chapter-list, #gallery-list").First().Attr("hx-get")
	v = strings.TrimSpace(v)
	if v == "" || !strings.Contains(strings.ToLower(v), "chapter_list") {
		return ""
	}
	return v
}

// chaptersFromDocument extracts chapter links in document order,
// deduplicating on the raw href before any normalization.
func (p *Provider) chaptersFromDocument(doc *goquery.Document) []models.Chapter {
	var chapters []models.Chapter
	seen := make(map[string]bool)
	doc.Find(chapterLinkSelector).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if seen[href] {
			return
		}
		seen[href] = true

		name := a.Clone()
		name.Find(chapterDateSelector).Remove()

		var raw string
		if t := a.Find("time").First(); t.Length() > 0 {
			if dt, ok := t.Attr("datetime"); ok {
				raw = dt
			} else {
				raw = t.Text()
			}
		}

		chapters = append(chapters, models.Chapter{
			Name:       strings.TrimSpace(name.Text()),
			URL:        p.trimBase(href),
			UploadedAt: parseChapterDate(raw),
		})
	})
	return chapters
}

// parseChapterDate accepts the two timestamp flavors the site emits: a
// proper RFC 3339 instant, or a bare pattern with a literal trailing Z meant
// as UTC. Zero stands in for both "absent" and "unparseable"; callers must
// treat it as unknown, not as 1970.
func parseChapterDate(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UnixMilli()
	}
	if strings.HasSuffix(s, "Z") {
		if t, err := time.ParseInLocation("2006-01-02T15:04:05", strings.TrimSuffix(s, "Z"), time.UTC); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}

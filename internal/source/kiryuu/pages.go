package kiryuu

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ryogami/kiryuu-go/internal/models"
)

// Candidate containers for reader images, newest template first. The legacy
// class names stay in the list because old chapters still render them.
var pageSelectors = []string{
	"main .relative section img",
	".reading-content img",
	".chapter-content img",
	"img.alignnone",
	".wp-manga-reader img",
	".entry-content img",
	".post-content img",
}

var reScriptImageURL = regexp.MustCompile(`(?i)"(https?://[^"]+\.(?:jpg|jpeg|png|webp))"`)

// GetPageURLs resolves the ordered page images for a chapter.
func (p *Provider) GetPageURLs(chapterURL string) ([]models.Page, error) {
	doc, err := p.document(p.absolute(chapterURL))
	if err != nil {
		return nil, err
	}
	return p.parsePages(doc)
}

// parsePages tries the resolution strategies in order and returns the first
// non-empty result: known DOM containers, then image URLs embedded in inline
// scripts, then the noscript fallback images.
func (p *Provider) parsePages(doc *goquery.Document) ([]models.Page, error) {
	for _, sel := range pageSelectors {
		if pages := p.pagesFromImages(doc.Find(sel)); len(pages) > 0 {
			return pages, nil
		}
	}

	var scripts strings.Builder
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		scripts.WriteString(s.Text())
		scripts.WriteString("\n")
	})
	var pages []models.Page
	for _, m := range reScriptImageURL.FindAllStringSubmatch(scripts.String(), -1) {
		pages = append(pages, models.Page{Index: len(pages), ImageURL: m[1]})
	}
	if len(pages) > 0 {
		return pages, nil
	}

	// The HTML parser treats noscript payloads as text, so they need a
	// second parse before the images inside are reachable.
	var noscript []models.Page
	doc.Find("noscript").Each(func(_ int, n *goquery.Selection) {
		inner, err := goquery.NewDocumentFromReader(strings.NewReader(n.Text()))
		if err != nil {
			return
		}
		for _, pg := range p.pagesFromImages(inner.Find("img")) {
			pg.Index = len(noscript)
			noscript = append(noscript, pg)
		}
	})
	if len(noscript) > 0 {
		return noscript, nil
	}

	return nil, ErrNoImagesFound
}

// pagesFromImages builds a page list in document order, skipping images with
// a blank source and keeping indices contiguous from zero.
func (p *Provider) pagesFromImages(imgs *goquery.Selection) []models.Page {
	var pages []models.Page
	imgs.Each(func(_ int, img *goquery.Selection) {
		if src := p.imageSrc(img); src != "" {
			pages = append(pages, models.Page{Index: len(pages), ImageURL: src})
		}
	})
	return pages
}

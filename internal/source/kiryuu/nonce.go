package kiryuu

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// The search endpoint wants a short-lived token that the site surfaces in a
// different place depending on which template variant is live. Absence is an
// expected, handled outcome: the endpoint tolerates an empty nonce field.
var noncePatterns = []*regexp.Regexp{
	regexp.MustCompile(`search_nonce['"]?\s*[:=]\s*['"]?([a-zA-Z0-9-_]+)['"]?`),
	regexp.MustCompile(`nonce['"]?\s*[:=]\s*['"]?([a-zA-Z0-9-_]+)['"]?`),
	regexp.MustCompile(`_wpnonce['"]?\s*[:=]\s*['"]?([a-zA-Z0-9-_]+)['"]?`),
}

// resolveNonce fetches the site root and tries each known token location in
// order: named input fields, a meta tag, then a regex scan over the inline
// scripts. It returns "" when the fetch fails or nothing matches.
func (p *Provider) resolveNonce() string {
	req, err := http.NewRequest(http.MethodGet, p.baseURL, nil)
	if err != nil {
		return ""
	}
	doc, err := p.client.Document(req)
	if err != nil {
		return ""
	}

	if v, ok := doc.Find("input[name=nonce]").First().Attr("value"); ok && v != "" {
		return v
	}
	if v, ok := doc.Find("input[name=_wpnonce]").First().Attr("value"); ok && v != "" {
		return v
	}
	if v, ok := doc.Find("meta[name=search_nonce]").First().Attr("content"); ok && v != "" {
		return v
	}

	var scripts strings.Builder
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		scripts.WriteString(s.Text())
		scripts.WriteString("\n")
	})
	for _, re := range noncePatterns {
		if m := re.FindStringSubmatch(scripts.String()); m != nil {
			return m[1]
		}
	}
	return ""
}

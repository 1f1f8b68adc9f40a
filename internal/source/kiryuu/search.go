package kiryuu

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
)

const searchPath = "/wp-admin/admin-ajax.php?type=search_form&action=advanced_search"

// jsonStringArray renders the fixed textual array form the endpoint expects.
// This is deliberately not a JSON encoder: the upstream handler matches the
// exact bracket-and-quote shape.
func jsonStringArray(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	return `["` + strings.Join(values, `","`) + `"]`
}

// buildSearchRequest assembles the multipart advanced-search call. A fresh
// nonce is resolved on every call; the token is too short-lived to cache.
// explicitSort, when non-empty, overrides any SortFilter in filters.
func (p *Provider) buildSearchRequest(page int, query string, filters []Filter, explicitSort string) (*http.Request, error) {
	nonce := p.resolveNonce()

	var genres, types, statuses []string
	sortKey := "default"
	for _, f := range filters {
		switch f := f.(type) {
		case GenreFilter:
			genres = append(genres, f.Checked...)
		case StatusFilter:
			if f.Index != 0 {
				statuses = append(statuses, strings.ToLower(statusOptions[f.Index]))
			}
		case TypeFilter:
			if v := strings.ToLower(typeOptions[f.Index]); v != "all" {
				types = append(types, v)
			}
		case SortFilter:
			sortKey = f.Key
		}
	}
	if explicitSort != "" {
		sortKey = explicitSort
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := [][2]string{
		{"nonce", nonce},
		// The form has no controls for the logical operators or the order
		// direction; these stay fixed.
		{"inclusion", "OR"},
		{"exclusion", "OR"},
		{"page", strconv.Itoa(page)},
		{"genre", jsonStringArray(genres)},
		{"genre_exclude", "[]"},
		{"author", "[]"},
		{"artist", "[]"},
		{"project", "0"},
		{"type", jsonStringArray(types)},
		{"status", jsonStringArray(statuses)},
		{"order", "desc"},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, err
		}
	}
	// "default" means let the server decide: the field is omitted entirely,
	// not sent empty.
	if sortKey != "default" {
		if err := w.WriteField("orderby", sortKey); err != nil {
			return nil, err
		}
	}
	if err := w.WriteField("query", query); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, p.baseURL+searchPath, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req, nil
}

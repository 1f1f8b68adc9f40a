package models

import "encoding/json"

// ProviderInfo contains static information about a provider.
type ProviderInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	SiteURL  string `json:"site_url"`
	Language string `json:"language"`
}

// MangaSummary is a single entry extracted from a listing page or a search
// result fragment. URL is stored site-relative so it can be re-resolved
// against the provider's base URL later.
type MangaSummary struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// MangaPage is one page of listing results plus a signal for whether another
// page is worth requesting. On sources that render no pagination control,
// HasNext is a heuristic, not a guarantee.
type MangaPage struct {
	Items   []MangaSummary `json:"items"`
	HasNext bool           `json:"has_next"`
}

// PublicationStatus is the closed set of publication states a source can
// report for a series.
type PublicationStatus int

const (
	StatusUnknown PublicationStatus = iota
	StatusOngoing
	StatusCompleted
	StatusOnHiatus
	StatusCancelled
)

func (s PublicationStatus) String() string {
	switch s {
	case StatusOngoing:
		return "ONGOING"
	case StatusCompleted:
		return "COMPLETED"
	case StatusOnHiatus:
		return "ON_HIATUS"
	case StatusCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON renders the status as its symbolic name rather than a number.
func (s PublicationStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// MangaDetails is the structured metadata extracted from a series details
// page.
type MangaDetails struct {
	Title        string            `json:"title"`
	ThumbnailURL string            `json:"thumbnail_url"`
	Description  string            `json:"description"`
	Genres       []string          `json:"genres"`
	Author       string            `json:"author"`
	Status       PublicationStatus `json:"status"`
}

// Chapter is a single chapter link extracted from a chapter list document.
// UploadedAt is epoch milliseconds; zero means the upload time is unknown
// (absent or unparseable), not 1970.
type Chapter struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	UploadedAt int64  `json:"uploaded_at"`
}

// Page is a single resolved page image. Index is zero-based and contiguous
// in reading order.
type Page struct {
	Index    int    `json:"index"`
	ImageURL string `json:"image_url"`
}

// SearchFilters carries the caller's filter state for one search call. Zero
// values mean "no preference" and contribute nothing to the request.
type SearchFilters struct {
	Genres []string `json:"genres,omitempty"`
	Status string   `json:"status,omitempty"`
	Type   string   `json:"type,omitempty"`
	Sort   string   `json:"sort,omitempty"`
}

// Provider defines the contract that every website connector must implement.
// Series and chapters are identified by their site-relative URLs.
type Provider interface {
	GetInfo() ProviderInfo
	Popular(page int) (*MangaPage, error)
	Latest(page int) (*MangaPage, error)
	Search(page int, query string, filters SearchFilters) (*MangaPage, error)
	GetDetails(seriesURL string) (*MangaDetails, error)
	GetChapters(seriesURL string) ([]Chapter, error)
	GetPageURLs(chapterURL string) ([]Page, error)
}

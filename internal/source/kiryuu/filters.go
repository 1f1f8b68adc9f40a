package kiryuu

import (
	"strings"

	"github.com/ryogami/kiryuu-go/internal/models"
)

// The upstream advanced-search form knows exactly four kinds of filter. They
// are kept as a closed set of variants so the request builder reduces them
// with a single exhaustive type switch.
type Filter interface{ filter() }

// GenreFilter holds the genre codes the caller checked.
type GenreFilter struct{ Checked []string }

// StatusFilter is an index into statusOptions; index 0 ("All") contributes
// nothing to the request.
type StatusFilter struct{ Index int }

// TypeFilter is an index into typeOptions; the "all" label contributes
// nothing to the request.
type TypeFilter struct{ Index int }

// SortFilter carries a sort key from sortOptions. The "default" sentinel
// omits the field entirely so the server applies its own ordering.
type SortFilter struct{ Key string }

func (GenreFilter) filter()  {}
func (StatusFilter) filter() {}
func (TypeFilter) filter()   {}
func (SortFilter) filter()   {}

var (
	statusOptions = []string{"All", "Ongoing", "Completed"}
	typeOptions   = []string{"All", "Manga", "Manhwa", "Manhua", "Webtoon"}
	sortOptions   = []string{"default", "popular", "update"}
)

// Genre maps a display name to the site's form code.
type Genre struct {
	Name  string
	Value string
}

// GenreList is the genre vocabulary the upstream search form exposes.
var GenreList = []Genre{
	{"Action", "action"},
	{"Adventure", "adventure"},
	{"Comedy", "comedy"},
	{"Drama", "drama"},
	{"Fantasy", "fantasy"},
	{"Romance", "romance"},
	{"School Life", "school-life"},
	{"Slice of Life", "slice-of-life"},
	{"Sports", "sports"},
	{"Supernatural", "supernatural"},
	{"Thriller", "thriller"},
	{"Webtoon", "webtoon"},
	{"Manhwa", "manhwa"},
	{"Manhua", "manhua"},
}

// filtersFromState maps the host-level filter struct onto the variant set.
// Unrecognized status/type labels resolve to index 0 and drop out; an
// unrecognized sort key falls back to the server default.
func filtersFromState(f models.SearchFilters) []Filter {
	sortKey := sortOptions[indexOfFold(sortOptions, f.Sort)]
	return []Filter{
		GenreFilter{Checked: f.Genres},
		StatusFilter{Index: indexOfFold(statusOptions, f.Status)},
		TypeFilter{Index: indexOfFold(typeOptions, f.Type)},
		SortFilter{Key: sortKey},
	}
}

func indexOfFold(options []string, label string) int {
	for i, o := range options {
		if strings.EqualFold(o, label) {
			return i
		}
	}
	return 0
}

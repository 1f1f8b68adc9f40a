package kiryuu

import (
	"reflect"
	"testing"

	"github.com/ryogami/kiryuu-go/internal/models"
)

func TestParseDetails(t *testing.T) {
	p := New("https://example.com", nil)

	t.Run("full details page", func(t *testing.T) {
		html := `
		<article><section>
		  <h1 itemprop="name">Solo Leveling</h1>
		  <img class="wp-post-image" src="/covers/sl.jpg">
		  <a rel="author">Author: Chugong</a>
		  <span class="genres">
		    <a>Action</a>
		    <a>Fantasy</a>
		    <a> </a>
		  </span>
		  <li>Status: Ongoing</li>
		</section></article>
		<div id="tabpanel-description">
		  <div data-show="true">Ten years ago, the gates appeared.</div>
		</div>`
		d := p.parseDetails(docFromHTML(t, html))

		if d.Title != "Solo Leveling" {
			t.Errorf("Title = %q", d.Title)
		}
		if d.ThumbnailURL != "https://example.com/covers/sl.jpg" {
			t.Errorf("ThumbnailURL = %q", d.ThumbnailURL)
		}
		if d.Author != "Chugong" {
			t.Errorf("Author label should be stripped, got %q", d.Author)
		}
		if !reflect.DeepEqual(d.Genres, []string{"Action", "Fantasy"}) {
			t.Errorf("Genres = %v", d.Genres)
		}
		if d.Description != "Ten years ago, the gates appeared." {
			t.Errorf("Description = %q", d.Description)
		}
		if d.Status != models.StatusOngoing {
			t.Errorf("Status = %v, want ongoing", d.Status)
		}
	})

	t.Run("hidden tab panel still yields description", func(t *testing.T) {
		html := `
		<div class="entry-content"><h1>X</h1></div>
		<div id="tabpanel-description">
		  <div data-show="false">Hidden synopsis.</div>
		</div>`
		d := p.parseDetails(docFromHTML(t, html))
		if d.Description != "Hidden synopsis." {
			t.Errorf("Description = %q, want hidden panel text", d.Description)
		}
	})

	t.Run("legacy summary fallback", func(t *testing.T) {
		html := `
		<div class="post">
		  <h1 class="entry-title">Old Series</h1>
		  <div class="summary">Legacy synopsis.</div>
		</div>`
		d := p.parseDetails(docFromHTML(t, html))
		if d.Title != "Old Series" {
			t.Errorf("Title = %q", d.Title)
		}
		if d.Description != "Legacy synopsis." {
			t.Errorf("Description = %q", d.Description)
		}
	})

	t.Run("no known container falls back to whole document", func(t *testing.T) {
		html := `<main><h1>Bare Title</h1></main>`
		d := p.parseDetails(docFromHTML(t, html))
		if d.Title != "Bare Title" {
			t.Errorf("Title = %q", d.Title)
		}
		if d.Status != models.StatusUnknown {
			t.Errorf("Status = %v, want unknown", d.Status)
		}
	})
}

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		in   string
		want models.PublicationStatus
	}{
		{"Status: Ongoing", models.StatusOngoing},
		{"Terus Update", models.StatusOngoing},
		{"Status: Completed", models.StatusCompleted},
		{"complete", models.StatusCompleted},
		{"On Hiatus", models.StatusOnHiatus},
		{"Cancelled", models.StatusCancelled},
		{"canceled", models.StatusCancelled},
		{"", models.StatusUnknown},
		{"Season 2 announced", models.StatusUnknown},
		// Order sensitivity: the first matching rule wins.
		{"Status: Ongoing (was on Hiatus)", models.StatusOngoing},
		{"Completed, no longer on hiatus", models.StatusCompleted},
	}
	for _, tc := range cases {
		if got := classifyStatus(tc.in); got != tc.want {
			t.Errorf("classifyStatus(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

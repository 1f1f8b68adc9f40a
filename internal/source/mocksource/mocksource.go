// A mock provider for development and testing purposes. It simulates a real
// site without making network calls.
package mocksource

import (
	"fmt"
	"time"

	"github.com/ryogami/kiryuu-go/internal/models"
)

type MockProvider struct{}

func New() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) GetInfo() models.ProviderInfo {
	return models.ProviderInfo{
		ID:       "mocksource",
		Name:     "Mocksource",
		SiteURL:  "https://mocksource.invalid",
		Language: "en",
	}
}

func (p *MockProvider) Popular(page int) (*models.MangaPage, error) {
	return p.page(page, "Popular"), nil
}

func (p *MockProvider) Latest(page int) (*models.MangaPage, error) {
	return p.page(page, "Latest"), nil
}

func (p *MockProvider) Search(page int, query string, _ models.SearchFilters) (*models.MangaPage, error) {
	return p.page(page, query), nil
}

func (p *MockProvider) page(page int, label string) *models.MangaPage {
	var items []models.MangaSummary
	for i := 1; i <= 10; i++ {
		items = append(items, models.MangaSummary{
			Title:        fmt.Sprintf("%s - Result %d", label, i),
			URL:          fmt.Sprintf("/manga/mock-series-%d-%d/", page, i),
			ThumbnailURL: fmt.Sprintf("https://placehold.co/400x600?text=Cover+%d", i),
		})
	}
	return &models.MangaPage{Items: items, HasNext: page < 3}
}

func (p *MockProvider) GetDetails(seriesURL string) (*models.MangaDetails, error) {
	return &models.MangaDetails{
		Title:        "Mock Series",
		ThumbnailURL: "https://placehold.co/400x600?text=Cover",
		Description:  "A series that exists only in memory.",
		Genres:       []string{"Action", "Comedy"},
		Author:       "Nobody",
		Status:       models.StatusOngoing,
	}, nil
}

func (p *MockProvider) GetChapters(seriesURL string) ([]models.Chapter, error) {
	var chapters []models.Chapter
	for i := 25; i >= 1; i-- {
		chapters = append(chapters, models.Chapter{
			Name:       fmt.Sprintf("Chapter %d: The Mocking", i),
			URL:        fmt.Sprintf("%schapter-%d/", seriesURL, i),
			UploadedAt: time.Now().AddDate(0, 0, -i).UnixMilli(),
		})
	}
	return chapters, nil
}

func (p *MockProvider) GetPageURLs(chapterURL string) ([]models.Page, error) {
	var pages []models.Page
	for i := 0; i < 20; i++ {
		pages = append(pages, models.Page{
			Index:    i,
			ImageURL: fmt.Sprintf("https://placehold.co/800x1200?text=Page+%d", i+1),
		})
	}
	return pages, nil
}

// A handler file for all provider-related API endpoints. These endpoints
// proxy to the registered sources; they never touch the database.

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ryogami/kiryuu-go/internal/models"
	"github.com/ryogami/kiryuu-go/internal/source"
	"github.com/ryogami/kiryuu-go/internal/source/kiryuu"
)

func (s *Server) handleListProviders(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, source.GetAll())
}

// getProvider resolves the provider from the URL, writing a 404 when the
// ID is unknown.
func (s *Server) getProvider(w http.ResponseWriter, r *http.Request) (models.Provider, bool) {
	providerID := chi.URLParam(r, "providerID")
	provider, ok := source.Get(providerID)
	if !ok {
		RespondWithError(w, http.StatusNotFound, "Provider not found")
	}
	return provider, ok
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// respondProviderError maps a provider failure onto 502. The known "site
// changed shape" sentinels keep their own message so callers can tell a
// markup drift from a plain transport failure.
func respondProviderError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, kiryuu.ErrChapterListUnavailable) || errors.Is(err, kiryuu.ErrNoImagesFound) {
		message = err.Error()
	}
	RespondWithError(w, http.StatusBadGateway, message)
}

func (s *Server) handleProviderPopular(w http.ResponseWriter, r *http.Request) {
	provider, ok := s.getProvider(w, r)
	if !ok {
		return
	}
	results, err := provider.Popular(pageParam(r))
	if err != nil {
		respondProviderError(w, err, "Failed to fetch popular series")
		return
	}
	RespondWithJSON(w, http.StatusOK, results)
}

func (s *Server) handleProviderLatest(w http.ResponseWriter, r *http.Request) {
	provider, ok := s.getProvider(w, r)
	if !ok {
		return
	}
	results, err := provider.Latest(pageParam(r))
	if err != nil {
		respondProviderError(w, err, "Failed to fetch latest series")
		return
	}
	RespondWithJSON(w, http.StatusOK, results)
}

func (s *Server) handleProviderSearch(w http.ResponseWriter, r *http.Request) {
	provider, ok := s.getProvider(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	filters := models.SearchFilters{
		Genres: q["genre"],
		Status: q.Get("status"),
		Type:   q.Get("type"),
		Sort:   q.Get("sort"),
	}
	results, err := provider.Search(pageParam(r), q.Get("q"), filters)
	if err != nil {
		respondProviderError(w, err, "Failed to perform search")
		return
	}
	RespondWithJSON(w, http.StatusOK, results)
}

func (s *Server) handleProviderDetails(w http.ResponseWriter, r *http.Request) {
	provider, ok := s.getProvider(w, r)
	if !ok {
		return
	}
	// Series identifiers contain slashes, so they travel as a query
	// parameter rather than a path segment.
	seriesID := r.URL.Query().Get("id")
	if seriesID == "" {
		RespondWithError(w, http.StatusBadRequest, "Missing series id")
		return
	}
	details, err := provider.GetDetails(seriesID)
	if err != nil {
		respondProviderError(w, err, "Failed to fetch series details")
		return
	}
	RespondWithJSON(w, http.StatusOK, details)
}

func (s *Server) handleProviderChapters(w http.ResponseWriter, r *http.Request) {
	provider, ok := s.getProvider(w, r)
	if !ok {
		return
	}
	seriesID := r.URL.Query().Get("id")
	if seriesID == "" {
		RespondWithError(w, http.StatusBadRequest, "Missing series id")
		return
	}
	chapters, err := provider.GetChapters(seriesID)
	if err != nil {
		respondProviderError(w, err, "Failed to fetch chapters")
		return
	}
	RespondWithJSON(w, http.StatusOK, chapters)
}

func (s *Server) handleProviderPages(w http.ResponseWriter, r *http.Request) {
	provider, ok := s.getProvider(w, r)
	if !ok {
		return
	}
	chapterID := r.URL.Query().Get("id")
	if chapterID == "" {
		RespondWithError(w, http.StatusBadRequest, "Missing chapter id")
		return
	}
	pages, err := provider.GetPageURLs(chapterID)
	if err != nil {
		respondProviderError(w, err, "Failed to fetch pages")
		return
	}
	RespondWithJSON(w, http.StatusOK, pages)
}

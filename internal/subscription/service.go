// Package subscription polls tracked series for new chapters and
// publishes what it finds to the chapter feed.
package subscription

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/ryogami/kiryuu-go/internal/core"
	"github.com/ryogami/kiryuu-go/internal/models"
	"github.com/ryogami/kiryuu-go/internal/source"
	"github.com/ryogami/kiryuu-go/internal/store"
)

// Service holds the dependencies for the subscription checker.
type Service struct {
	app       *core.App
	st        *store.Store
	scheduler *gocron.Scheduler
}

// NewService creates a new subscription service.
func NewService(app *core.App) *Service {
	return &Service{
		app: app,
		st:  store.New(app.DB),
	}
}

// Start schedules the periodic subscription check. An interval of 0
// disables polling; single rechecks via the API still work.
func (s *Service) Start() {
	interval := s.app.Config.CheckInterval
	if interval == 0 {
		log.Println("Subscription check interval is 0, scheduled polling is disabled.")
		return
	}

	log.Printf("Scheduling subscription check to run every %d minutes.", interval)
	s.scheduler = gocron.NewScheduler(time.UTC)
	s.scheduler.SingletonModeAll()
	_, err := s.scheduler.Every(interval).Minutes().Do(s.CheckAllSubscriptions)
	if err != nil {
		log.Printf("Error scheduling subscription check: %v", err)
		return
	}
	s.scheduler.StartAsync()
}

// Stop halts the background scheduler.
func (s *Service) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// CheckAllSubscriptions fetches all subscriptions and checks them for new
// chapters. A failure on one subscription does not stop the sweep.
func (s *Service) CheckAllSubscriptions() {
	log.Println("Running scheduled subscription check...")
	subscriptions, err := s.st.GetAllSubscriptions("")
	if err != nil {
		log.Printf("Subscription Check Error: Failed to get subscriptions: %v", err)
		return
	}

	for _, sub := range subscriptions {
		s.CheckSingleSubscription(sub.ID)
	}
	log.Println("Finished scheduled subscription check.")
}

// notification is the payload broadcast over the websocket hub when new
// chapters are discovered.
type notification struct {
	Event          string `json:"event"`
	SubscriptionID int64  `json:"subscription_id"`
	SeriesTitle    string `json:"series_title"`
	NewChapters    int    `json:"new_chapters"`
}

// CheckSingleSubscription checks a specific subscription for new chapters.
func (s *Service) CheckSingleSubscription(subID int64) {
	sub, err := s.st.GetSubscriptionByID(subID)
	if err != nil {
		log.Printf("Subscription Check Error: Failed to get subscription %d: %v", subID, err)
		return
	}

	provider, ok := source.Get(sub.ProviderID)
	if !ok {
		log.Printf("Subscription Check Error: Provider '%s' not found for subscription %d", sub.ProviderID, subID)
		return
	}

	remoteChapters, err := provider.GetChapters(sub.SeriesIdentifier)
	if err != nil {
		log.Printf("Subscription Check Error: Failed to get remote chapters for '%s': %v", sub.SeriesTitle, err)
		return
	}

	known, err := s.st.GetKnownChapterURLs(sub.ID)
	if err != nil {
		log.Printf("Subscription Check Error: Failed to get known chapters for '%s': %v", sub.SeriesTitle, err)
		return
	}

	var newChapters []models.Chapter
	for _, ch := range remoteChapters {
		if !known[ch.URL] {
			newChapters = append(newChapters, ch)
		}
	}

	if len(newChapters) > 0 {
		log.Printf("Found %d new chapters for '%s'.", len(newChapters), sub.SeriesTitle)
		if err := s.st.InsertFeedItems(sub.ID, newChapters); err != nil {
			log.Printf("Subscription Check Error: Failed to record new chapters for '%s': %v", sub.SeriesTitle, err)
			return
		}
		if s.app.WsHub != nil {
			s.app.WsHub.BroadcastJSON(notification{
				Event:          "new-chapters",
				SubscriptionID: sub.ID,
				SeriesTitle:    sub.SeriesTitle,
				NewChapters:    len(newChapters),
			})
		}
	} else {
		log.Printf("No new chapters found for '%s'.", sub.SeriesTitle)
	}

	// Only reached after a successful check, so a transient provider
	// failure does not advance the last-checked time.
	if err := s.st.UpdateSubscriptionLastChecked(sub.ID); err != nil {
		log.Printf("Subscription Check Error: Failed to update last checked time for '%s': %v", sub.SeriesTitle, err)
	}
}

package models

import "time"

type Subscription struct {
	ID               int64      `json:"id"`
	SeriesTitle      string     `json:"series_title"`
	SeriesIdentifier string     `json:"series_identifier"`
	ProviderID       string     `json:"provider_id"`
	LastCheckedAt    *time.Time `json:"last_checked_at,omitempty"` // Nullable, when the series was last checked for updates
	CreatedAt        time.Time  `json:"created_at"`
}

// FeedItem is one chapter discovered by the subscription poller.
type FeedItem struct {
	ID             int64     `json:"id"`
	SubscriptionID int64     `json:"subscription_id"`
	SeriesTitle    string    `json:"series_title"`
	ChapterTitle   string    `json:"chapter_title"`
	ChapterURL     string    `json:"chapter_url"`
	UploadedAt     int64     `json:"uploaded_at"`
	DiscoveredAt   time.Time `json:"discovered_at"`
}

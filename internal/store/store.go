// To handle all database interactions. This is our data access layer,
// keeping SQL queries separate from business logic.
package store

import (
	"database/sql"
	"time"

	"github.com/ryogami/kiryuu-go/internal/models"
)

// Store provides all functions to interact with the database.
type Store struct {
	db *sql.DB
}

// New creates a new Store instance.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// SubscribeToSeries adds a series to the subscriptions table. Subscribing to
// an already-tracked series returns the existing row instead of failing.
func (s *Store) SubscribeToSeries(seriesTitle, seriesIdentifier, providerID string) (*models.Subscription, error) {
	var sub models.Subscription
	query := `
        INSERT INTO subscriptions (series_title, series_identifier, provider_id, created_at, last_checked_at)
        VALUES (?, ?, ?, ?, NULL)
        ON CONFLICT(series_identifier, provider_id) DO NOTHING
        RETURNING id, series_title, series_identifier, provider_id, created_at;
    `
	err := s.db.QueryRow(query, seriesTitle, seriesIdentifier, providerID, time.Now()).Scan(
		&sub.ID, &sub.SeriesTitle, &sub.SeriesIdentifier, &sub.ProviderID, &sub.CreatedAt,
	)
	if err == sql.ErrNoRows {
		err = s.db.QueryRow(`
			SELECT id, series_title, series_identifier, provider_id, created_at
			FROM subscriptions
			WHERE series_identifier = ? AND provider_id = ?`, seriesIdentifier, providerID).Scan(
			&sub.ID, &sub.SeriesTitle, &sub.SeriesIdentifier, &sub.ProviderID, &sub.CreatedAt,
		)
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetAllSubscriptions retrieves all subscriptions, optionally filtered by provider ID.
func (s *Store) GetAllSubscriptions(providerIDFilter string) ([]*models.Subscription, error) {
	query := "SELECT id, series_title, series_identifier, provider_id, created_at, last_checked_at FROM subscriptions"
	args := []interface{}{}
	if providerIDFilter != "" {
		query += " WHERE provider_id = ?"
		args = append(args, providerIDFilter)
	}
	query += " ORDER BY series_title ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*models.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// GetSubscriptionByID retrieves a single subscription by its primary key.
func (s *Store) GetSubscriptionByID(id int64) (*models.Subscription, error) {
	row := s.db.QueryRow("SELECT id, series_title, series_identifier, provider_id, created_at, last_checked_at FROM subscriptions WHERE id = ?", id)
	return scanSubscription(row)
}

// DeleteSubscription removes a subscription and, via the foreign key
// cascade, its feed entries.
func (s *Store) DeleteSubscription(id int64) error {
	_, err := s.db.Exec("DELETE FROM subscriptions WHERE id = ?", id)
	return err
}

// UpdateSubscriptionLastChecked sets the last_checked_at timestamp to the current time.
func (s *Store) UpdateSubscriptionLastChecked(id int64) error {
	_, err := s.db.Exec("UPDATE subscriptions SET last_checked_at = ? WHERE id = ?", time.Now(), id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubscription(r rowScanner) (*models.Subscription, error) {
	var sub models.Subscription
	var createdAt time.Time
	var lastCheckedAt sql.NullTime
	if err := r.Scan(&sub.ID, &sub.SeriesTitle, &sub.SeriesIdentifier, &sub.ProviderID, &createdAt, &lastCheckedAt); err != nil {
		return nil, err
	}
	sub.CreatedAt = createdAt
	if lastCheckedAt.Valid {
		sub.LastCheckedAt = &lastCheckedAt.Time
	}
	return &sub, nil
}

// GetKnownChapterURLs returns the chapter URLs already recorded for a
// subscription, so the poller can diff a fresh chapter list against them.
func (s *Store) GetKnownChapterURLs(subscriptionID int64) (map[string]bool, error) {
	rows, err := s.db.Query("SELECT chapter_url FROM chapter_feed WHERE subscription_id = ?", subscriptionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	known := make(map[string]bool)
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		known[u] = true
	}
	return known, rows.Err()
}

// InsertFeedItems records newly discovered chapters in a single transaction.
// Re-inserting an already-known chapter is a no-op, so rechecks stay
// idempotent.
func (s *Store) InsertFeedItems(subscriptionID int64, chapters []models.Chapter) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
        INSERT OR IGNORE INTO chapter_feed
        (subscription_id, chapter_title, chapter_url, uploaded_at, discovered_at)
        VALUES (?, ?, ?, ?, ?)
    `)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ch := range chapters {
		if _, err := stmt.Exec(subscriptionID, ch.Name, ch.URL, ch.UploadedAt, time.Now()); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetFeed returns the most recently discovered chapters across all
// subscriptions, newest first.
func (s *Store) GetFeed(limit int) ([]*models.FeedItem, error) {
	query := `
        SELECT f.id, f.subscription_id, s.series_title, f.chapter_title, f.chapter_url, f.uploaded_at, f.discovered_at
        FROM chapter_feed f
        JOIN subscriptions s ON s.id = f.subscription_id
        ORDER BY f.discovered_at DESC, f.id DESC
        LIMIT ?
    `
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.FeedItem
	for rows.Next() {
		var item models.FeedItem
		if err := rows.Scan(&item.ID, &item.SubscriptionID, &item.SeriesTitle, &item.ChapterTitle, &item.ChapterURL, &item.UploadedAt, &item.DiscoveredAt); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

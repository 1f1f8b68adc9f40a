// This test file covers the data access layer. It uses an in-memory
// SQLite database to ensure tests are fast and isolated.

package store_test

import (
	"testing"

	"github.com/ryogami/kiryuu-go/internal/models"
	"github.com/ryogami/kiryuu-go/internal/store"
	"github.com/ryogami/kiryuu-go/internal/testutil"
)

func TestSubscribeToSeries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)

	sub, err := s.SubscribeToSeries("Solo Leveling", "/manga/solo-leveling/", "kiryuu")
	if err != nil {
		t.Fatalf("SubscribeToSeries failed: %v", err)
	}
	if sub.ID == 0 {
		t.Error("Expected a non-zero subscription ID")
	}
	if sub.LastCheckedAt != nil {
		t.Error("A fresh subscription should have no last checked time")
	}

	// Subscribing again to the same series must return the existing row.
	again, err := s.SubscribeToSeries("Solo Leveling", "/manga/solo-leveling/", "kiryuu")
	if err != nil {
		t.Fatalf("Re-subscribe failed: %v", err)
	}
	if again.ID != sub.ID {
		t.Errorf("Re-subscribe returned ID %d, want %d", again.ID, sub.ID)
	}

	// The same identifier on another provider is a distinct subscription.
	other, err := s.SubscribeToSeries("Solo Leveling", "/manga/solo-leveling/", "mocksource")
	if err != nil {
		t.Fatalf("Subscribe on other provider failed: %v", err)
	}
	if other.ID == sub.ID {
		t.Error("Different providers should produce different subscriptions")
	}
}

func TestGetAllSubscriptions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)

	s.SubscribeToSeries("Zeta", "/manga/zeta/", "kiryuu")
	s.SubscribeToSeries("Alpha", "/manga/alpha/", "kiryuu")
	s.SubscribeToSeries("Mid", "/manga/mid/", "mocksource")

	all, err := s.GetAllSubscriptions("")
	if err != nil {
		t.Fatalf("GetAllSubscriptions failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 subscriptions, got %d", len(all))
	}
	if all[0].SeriesTitle != "Alpha" || all[2].SeriesTitle != "Zeta" {
		t.Errorf("Expected title ordering, got %q..%q", all[0].SeriesTitle, all[2].SeriesTitle)
	}

	filtered, err := s.GetAllSubscriptions("mocksource")
	if err != nil {
		t.Fatalf("Filtered GetAllSubscriptions failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].SeriesTitle != "Mid" {
		t.Errorf("Provider filter returned %+v", filtered)
	}
}

func TestDeleteSubscriptionCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)

	sub, _ := s.SubscribeToSeries("Doomed", "/manga/doomed/", "kiryuu")
	if err := s.InsertFeedItems(sub.ID, []models.Chapter{{Name: "Ch 1", URL: "/doomed/chapter-1/"}}); err != nil {
		t.Fatalf("InsertFeedItems failed: %v", err)
	}

	if err := s.DeleteSubscription(sub.ID); err != nil {
		t.Fatalf("DeleteSubscription failed: %v", err)
	}
	if _, err := s.GetSubscriptionByID(sub.ID); err == nil {
		t.Error("Expected lookup of a deleted subscription to fail")
	}

	var count int
	db.QueryRow("SELECT COUNT(*) FROM chapter_feed WHERE subscription_id = ?", sub.ID).Scan(&count)
	if count != 0 {
		t.Errorf("Expected feed rows to cascade on delete, found %d", count)
	}
}

func TestUpdateSubscriptionLastChecked(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)

	sub, _ := s.SubscribeToSeries("Checked", "/manga/checked/", "kiryuu")
	if err := s.UpdateSubscriptionLastChecked(sub.ID); err != nil {
		t.Fatalf("UpdateSubscriptionLastChecked failed: %v", err)
	}

	got, err := s.GetSubscriptionByID(sub.ID)
	if err != nil {
		t.Fatalf("GetSubscriptionByID failed: %v", err)
	}
	if got.LastCheckedAt == nil {
		t.Error("Expected last checked time to be set")
	}
}

func TestFeed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := store.New(db)

	sub, _ := s.SubscribeToSeries("Feeder", "/manga/feeder/", "kiryuu")
	chapters := []models.Chapter{
		{Name: "Ch 2", URL: "/feeder/chapter-2/", UploadedAt: 1700000000000},
		{Name: "Ch 1", URL: "/feeder/chapter-1/", UploadedAt: 1600000000000},
	}
	if err := s.InsertFeedItems(sub.ID, chapters); err != nil {
		t.Fatalf("InsertFeedItems failed: %v", err)
	}

	known, err := s.GetKnownChapterURLs(sub.ID)
	if err != nil {
		t.Fatalf("GetKnownChapterURLs failed: %v", err)
	}
	if len(known) != 2 || !known["/feeder/chapter-1/"] {
		t.Errorf("Known URLs = %v", known)
	}

	// Re-inserting the same chapters must not duplicate feed rows.
	if err := s.InsertFeedItems(sub.ID, chapters); err != nil {
		t.Fatalf("Idempotent insert failed: %v", err)
	}
	items, err := s.GetFeed(50)
	if err != nil {
		t.Fatalf("GetFeed failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 feed items after re-insert, got %d", len(items))
	}
	if items[0].SeriesTitle != "Feeder" {
		t.Errorf("Feed item should carry the series title, got %q", items[0].SeriesTitle)
	}
	if items[0].UploadedAt == 0 {
		t.Error("Feed item should carry the chapter upload time")
	}

	limited, _ := s.GetFeed(1)
	if len(limited) != 1 {
		t.Errorf("GetFeed limit not applied, got %d items", len(limited))
	}
}

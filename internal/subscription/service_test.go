package subscription_test

import (
	"testing"

	"github.com/ryogami/kiryuu-go/internal/store"
	"github.com/ryogami/kiryuu-go/internal/subscription"
	"github.com/ryogami/kiryuu-go/internal/testutil"
)

func TestCheckSingleSubscription(t *testing.T) {
	app := testutil.SetupTestApp(t)
	st := store.New(app.DB)
	svc := subscription.NewService(app)

	sub, err := st.SubscribeToSeries("Mock Series", "/manga/mock-series/", "mocksource")
	if err != nil {
		t.Fatalf("SubscribeToSeries failed: %v", err)
	}

	svc.CheckSingleSubscription(sub.ID)

	known, err := st.GetKnownChapterURLs(sub.ID)
	if err != nil {
		t.Fatalf("GetKnownChapterURLs failed: %v", err)
	}
	if len(known) != 25 {
		t.Errorf("Expected all 25 mock chapters in the feed, got %d", len(known))
	}

	checked, _ := st.GetSubscriptionByID(sub.ID)
	if checked.LastCheckedAt == nil {
		t.Error("A successful check should set the last checked time")
	}

	// A second check discovers nothing new and must not duplicate entries.
	svc.CheckSingleSubscription(sub.ID)
	items, err := st.GetFeed(100)
	if err != nil {
		t.Fatalf("GetFeed failed: %v", err)
	}
	if len(items) != 25 {
		t.Errorf("Expected 25 feed items after recheck, got %d", len(items))
	}
}

func TestCheckSubscriptionWithUnknownProvider(t *testing.T) {
	app := testutil.SetupTestApp(t)
	st := store.New(app.DB)
	svc := subscription.NewService(app)

	sub, err := st.SubscribeToSeries("Orphan", "/manga/orphan/", "gone-source")
	if err != nil {
		t.Fatalf("SubscribeToSeries failed: %v", err)
	}

	// Must not panic, and must not mark the subscription as checked.
	svc.CheckSingleSubscription(sub.ID)

	got, _ := st.GetSubscriptionByID(sub.ID)
	if got.LastCheckedAt != nil {
		t.Error("A failed check must not advance the last checked time")
	}
	known, _ := st.GetKnownChapterURLs(sub.ID)
	if len(known) != 0 {
		t.Errorf("Expected no feed entries, got %d", len(known))
	}
}

func TestCheckAllSubscriptions(t *testing.T) {
	app := testutil.SetupTestApp(t)
	st := store.New(app.DB)
	svc := subscription.NewService(app)

	a, _ := st.SubscribeToSeries("A", "/manga/a/", "mocksource")
	b, _ := st.SubscribeToSeries("B", "/manga/b/", "mocksource")
	// A broken subscription in the middle must not stop the sweep.
	st.SubscribeToSeries("Broken", "/manga/broken/", "gone-source")

	svc.CheckAllSubscriptions()

	for _, sub := range []int64{a.ID, b.ID} {
		known, _ := st.GetKnownChapterURLs(sub)
		if len(known) != 25 {
			t.Errorf("Subscription %d has %d feed entries, want 25", sub, len(known))
		}
	}
}

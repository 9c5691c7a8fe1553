package catalog

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/joostry/joostry/internal/bus"
	"github.com/joostry/joostry/internal/cache"
	"github.com/joostry/joostry/internal/model"
	"github.com/joostry/joostry/internal/store"
)

func testFetcher(t *testing.T) (*Fetcher, *store.Queries, *bus.Bus) {
	t.Helper()

	f, err := os.CreateTemp("", "joostry-catalog-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	queries := store.New(db)
	manager := cache.NewManager(cache.NewDefaultCache())
	t.Cleanup(manager.Stop)

	events := bus.New(nil)
	return NewFetcher(queries, manager, events, time.Hour), queries, events
}

func TestFeaturedProductsFilterAndLimit(t *testing.T) {
	fetcher, queries, _ := testFetcher(t)
	ctx := context.Background()

	// Seed more featured products than the limit, plus ineligible ones.
	for i := 0; i < FeaturedProductsLimit+2; i++ {
		_, err := queries.CreateProduct(ctx, store.CreateProductParams{
			Name: "منتج", Slug: "p-" + string(rune('a'+i)), Price: 10,
			IsActive: true, IsFeatured: true,
		})
		if err != nil {
			t.Fatalf("CreateProduct: %v", err)
		}
	}
	if _, err := queries.CreateProduct(ctx, store.CreateProductParams{
		Name: "غير مفعل", Slug: "inactive", Price: 5, IsActive: false, IsFeatured: true,
	}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	got, err := fetcher.FeaturedProducts(ctx)
	if err != nil {
		t.Fatalf("FeaturedProducts: %v", err)
	}
	if len(got) != FeaturedProductsLimit {
		t.Errorf("len = %d, want %d", len(got), FeaturedProductsLimit)
	}
	for _, p := range got {
		if !p.IsActive || !p.IsFeatured {
			t.Errorf("product %q is not active+featured", p.Slug)
		}
	}
}

func TestVisibleReviewsOrdering(t *testing.T) {
	fetcher, queries, _ := testFetcher(t)
	ctx := context.Background()

	for _, r := range []store.CreateReviewParams{
		{CustomerName: "c", ReviewText: "x", Rating: 5, IsVisible: true, DisplayOrder: 3, Status: model.ReviewStatusApproved},
		{CustomerName: "a", ReviewText: "x", Rating: 5, IsVisible: true, DisplayOrder: 1, Status: model.ReviewStatusApproved},
		{CustomerName: "b", ReviewText: "x", Rating: 5, IsVisible: true, DisplayOrder: 2, Status: model.ReviewStatusApproved},
		{CustomerName: "hidden", ReviewText: "x", Rating: 1, IsVisible: false, DisplayOrder: 0, Status: model.ReviewStatusApproved},
		{CustomerName: "pending", ReviewText: "x", Rating: 5, IsVisible: true, DisplayOrder: 0, Status: model.ReviewStatusPending},
	} {
		if _, err := queries.CreateReview(ctx, r); err != nil {
			t.Fatalf("CreateReview: %v", err)
		}
	}

	got, err := fetcher.VisibleReviews(ctx)
	if err != nil {
		t.Fatalf("VisibleReviews: %v", err)
	}
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].CustomerName != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i].CustomerName, want[i])
		}
	}
}

func TestEmptyCollectionsAreEmptySlices(t *testing.T) {
	fetcher, _, _ := testFetcher(t)
	ctx := context.Background()

	products, err := fetcher.FeaturedProducts(ctx)
	if err != nil {
		t.Fatalf("FeaturedProducts: %v", err)
	}
	if products == nil {
		t.Error("empty featured products should be a non-nil slice")
	}

	reviews, err := fetcher.VisibleReviews(ctx)
	if err != nil {
		t.Fatalf("VisibleReviews: %v", err)
	}
	if len(reviews) != 0 {
		t.Errorf("len(reviews) = %d, want 0", len(reviews))
	}
}

func TestUnconfiguredStoreYieldsEmpty(t *testing.T) {
	manager := cache.NewManager(cache.NewDefaultCache())
	t.Cleanup(manager.Stop)
	fetcher := NewFetcher(nil, manager, nil, time.Hour)

	got, err := fetcher.FeaturedProducts(context.Background())
	if err != nil {
		t.Fatalf("FeaturedProducts: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestCatalogEventInvalidatesCache(t *testing.T) {
	fetcher, queries, events := testFetcher(t)
	ctx := context.Background()

	first, err := fetcher.ActiveCategories(ctx)
	if err != nil {
		t.Fatalf("ActiveCategories: %v", err)
	}
	if len(first) != 0 {
		t.Fatalf("len = %d, want 0", len(first))
	}

	if _, err := queries.CreateCategory(ctx, store.CreateCategoryParams{
		Name: "حمضيات", Slug: "citrus", IsActive: true,
	}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	// Still cached as empty until the change is announced.
	cached, err := fetcher.ActiveCategories(ctx)
	if err != nil {
		t.Fatalf("ActiveCategories: %v", err)
	}
	if len(cached) != 0 {
		t.Fatalf("expected cached empty list before invalidation")
	}

	events.Emit(bus.EventCatalogUpdated, nil)

	refreshed, err := fetcher.ActiveCategories(ctx)
	if err != nil {
		t.Fatalf("ActiveCategories: %v", err)
	}
	if len(refreshed) != 1 {
		t.Errorf("len = %d, want 1 after invalidation", len(refreshed))
	}
}

func TestSlideshowImagesInDisplayOrder(t *testing.T) {
	fetcher, queries, _ := testFetcher(t)
	ctx := context.Background()

	for _, s := range []store.CreateSlideshowImageParams{
		{ImageURL: "/img/2.jpg", IsActive: true, DisplayOrder: 2},
		{ImageURL: "/img/1.jpg", IsActive: true, DisplayOrder: 1},
		{ImageURL: "/img/x.jpg", IsActive: false, DisplayOrder: 0},
	} {
		if _, err := queries.CreateSlideshowImage(ctx, s); err != nil {
			t.Fatalf("CreateSlideshowImage: %v", err)
		}
	}

	got, err := fetcher.ActiveSlideshowImages(ctx)
	if err != nil {
		t.Fatalf("ActiveSlideshowImages: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ImageURL != "/img/1.jpg" || got[1].ImageURL != "/img/2.jpg" {
		t.Errorf("order = [%q, %q]", got[0].ImageURL, got[1].ImageURL)
	}
}

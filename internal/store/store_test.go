package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/joostry/joostry/internal/model"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "joostry-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func TestCreateUser(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	now := time.Now()
	user, err := q.CreateUser(ctx, CreateUserParams{
		Email:        "test@example.com",
		PasswordHash: "hashed-password",
		Role:         model.RoleAdmin,
		Name:         "Test User",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if user.ID == 0 {
		t.Error("user.ID should not be 0")
	}
	if user.Email != "test@example.com" {
		t.Errorf("Email = %q, want %q", user.Email, "test@example.com")
	}

	found, err := q.GetUserByEmail(ctx, "test@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("ID = %d, want %d", found.ID, user.ID)
	}
}

func TestGetSiteSettingsAbsent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)

	_, err := q.GetSiteSettings(context.Background())
	if err != sql.ErrNoRows {
		t.Errorf("GetSiteSettings on empty table: err = %v, want sql.ErrNoRows", err)
	}
}

func TestUpsertSiteSettings(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	ss := model.SiteSettings{
		SiteName:     "جوستري",
		PrimaryColor: "#FF6B35",
		Phone:        "+966500000000",
	}
	if err := q.UpsertSiteSettings(ctx, ss); err != nil {
		t.Fatalf("UpsertSiteSettings (insert): %v", err)
	}

	got, err := q.GetSiteSettings(ctx)
	if err != nil {
		t.Fatalf("GetSiteSettings: %v", err)
	}
	if got.SiteName != "جوستري" {
		t.Errorf("SiteName = %q, want %q", got.SiteName, "جوستري")
	}
	if got.PrimaryColor != "#FF6B35" {
		t.Errorf("PrimaryColor = %q, want %q", got.PrimaryColor, "#FF6B35")
	}

	// Second upsert keeps the singleton: updates in place, no second row.
	ss.SiteName = "Joostry"
	if err := q.UpsertSiteSettings(ctx, ss); err != nil {
		t.Fatalf("UpsertSiteSettings (update): %v", err)
	}

	got, err = q.GetSiteSettings(ctx)
	if err != nil {
		t.Fatalf("GetSiteSettings after update: %v", err)
	}
	if got.SiteName != "Joostry" {
		t.Errorf("SiteName after update = %q, want %q", got.SiteName, "Joostry")
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM site_settings`).Scan(&count); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 1 {
		t.Errorf("site_settings row count = %d, want 1", count)
	}
}

func TestMenuItemOrdering(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	// Insert out of order; listing must come back sorted by position.
	for _, item := range []CreateMenuItemParams{
		{Label: "ثالث", URL: "/c", IsVisible: true, Position: 3},
		{Label: "أول", URL: "/a", IsVisible: true, Position: 1},
		{Label: "مخفي", URL: "/x", IsVisible: false, Position: 2},
	} {
		if _, err := q.CreateMenuItem(ctx, item); err != nil {
			t.Fatalf("CreateMenuItem: %v", err)
		}
	}

	items, err := q.ListVisibleMenuItems(ctx)
	if err != nil {
		t.Fatalf("ListVisibleMenuItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Label != "أول" || items[1].Label != "ثالث" {
		t.Errorf("order = [%q, %q], want [أول, ثالث]", items[0].Label, items[1].Label)
	}

	all, err := q.ListMenuItems(ctx)
	if err != nil {
		t.Fatalf("ListMenuItems: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}
}

func TestHomeSectionUpsertBySection(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	hs := model.HomeSection{
		Section:         model.SectionHero,
		IsVisible:       true,
		BackgroundColor: "#FFF8F0",
		TextAlignment:   model.AlignCenter,
		FontSize:        model.FontSizeLarge,
		PaddingTop:      model.PaddingLarge,
		PaddingBottom:   model.PaddingNormal,
	}
	if err := q.UpsertHomeSection(ctx, hs); err != nil {
		t.Fatalf("UpsertHomeSection: %v", err)
	}

	hs.BackgroundColor = "#FFFFFF"
	if err := q.UpsertHomeSection(ctx, hs); err != nil {
		t.Fatalf("UpsertHomeSection (update): %v", err)
	}

	got, err := q.GetHomeSection(ctx, model.SectionHero)
	if err != nil {
		t.Fatalf("GetHomeSection: %v", err)
	}
	if got.BackgroundColor != "#FFFFFF" {
		t.Errorf("BackgroundColor = %q, want %q", got.BackgroundColor, "#FFFFFF")
	}

	sections, err := q.ListHomeSections(ctx)
	if err != nil {
		t.Fatalf("ListHomeSections: %v", err)
	}
	if len(sections) != 1 {
		t.Errorf("len(sections) = %d, want 1", len(sections))
	}
}

func TestFeaturedProductFiltering(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	for _, p := range []CreateProductParams{
		{Name: "عصير برتقال", Slug: "orange", Price: 12, IsActive: true, IsFeatured: true},
		{Name: "عصير مانجو", Slug: "mango", Price: 15, IsActive: true, IsFeatured: false},
		{Name: "موقوف", Slug: "disabled", Price: 9, IsActive: false, IsFeatured: true},
	} {
		if _, err := q.CreateProduct(ctx, p); err != nil {
			t.Fatalf("CreateProduct: %v", err)
		}
	}

	featured, err := q.ListFeaturedProducts(ctx, 6)
	if err != nil {
		t.Fatalf("ListFeaturedProducts: %v", err)
	}
	if len(featured) != 1 {
		t.Fatalf("len(featured) = %d, want 1", len(featured))
	}
	if featured[0].Slug != "orange" {
		t.Errorf("Slug = %q, want %q", featured[0].Slug, "orange")
	}

	active, err := q.ListActiveProducts(ctx, 0)
	if err != nil {
		t.Fatalf("ListActiveProducts: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("len(active) = %d, want 2", len(active))
	}
}

func TestReviewModeration(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	id, err := q.CreateReview(ctx, CreateReviewParams{
		CustomerName: "سارة",
		ReviewText:   "عصير ممتاز",
		Rating:       5,
		IsVisible:    true,
		DisplayOrder: 1,
		Status:       model.ReviewStatusPending,
	})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	// Pending reviews never reach the storefront.
	visible, err := q.ListVisibleReviews(ctx, 0)
	if err != nil {
		t.Fatalf("ListVisibleReviews: %v", err)
	}
	if len(visible) != 0 {
		t.Errorf("len(visible) before approval = %d, want 0", len(visible))
	}

	if err := q.SetReviewStatus(ctx, id, model.ReviewStatusApproved); err != nil {
		t.Fatalf("SetReviewStatus: %v", err)
	}

	visible, err = q.ListVisibleReviews(ctx, 0)
	if err != nil {
		t.Fatalf("ListVisibleReviews: %v", err)
	}
	if len(visible) != 1 {
		t.Fatalf("len(visible) after approval = %d, want 1", len(visible))
	}
	if !visible[0].IsApproved() {
		t.Error("review should be approved")
	}

	if err := q.SetReviewVisible(ctx, id, false); err != nil {
		t.Fatalf("SetReviewVisible: %v", err)
	}
	visible, err = q.ListVisibleReviews(ctx, 0)
	if err != nil {
		t.Fatalf("ListVisibleReviews: %v", err)
	}
	if len(visible) != 0 {
		t.Errorf("len(visible) after hide = %d, want 0", len(visible))
	}
}

func TestVisibleReviewOrdering(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	for _, r := range []CreateReviewParams{
		{CustomerName: "ثالث", ReviewText: "x", Rating: 4, IsVisible: true, DisplayOrder: 3, Status: model.ReviewStatusApproved},
		{CustomerName: "أول", ReviewText: "x", Rating: 5, IsVisible: true, DisplayOrder: 1, Status: model.ReviewStatusApproved},
		{CustomerName: "ثاني", ReviewText: "x", Rating: 5, IsVisible: true, DisplayOrder: 2, Status: model.ReviewStatusApproved},
	} {
		if _, err := q.CreateReview(ctx, r); err != nil {
			t.Fatalf("CreateReview: %v", err)
		}
	}

	got, err := q.ListVisibleReviews(ctx, 0)
	if err != nil {
		t.Fatalf("ListVisibleReviews: %v", err)
	}
	want := []string{"أول", "ثاني", "ثالث"}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].CustomerName != want[i] {
			t.Errorf("got[%d].CustomerName = %q, want %q", i, got[i].CustomerName, want[i])
		}
	}
}

func TestContactMessages(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	publicID, err := q.CreateContactMessage(ctx, CreateContactMessageParams{
		Name:    "خالد",
		Phone:   "+966511111111",
		Message: "أريد طلب كمية كبيرة",
	})
	if err != nil {
		t.Fatalf("CreateContactMessage: %v", err)
	}
	if publicID == "" {
		t.Fatal("publicID should not be empty")
	}

	unread, err := q.CountUnreadContactMessages(ctx)
	if err != nil {
		t.Fatalf("CountUnreadContactMessages: %v", err)
	}
	if unread != 1 {
		t.Errorf("unread = %d, want 1", unread)
	}

	if err := q.MarkContactMessageRead(ctx, publicID); err != nil {
		t.Fatalf("MarkContactMessageRead: %v", err)
	}

	msg, err := q.GetContactMessage(ctx, publicID)
	if err != nil {
		t.Fatalf("GetContactMessage: %v", err)
	}
	if !msg.IsRead {
		t.Error("message should be read")
	}
}

func TestSlideshowSettingsSingleton(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	_, err := q.GetSlideshowSettings(ctx)
	if err != sql.ErrNoRows {
		t.Fatalf("GetSlideshowSettings on empty table: err = %v, want sql.ErrNoRows", err)
	}

	ss := model.SlideshowSettings{
		IsEnabled:  true,
		Autoplay:   true,
		IntervalMs: 4000,
		ShowNav:    true,
		Height:     "520px",
	}
	if err := q.UpsertSlideshowSettings(ctx, ss); err != nil {
		t.Fatalf("UpsertSlideshowSettings: %v", err)
	}

	got, err := q.GetSlideshowSettings(ctx)
	if err != nil {
		t.Fatalf("GetSlideshowSettings: %v", err)
	}
	if got.IntervalMs != 4000 {
		t.Errorf("IntervalMs = %d, want 4000", got.IntervalMs)
	}
	if !got.IsEnabled {
		t.Error("IsEnabled should be true")
	}
}

func TestSeed(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()

	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	// Second run is a no-op.
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed (second run): %v", err)
	}

	q := New(db)
	user, err := q.GetUserByEmail(ctx, DefaultAdminEmail)
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if !user.IsAdmin() {
		t.Error("seeded user should be admin")
	}
}

func TestEventLifecycle(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	for i := 0; i < 3; i++ {
		if _, err := q.CreateEvent(ctx, CreateEventParams{
			Level:     model.EventLevelInfo,
			Category:  model.EventCategorySystem,
			Message:   "startup",
			Metadata:  "{}",
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}); err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}

	count, err := q.CountEvents(ctx)
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	deleted, err := q.DeleteOldEvents(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("DeleteOldEvents: %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/joostry/joostry/internal/auth"
	"github.com/joostry/joostry/internal/model"
)

// Default admin credentials
const (
	DefaultAdminEmail    = "admin@joostry.example"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// Seed creates the initial admin user. Storefront settings are not seeded:
// resolvers synthesize defaults for absent singletons, so a fresh database
// renders the default Arabic storefront without any settings rows.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	// Check if admin user already exists
	_, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		Name:         DefaultAdminName,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"email", user.Email,
		"password", DefaultAdminPassword,
	)

	return nil
}

// SeedDemo fills an empty database with demo storefront content: a couple of
// juice categories, featured products, approved reviews and hero slides.
// It is a no-op when any product already exists.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	count, err := queries.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("counting products: %w", err)
	}
	if count > 0 {
		slog.Info("products already exist, skipping demo seed")
		return nil
	}

	citrusID, err := queries.CreateCategory(ctx, CreateCategoryParams{
		Name:        "عصائر حمضيات",
		Slug:        "citrus-juices",
		Description: "عصائر طازجة من البرتقال والليمون والجريب فروت",
		IsActive:    true,
	})
	if err != nil {
		return fmt.Errorf("seeding categories: %w", err)
	}
	tropicalID, err := queries.CreateCategory(ctx, CreateCategoryParams{
		Name:        "عصائر استوائية",
		Slug:        "tropical-juices",
		Description: "مانجو وأناناس وفواكه استوائية مشكلة",
		IsActive:    true,
	})
	if err != nil {
		return fmt.Errorf("seeding categories: %w", err)
	}

	products := []CreateProductParams{
		{Name: "عصير برتقال طازج", Slug: "fresh-orange", Description: "برتقال معصور يومياً", Price: 12, CategoryID: citrusID, IsActive: true, IsFeatured: true},
		{Name: "عصير ليمون بالنعناع", Slug: "lemon-mint", Description: "ليمون منعش مع أوراق النعناع", Price: 10, CategoryID: citrusID, IsActive: true, IsFeatured: true},
		{Name: "عصير مانجو", Slug: "mango", Description: "مانجو ناضجة كثيفة القوام", Price: 15, CategoryID: tropicalID, IsActive: true, IsFeatured: true},
		{Name: "كوكتيل استوائي", Slug: "tropical-mix", Description: "مزيج الأناناس والمانجو وجوز الهند", Price: 18, CategoryID: tropicalID, IsActive: true},
	}
	for _, p := range products {
		if _, err := queries.CreateProduct(ctx, p); err != nil {
			return fmt.Errorf("seeding products: %w", err)
		}
	}

	reviews := []CreateReviewParams{
		{CustomerName: "سارة", ReviewText: "أفضل عصير برتقال جربته، طازج فعلاً", Rating: 5, IsVisible: true, DisplayOrder: 1, Status: model.ReviewStatusApproved},
		{CustomerName: "خالد", ReviewText: "التوصيل سريع والعصير ممتاز", Rating: 4, IsVisible: true, DisplayOrder: 2, Status: model.ReviewStatusApproved},
	}
	for _, r := range reviews {
		if _, err := queries.CreateReview(ctx, r); err != nil {
			return fmt.Errorf("seeding reviews: %w", err)
		}
	}

	menu := []CreateMenuItemParams{
		{Label: "الرئيسية", LabelEn: "Home", URL: "/", IsVisible: true, Position: 1},
		{Label: "المنتجات", LabelEn: "Products", URL: "/products", IsVisible: true, Position: 2},
		{Label: "من نحن", LabelEn: "About", URL: "/about", IsVisible: true, Position: 3},
		{Label: "اتصل بنا", LabelEn: "Contact", URL: "/contact", IsVisible: true, Position: 4},
	}
	for _, m := range menu {
		if _, err := queries.CreateMenuItem(ctx, m); err != nil {
			return fmt.Errorf("seeding menu: %w", err)
		}
	}

	slog.Info("seeded demo storefront content")
	return nil
}

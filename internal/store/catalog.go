// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/joostry/joostry/internal/model"
)

const productColumns = `id, name, slug, description, price, image_url, category_id,
	is_active, is_featured, created_at, updated_at`

func scanProduct(s scanner) (model.Product, error) {
	var p model.Product
	err := s.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.ImageURL, &p.CategoryID,
		&p.IsActive, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// GetProductByID fetches a single product.
func (q *Queries) GetProductByID(ctx context.Context, id int64) (model.Product, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	return scanProduct(row)
}

// GetProductBySlug fetches a single product by its URL slug.
func (q *Queries) GetProductBySlug(ctx context.Context, slug string) (model.Product, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE slug = ?`, slug)
	return scanProduct(row)
}

// ListProducts returns every product newest-first, for the admin table.
func (q *Queries) ListProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanProduct)
}

// ListActiveProducts returns active products newest-first, optionally capped.
// limit <= 0 means no cap.
func (q *Queries) ListActiveProducts(ctx context.Context, limit int64) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active = 1 ORDER BY created_at DESC, id DESC`
	if limit > 0 {
		rows, err := q.db.QueryContext(ctx, query+` LIMIT ?`, limit)
		if err != nil {
			return nil, err
		}
		return collectRows(rows, scanProduct)
	}
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanProduct)
}

// ListFeaturedProducts returns products that are both active and featured,
// newest-first, capped at limit.
func (q *Queries) ListFeaturedProducts(ctx context.Context, limit int64) ([]model.Product, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE is_active = 1 AND is_featured = 1
		 ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanProduct)
}

// ListProductsByCategory returns active products of one category newest-first.
func (q *Queries) ListProductsByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE is_active = 1 AND category_id = ?
		 ORDER BY created_at DESC, id DESC`, categoryID)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanProduct)
}

// CreateProductParams holds fields for CreateProduct.
type CreateProductParams struct {
	Name        string
	Slug        string
	Description string
	Price       float64
	ImageURL    string
	CategoryID  int64 // 0 means uncategorized
	IsActive    bool
	IsFeatured  bool
}

// CreateProduct inserts a product and returns its ID.
func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (int64, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO products (name, slug, description, price, image_url, category_id, is_active, is_featured, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, NULLIF(?, 0), ?, ?, ?, ?)`,
		arg.Name, arg.Slug, arg.Description, arg.Price, arg.ImageURL, arg.CategoryID,
		arg.IsActive, arg.IsFeatured, now, now,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateProductParams holds fields for UpdateProduct.
type UpdateProductParams struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	Price       float64
	ImageURL    string
	CategoryID  int64 // 0 means uncategorized
	IsActive    bool
	IsFeatured  bool
}

// UpdateProduct rewrites a product record.
func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE products SET name = ?, slug = ?, description = ?, price = ?, image_url = ?,
		 category_id = NULLIF(?, 0), is_active = ?, is_featured = ?, updated_at = ?
		 WHERE id = ?`,
		arg.Name, arg.Slug, arg.Description, arg.Price, arg.ImageURL, arg.CategoryID,
		arg.IsActive, arg.IsFeatured, time.Now(), arg.ID,
	)
	return err
}

// SetProductActive toggles a product's storefront visibility.
func (q *Queries) SetProductActive(ctx context.Context, id int64, active bool) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE products SET is_active = ?, updated_at = ? WHERE id = ?`, active, time.Now(), id)
	return err
}

// SetProductFeatured toggles a product's featured flag.
func (q *Queries) SetProductFeatured(ctx context.Context, id int64, featured bool) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE products SET is_featured = ?, updated_at = ? WHERE id = ?`, featured, time.Now(), id)
	return err
}

// DeleteProduct removes a product.
func (q *Queries) DeleteProduct(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	return err
}

// CountProducts returns the total number of products.
func (q *Queries) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

const categoryColumns = `id, name, slug, description, image_url, is_active, created_at, updated_at`

func scanCategory(s scanner) (model.Category, error) {
	var c model.Category
	err := s.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.ImageURL, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// GetCategoryByID fetches a single category.
func (q *Queries) GetCategoryByID(ctx context.Context, id int64) (model.Category, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)
	return scanCategory(row)
}

// GetCategoryBySlug fetches a single category by its URL slug.
func (q *Queries) GetCategoryBySlug(ctx context.Context, slug string) (model.Category, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = ?`, slug)
	return scanCategory(row)
}

// ListCategories returns every category ordered by name, for the admin table.
func (q *Queries) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanCategory)
}

// ListActiveCategories returns active categories ordered by name.
func (q *Queries) ListActiveCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE is_active = 1 ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanCategory)
}

// CreateCategoryParams holds fields for CreateCategory.
type CreateCategoryParams struct {
	Name        string
	Slug        string
	Description string
	ImageURL    string
	IsActive    bool
}

// CreateCategory inserts a category and returns its ID.
func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (int64, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO categories (name, slug, description, image_url, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.Name, arg.Slug, arg.Description, arg.ImageURL, arg.IsActive, now, now,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateCategory rewrites a category record.
func (q *Queries) UpdateCategory(ctx context.Context, c model.Category) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, slug = ?, description = ?, image_url = ?, is_active = ?, updated_at = ?
		 WHERE id = ?`,
		c.Name, c.Slug, c.Description, c.ImageURL, c.IsActive, time.Now(), c.ID,
	)
	return err
}

// SetCategoryActive toggles a category's storefront visibility.
func (q *Queries) SetCategoryActive(ctx context.Context, id int64, active bool) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE categories SET is_active = ?, updated_at = ? WHERE id = ?`, active, time.Now(), id)
	return err
}

// DeleteCategory removes a category. Products keep existing with a null
// category via the FK's ON DELETE SET NULL.
func (q *Queries) DeleteCategory(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	return err
}

// CountCategories returns the total number of categories.
func (q *Queries) CountCategories(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n)
	return n, err
}

package store

import (
	"context"
	"time"

	"github.com/joostry/joostry/internal/model"
)

const pageColumns = `id, title, slug, body, is_published, published_at, created_at, updated_at`

func scanPage(s scanner) (model.Page, error) {
	var p model.Page
	err := s.Scan(&p.ID, &p.Title, &p.Slug, &p.Body, &p.IsPublished,
		&p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// GetPageByID fetches a single page.
func (q *Queries) GetPageByID(ctx context.Context, id int64) (model.Page, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM pages WHERE id = ?`, id)
	return scanPage(row)
}

// GetPublishedPageBySlug fetches a published page for public rendering.
func (q *Queries) GetPublishedPageBySlug(ctx context.Context, slug string) (model.Page, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE slug = ? AND is_published = 1`, slug)
	return scanPage(row)
}

// ListPages returns every page for the admin list, newest-first.
func (q *Queries) ListPages(ctx context.Context) ([]model.Page, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+pageColumns+` FROM pages ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanPage)
}

// ListPublishedPages returns published pages newest-first by publish date.
func (q *Queries) ListPublishedPages(ctx context.Context) ([]model.Page, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE is_published = 1
		 ORDER BY published_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanPage)
}

// CreatePageParams holds fields for CreatePage.
type CreatePageParams struct {
	Title       string
	Slug        string
	Body        string
	IsPublished bool
}

// CreatePage inserts a page and returns its ID. Publishing stamps
// published_at with the insert time.
func (q *Queries) CreatePage(ctx context.Context, arg CreatePageParams) (int64, error) {
	now := time.Now()
	var publishedAt any
	if arg.IsPublished {
		publishedAt = now
	}
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO pages (title, slug, body, is_published, published_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.Title, arg.Slug, arg.Body, arg.IsPublished, publishedAt, now, now,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdatePage rewrites a page record. Transitioning to published stamps
// published_at once; republishing keeps the original date.
func (q *Queries) UpdatePage(ctx context.Context, p model.Page) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE pages SET title = ?, slug = ?, body = ?, is_published = ?,
		 published_at = CASE WHEN ? AND published_at IS NULL THEN ? ELSE published_at END,
		 updated_at = ?
		 WHERE id = ?`,
		p.Title, p.Slug, p.Body, p.IsPublished, p.IsPublished, time.Now(), time.Now(), p.ID,
	)
	return err
}

// DeletePage removes a page.
func (q *Queries) DeletePage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM pages WHERE id = ?`, id)
	return err
}

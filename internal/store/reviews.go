package store

import (
	"context"
	"time"

	"github.com/joostry/joostry/internal/model"
)

const reviewColumns = `id, customer_name, review_text, rating, image_url,
	is_visible, display_order, status, created_at, updated_at`

func scanReview(s scanner) (model.CustomerReview, error) {
	var r model.CustomerReview
	err := s.Scan(&r.ID, &r.CustomerName, &r.ReviewText, &r.Rating, &r.ImageURL,
		&r.IsVisible, &r.DisplayOrder, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

// GetReviewByID fetches a single review.
func (q *Queries) GetReviewByID(ctx context.Context, id int64) (model.CustomerReview, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+reviewColumns+` FROM customer_reviews WHERE id = ?`, id)
	return scanReview(row)
}

// ListReviews returns every review for the admin moderation queue,
// pending first, then newest-first within each status.
func (q *Queries) ListReviews(ctx context.Context) ([]model.CustomerReview, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+reviewColumns+` FROM customer_reviews
		 ORDER BY CASE status WHEN 'pending' THEN 0 ELSE 1 END, created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanReview)
}

// ListVisibleReviews returns reviews eligible for the storefront: approved
// and visible, ordered by display order ascending, capped at limit.
// limit <= 0 means no cap.
func (q *Queries) ListVisibleReviews(ctx context.Context, limit int64) ([]model.CustomerReview, error) {
	query := `SELECT ` + reviewColumns + ` FROM customer_reviews
		 WHERE is_visible = 1 AND status = 'approved'
		 ORDER BY display_order ASC, id ASC`
	if limit > 0 {
		rows, err := q.db.QueryContext(ctx, query+` LIMIT ?`, limit)
		if err != nil {
			return nil, err
		}
		return collectRows(rows, scanReview)
	}
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanReview)
}

// CreateReviewParams holds fields for CreateReview.
type CreateReviewParams struct {
	CustomerName string
	ReviewText   string
	Rating       int64
	ImageURL     string
	IsVisible    bool
	DisplayOrder int64
	Status       string
}

// CreateReview inserts a review and returns its ID.
func (q *Queries) CreateReview(ctx context.Context, arg CreateReviewParams) (int64, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO customer_reviews (customer_name, review_text, rating, image_url, is_visible, display_order, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.CustomerName, arg.ReviewText, arg.Rating, arg.ImageURL,
		arg.IsVisible, arg.DisplayOrder, arg.Status, now, now,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateReview rewrites a review's content fields.
func (q *Queries) UpdateReview(ctx context.Context, r model.CustomerReview) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE customer_reviews SET customer_name = ?, review_text = ?, rating = ?, image_url = ?,
		 is_visible = ?, display_order = ?, updated_at = ?
		 WHERE id = ?`,
		r.CustomerName, r.ReviewText, r.Rating, r.ImageURL,
		r.IsVisible, r.DisplayOrder, time.Now(), r.ID,
	)
	return err
}

// SetReviewStatus moves a review through moderation.
func (q *Queries) SetReviewStatus(ctx context.Context, id int64, status string) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE customer_reviews SET status = ?, updated_at = ? WHERE id = ?`, status, time.Now(), id)
	return err
}

// SetReviewVisible toggles a review's storefront visibility.
func (q *Queries) SetReviewVisible(ctx context.Context, id int64, visible bool) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE customer_reviews SET is_visible = ?, updated_at = ? WHERE id = ?`, visible, time.Now(), id)
	return err
}

// DeleteReview removes a review.
func (q *Queries) DeleteReview(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM customer_reviews WHERE id = ?`, id)
	return err
}

// CountPendingReviews returns the moderation queue size.
func (q *Queries) CountPendingReviews(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM customer_reviews WHERE status = 'pending'`).Scan(&n)
	return n, err
}

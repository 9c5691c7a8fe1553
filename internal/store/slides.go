package store

import (
	"context"
	"time"

	"github.com/joostry/joostry/internal/model"
)

const sliderImageColumns = `id, image_url, title, subtitle, link_url, is_active, display_order, created_at, updated_at`

func scanSliderImage(s scanner) (model.SliderImage, error) {
	var si model.SliderImage
	err := s.Scan(&si.ID, &si.ImageURL, &si.Title, &si.Subtitle, &si.LinkURL,
		&si.IsActive, &si.DisplayOrder, &si.CreatedAt, &si.UpdatedAt)
	return si, err
}

// GetSliderImageByID fetches a single slider banner.
func (q *Queries) GetSliderImageByID(ctx context.Context, id int64) (model.SliderImage, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+sliderImageColumns+` FROM slider_images WHERE id = ?`, id)
	return scanSliderImage(row)
}

// ListSliderImages returns every slider banner ordered by display order.
func (q *Queries) ListSliderImages(ctx context.Context) ([]model.SliderImage, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+sliderImageColumns+` FROM slider_images ORDER BY display_order ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanSliderImage)
}

// ListActiveSliderImages returns active slider banners ordered by display order.
func (q *Queries) ListActiveSliderImages(ctx context.Context) ([]model.SliderImage, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+sliderImageColumns+` FROM slider_images WHERE is_active = 1 ORDER BY display_order ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanSliderImage)
}

// CreateSliderImageParams holds fields for CreateSliderImage.
type CreateSliderImageParams struct {
	ImageURL     string
	Title        string
	Subtitle     string
	LinkURL      string
	IsActive     bool
	DisplayOrder int64
}

// CreateSliderImage inserts a slider banner and returns its ID.
func (q *Queries) CreateSliderImage(ctx context.Context, arg CreateSliderImageParams) (int64, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO slider_images (image_url, title, subtitle, link_url, is_active, display_order, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.ImageURL, arg.Title, arg.Subtitle, arg.LinkURL, arg.IsActive, arg.DisplayOrder, now, now,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateSliderImage rewrites a slider banner.
func (q *Queries) UpdateSliderImage(ctx context.Context, si model.SliderImage) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE slider_images SET image_url = ?, title = ?, subtitle = ?, link_url = ?,
		 is_active = ?, display_order = ?, updated_at = ?
		 WHERE id = ?`,
		si.ImageURL, si.Title, si.Subtitle, si.LinkURL, si.IsActive, si.DisplayOrder, time.Now(), si.ID,
	)
	return err
}

// SetSliderImageActive toggles a slider banner.
func (q *Queries) SetSliderImageActive(ctx context.Context, id int64, active bool) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE slider_images SET is_active = ?, updated_at = ? WHERE id = ?`, active, time.Now(), id)
	return err
}

// DeleteSliderImage removes a slider banner.
func (q *Queries) DeleteSliderImage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM slider_images WHERE id = ?`, id)
	return err
}

const slideshowImageColumns = `id, image_url, title, subtitle, overlay_text, link_url, is_active, display_order, created_at, updated_at`

func scanSlideshowImage(s scanner) (model.SlideshowImage, error) {
	var si model.SlideshowImage
	err := s.Scan(&si.ID, &si.ImageURL, &si.Title, &si.Subtitle, &si.OverlayText, &si.LinkURL,
		&si.IsActive, &si.DisplayOrder, &si.CreatedAt, &si.UpdatedAt)
	return si, err
}

// GetSlideshowImageByID fetches a single hero slide.
func (q *Queries) GetSlideshowImageByID(ctx context.Context, id int64) (model.SlideshowImage, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+slideshowImageColumns+` FROM slideshow_images WHERE id = ?`, id)
	return scanSlideshowImage(row)
}

// ListSlideshowImages returns every hero slide ordered by display order.
func (q *Queries) ListSlideshowImages(ctx context.Context) ([]model.SlideshowImage, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+slideshowImageColumns+` FROM slideshow_images ORDER BY display_order ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanSlideshowImage)
}

// ListActiveSlideshowImages returns active hero slides ordered by display order.
func (q *Queries) ListActiveSlideshowImages(ctx context.Context) ([]model.SlideshowImage, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+slideshowImageColumns+` FROM slideshow_images WHERE is_active = 1 ORDER BY display_order ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanSlideshowImage)
}

// CreateSlideshowImageParams holds fields for CreateSlideshowImage.
type CreateSlideshowImageParams struct {
	ImageURL     string
	Title        string
	Subtitle     string
	OverlayText  string
	LinkURL      string
	IsActive     bool
	DisplayOrder int64
}

// CreateSlideshowImage inserts a hero slide and returns its ID.
func (q *Queries) CreateSlideshowImage(ctx context.Context, arg CreateSlideshowImageParams) (int64, error) {
	now := time.Now()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO slideshow_images (image_url, title, subtitle, overlay_text, link_url, is_active, display_order, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.ImageURL, arg.Title, arg.Subtitle, arg.OverlayText, arg.LinkURL, arg.IsActive, arg.DisplayOrder, now, now,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateSlideshowImage rewrites a hero slide.
func (q *Queries) UpdateSlideshowImage(ctx context.Context, si model.SlideshowImage) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE slideshow_images SET image_url = ?, title = ?, subtitle = ?, overlay_text = ?, link_url = ?,
		 is_active = ?, display_order = ?, updated_at = ?
		 WHERE id = ?`,
		si.ImageURL, si.Title, si.Subtitle, si.OverlayText, si.LinkURL, si.IsActive, si.DisplayOrder, time.Now(), si.ID,
	)
	return err
}

// SetSlideshowImageActive toggles a hero slide.
func (q *Queries) SetSlideshowImageActive(ctx context.Context, id int64, active bool) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE slideshow_images SET is_active = ?, updated_at = ? WHERE id = ?`, active, time.Now(), id)
	return err
}

// DeleteSlideshowImage removes a hero slide.
func (q *Queries) DeleteSlideshowImage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM slideshow_images WHERE id = ?`, id)
	return err
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Review moderation statuses.
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// CustomerReview is a testimonial shown on the storefront. Public pages list
// only visible reviews ordered by DisplayOrder; the admin moderation queue
// additionally filters on Status.
type CustomerReview struct {
	ID           int64
	CustomerName string
	ReviewText   string
	Rating       int64 // 1-5
	ImageURL     string
	IsVisible    bool
	DisplayOrder int64
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsApproved reports whether the review passed moderation.
func (r CustomerReview) IsApproved() bool {
	return r.Status == ReviewStatusApproved
}

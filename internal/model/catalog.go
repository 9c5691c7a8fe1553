// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Product is a catalog item. Publicly listed only when IsActive; featured
// homepage lists additionally require IsFeatured.
type Product struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	Price       float64
	ImageURL    string
	CategoryID  sql.NullInt64
	IsActive    bool
	IsFeatured  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Category groups products. Inactive categories are hidden from the menu
// page together with their products.
type Category struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	ImageURL    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// SliderImage is a promotional banner in the homepage slider strip.
type SliderImage struct {
	ID           int64
	ImageURL     string
	Title        string
	Subtitle     string
	LinkURL      string
	IsActive     bool
	DisplayOrder int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SlideshowImage is a full-width slide in the hero slideshow. Behaviour
// (autoplay, interval, nav) comes from the SlideshowSettings singleton.
type SlideshowImage struct {
	ID           int64
	ImageURL     string
	Title        string
	Subtitle     string
	OverlayText  string
	LinkURL      string
	IsActive     bool
	DisplayOrder int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

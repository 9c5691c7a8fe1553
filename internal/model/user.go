// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the
// application: catalog entities, settings singletons, reviews, slides,
// users, and event log entries.
package model

import (
	"database/sql"
	"time"
)

// RoleAdmin marks users allowed into the dashboard.
const RoleAdmin = "admin"

// User is a dashboard account. Storefront visitors have no accounts;
// every row in the users table belongs to a store operator.
type User struct {
	ID           int64        `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // kept out of JSON
	Role         string       `json:"role"`
	Name         string       `json:"name"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	LastLoginAt  sql.NullTime `json:"last_login_at,omitempty"`
}

// IsAdmin reports whether the user may access the dashboard.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"database/sql"
	"strconv"
)

// NullID wraps a row ID in sql.NullInt64. IDs start at 1, so zero and
// negative values become NULL rather than a dangling reference.
func NullID(id int64) sql.NullInt64 {
	if id > 0 {
		return sql.NullInt64{Int64: id, Valid: true}
	}
	return sql.NullInt64{}
}

// ParseNullID parses a form or query value into sql.NullInt64 with the
// same zero-means-NULL rule as NullID. Malformed input becomes NULL.
func ParseNullID(s string) sql.NullInt64 {
	if s == "" {
		return sql.NullInt64{}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return sql.NullInt64{}
	}
	return NullID(id)
}

// NullString wraps a string in sql.NullString, treating the empty
// string as NULL.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

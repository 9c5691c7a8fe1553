// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joostry/joostry/internal/testutil"
)

func TestHealthWithDatabase(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	h := NewHealthHandler(db)
	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var status healthStatus
	if err := json.Unmarshal(rr.Body.Bytes(), &status); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if status.Status != "healthy" {
		t.Errorf("Status = %q, want %q", status.Status, "healthy")
	}
	if status.Database != "healthy" {
		t.Errorf("Database = %q, want %q", status.Database, "healthy")
	}
}

func TestHealthWithoutDatabase(t *testing.T) {
	h := NewHealthHandler(nil)
	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var status healthStatus
	if err := json.Unmarshal(rr.Body.Bytes(), &status); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if status.Database != "unconfigured" {
		t.Errorf("Database = %q, want %q", status.Database, "unconfigured")
	}
}

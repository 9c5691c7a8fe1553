// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic above the store layer, currently
// the audit event log.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/joostry/joostry/internal/model"
	"github.com/joostry/joostry/internal/store"
)

// EventService provides event logging functionality.
type EventService struct {
	queries *store.Queries
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{
		queries: store.New(db),
	}
}

// LogEvent creates a new event log entry. userID 0 means no acting user.
func (s *EventService) LogEvent(ctx context.Context, level, category, message string, userID int64, metadata map[string]any) error {
	metadataJSON := "{}"
	if metadata != nil {
		jsonBytes, err := json.Marshal(metadata)
		if err == nil {
			metadataJSON = string(jsonBytes)
		}
	}

	_, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     level,
		Category:  category,
		Message:   message,
		UserID:    userID,
		Metadata:  metadataJSON,
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("failed to log event", "category", category, "error", err)
		return err
	}

	return nil
}

// LogInfo logs an info-level event.
func (s *EventService) LogInfo(ctx context.Context, category, message string, userID int64, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelInfo, category, message, userID, metadata)
}

// LogWarning logs a warning-level event.
func (s *EventService) LogWarning(ctx context.Context, category, message string, userID int64, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelWarning, category, message, userID, metadata)
}

// LogError logs an error-level event.
func (s *EventService) LogError(ctx context.Context, category, message string, userID int64, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelError, category, message, userID, metadata)
}

// LogAuthEvent logs an authentication-related event.
func (s *EventService) LogAuthEvent(ctx context.Context, level, message string, userID int64, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryAuth, message, userID, metadata)
}

// LogCatalogEvent logs a product or category change.
func (s *EventService) LogCatalogEvent(ctx context.Context, level, message string, userID int64, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryCatalog, message, userID, metadata)
}

// LogReviewEvent logs a review moderation action.
func (s *EventService) LogReviewEvent(ctx context.Context, level, message string, userID int64, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryReview, message, userID, metadata)
}

// LogSettingsEvent logs a settings change.
func (s *EventService) LogSettingsEvent(ctx context.Context, level, message string, userID int64, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategorySettings, message, userID, metadata)
}

// LogContactEvent logs a contact form submission or moderation action.
func (s *EventService) LogContactEvent(ctx context.Context, level, message string, userID int64, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryContact, message, userID, metadata)
}

// LogSystemEvent logs a system-related event.
func (s *EventService) LogSystemEvent(ctx context.Context, level, message string, userID int64, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategorySystem, message, userID, metadata)
}

// DeleteOldEvents removes events older than the specified duration and
// reports how many were purged.
func (s *EventService) DeleteOldEvents(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	return s.queries.DeleteOldEvents(ctx, cutoff)
}

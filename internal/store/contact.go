package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/joostry/joostry/internal/model"
)

const contactMessageColumns = `id, public_id, name, phone, email, message, is_read, created_at`

func scanContactMessage(s scanner) (model.ContactMessage, error) {
	var m model.ContactMessage
	err := s.Scan(&m.ID, &m.PublicID, &m.Name, &m.Phone, &m.Email, &m.Message, &m.IsRead, &m.CreatedAt)
	return m, err
}

// GetContactMessage fetches a message by its public identifier.
func (q *Queries) GetContactMessage(ctx context.Context, publicID string) (model.ContactMessage, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+contactMessageColumns+` FROM contact_messages WHERE public_id = ?`, publicID)
	return scanContactMessage(row)
}

// ListContactMessages returns messages newest-first.
func (q *Queries) ListContactMessages(ctx context.Context) ([]model.ContactMessage, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+contactMessageColumns+` FROM contact_messages ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return collectRows(rows, scanContactMessage)
}

// CreateContactMessageParams holds fields for CreateContactMessage.
type CreateContactMessageParams struct {
	Name    string
	Phone   string
	Email   string
	Message string
}

// CreateContactMessage inserts a message and returns its generated public ID.
func (q *Queries) CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (string, error) {
	publicID := uuid.NewString()
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO contact_messages (public_id, name, phone, email, message, is_read, created_at)
		 VALUES (?, ?, ?, ?, ?, 0, ?)`,
		publicID, arg.Name, arg.Phone, arg.Email, arg.Message, time.Now(),
	)
	if err != nil {
		return "", err
	}
	return publicID, nil
}

// MarkContactMessageRead flags a message as read.
func (q *Queries) MarkContactMessageRead(ctx context.Context, publicID string) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE contact_messages SET is_read = 1 WHERE public_id = ?`, publicID)
	return err
}

// DeleteContactMessage removes a message.
func (q *Queries) DeleteContactMessage(ctx context.Context, publicID string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE public_id = ?`, publicID)
	return err
}

// CountUnreadContactMessages returns how many messages await reading.
func (q *Queries) CountUnreadContactMessages(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contact_messages WHERE is_read = 0`).Scan(&n)
	return n, err
}

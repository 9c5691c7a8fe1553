package model

import "time"

// ContactMessage is a message submitted through the contact page form.
// PublicID is exposed in admin URLs instead of the numeric key.
type ContactMessage struct {
	ID        int64
	PublicID  string // uuid
	Name      string
	Phone     string
	Email     string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

package model

import (
	"database/sql"
	"time"
)

// Page is a markdown-bodied static page or blog post. The body is stored
// as markdown and rendered to sanitized HTML at request time.
type Page struct {
	ID          int64
	Title       string
	Slug        string
	Body        string
	IsPublished bool
	PublishedAt sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

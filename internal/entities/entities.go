// Package entities contains main entities of service.
package entities

import (
	"time"
)

// Post is an emoji-only status update. Posts are immutable after creation.
type Post struct {
	ID        string
	AuthorID  string
	Content   string
	CreatedAt time.Time
}

// Author is a client-safe view of a directory user record.
type Author struct {
	ID              string
	Username        string
	ProfileImageURL string
}

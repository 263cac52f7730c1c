// Package storage contains a storage interface.
package storage

import (
	"context"
	"fmt"

	"github.com/emotter/emotter/internal/entities"
)

//go:generate mockgen -destination=./mock/storage.go -package=mock -source=storage.go

// ErrNotFound ...
var ErrNotFound = fmt.Errorf("not found")

// Storage provides methods for interacting with database.
type Storage interface {
	ListPosts(ctx context.Context, limit uint16) ([]*entities.Post, error)
	ListAuthorPosts(ctx context.Context, authorID string, limit uint16) ([]*entities.Post, error)
	GetPost(ctx context.Context, id string) (*entities.Post, error)
	CreatePost(ctx context.Context, p *CreatePostParams) (*entities.Post, error)
}

// CreatePostParams ...
type CreatePostParams struct {
	AuthorID string
	Content  string
}

// Package service contains interface for service business-logic.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/emotter/emotter/internal/entities"
)

//go:generate mockgen -destination=./mock/service.go -package=mock -source=service.go

// ErrNotFound returned when the requested post does not exist.
var ErrNotFound = errors.New("not found")

// ErrTooManyRequests returned when the author exceeded the posting rate.
var ErrTooManyRequests = errors.New("too many requests")

// ErrAuthorNotFound returned when the directory cannot supply a usable
// author record for an existing post. It indicates a data inconsistency,
// not a client error.
var ErrAuthorNotFound = errors.New("author for post not found")

// ValidationError is a client-caused error addressable to a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PostWithAuthor is a post joined with its author's profile view.
type PostWithAuthor struct {
	Post   *entities.Post
	Author *entities.Author
}

// Service ...
type Service interface {
	ListPosts(ctx context.Context) ([]*PostWithAuthor, error)
	GetPost(ctx context.Context, id string) (*PostWithAuthor, error)
	ListAuthorPosts(ctx context.Context, authorID string) ([]*PostWithAuthor, error)
	CreatePost(ctx context.Context, authorID, content string) (*entities.Post, error)
}

// Package impl is implementation of service interface.
package impl

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/forPelevin/gomoji"

	"github.com/emotter/emotter/internal/directory"
	"github.com/emotter/emotter/internal/entities"
	"github.com/emotter/emotter/internal/ratelimit"
	"github.com/emotter/emotter/internal/service"
	"github.com/emotter/emotter/internal/storage"
)

const feedLimit = 100
const maxContentLength = 255

type srv struct {
	s storage.Storage
	d directory.Directory
	l ratelimit.Limiter
}

// New creates new instance of service.
func New(s storage.Storage, d directory.Directory, l ratelimit.Limiter) service.Service {
	return srv{
		s: s,
		d: d,
		l: l,
	}
}

func (s srv) ListPosts(ctx context.Context) ([]*service.PostWithAuthor, error) {
	posts, err := s.s.ListPosts(ctx, feedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return s.addAuthorData(ctx, posts, extractAuthorIDs(posts))
}

func (s srv) GetPost(ctx context.Context, id string) (*service.PostWithAuthor, error) {
	post, err := s.s.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, service.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	pp, err := s.addAuthorData(ctx, []*entities.Post{post}, []string{post.AuthorID})
	if err != nil {
		return nil, err
	}

	return pp[0], nil
}

func (s srv) ListAuthorPosts(ctx context.Context, authorID string) ([]*service.PostWithAuthor, error) {
	posts, err := s.s.ListAuthorPosts(ctx, authorID, feedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list author posts: %w", err)
	}

	// all posts of the feed share one author, a single id is enough
	return s.addAuthorData(ctx, posts, []string{authorID})
}

func (s srv) CreatePost(ctx context.Context, authorID, content string) (*entities.Post, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	allowed, err := s.l.Allow(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}

	if !allowed {
		return nil, service.ErrTooManyRequests
	}

	post, err := s.s.CreatePost(ctx, &storage.CreatePostParams{
		AuthorID: authorID,
		Content:  content,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// addAuthorData joins posts with their authors' profile views preserving the
// posts order. If any author can not be resolved the whole call fails, a post
// is never returned with a partial author.
func (s srv) addAuthorData(ctx context.Context, posts []*entities.Post, authorIDs []string) ([]*service.PostWithAuthor, error) {
	if len(posts) == 0 {
		return []*service.PostWithAuthor{}, nil
	}

	authors, err := s.d.GetAuthors(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get authors: %w", err)
	}

	m := make(map[string]*entities.Author, len(authors))
	for _, a := range authors {
		m[a.ID] = a
	}

	out := make([]*service.PostWithAuthor, len(posts))
	for i, p := range posts {
		a, ok := m[p.AuthorID]
		if !ok {
			return nil, fmt.Errorf("%w: post=%s author=%s", service.ErrAuthorNotFound, p.ID, p.AuthorID)
		}

		out[i] = &service.PostWithAuthor{
			Post:   p,
			Author: a,
		}
	}

	return out, nil
}

func validateContent(content string) error {
	if content == "" {
		return &service.ValidationError{Field: "content", Message: "forgetting something?"}
	}

	if utf8.RuneCountInString(content) > maxContentLength {
		return &service.ValidationError{Field: "content", Message: "wow boy that's just too long!"}
	}

	if gomoji.RemoveEmojis(content) != "" {
		return &service.ValidationError{Field: "content", Message: "only emojis are allowed"}
	}

	return nil
}

func extractAuthorIDs(pp []*entities.Post) []string {
	out := make([]string, 0, len(pp))
	m := make(map[string]struct{}, len(pp))

	for _, v := range pp {
		if _, ok := m[v.AuthorID]; !ok {
			out = append(out, v.AuthorID)
			m[v.AuthorID] = struct{}{}
		}
	}

	return out
}

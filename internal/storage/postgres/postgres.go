// Package postgres is implementation of storage interface.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/emotter/emotter/internal/entities"
	"github.com/emotter/emotter/internal/storage"
)

type pg struct {
	ext sqlx.ExtContext
}

type postDTO struct {
	ID        string    `db:"id"`
	AuthorID  string    `db:"author_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

// New creates new instance of pg.
func New(db *sql.DB) storage.Storage {
	return pg{
		ext: sqlx.NewDb(db, "postgres"),
	}
}

func (s pg) ListPosts(ctx context.Context, limit uint16) ([]*entities.Post, error) {
	var pp []*postDTO

	if err := sqlx.SelectContext(ctx, s.ext, &pp, `
			SELECT id, author_id, content, created_at
			FROM post
			ORDER BY created_at DESC
			LIMIT $1
		`,
		limit,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return toPosts(pp), nil
}

func (s pg) ListAuthorPosts(ctx context.Context, authorID string, limit uint16) ([]*entities.Post, error) {
	var pp []*postDTO

	if err := sqlx.SelectContext(ctx, s.ext, &pp, `
			SELECT id, author_id, content, created_at
			FROM post
			WHERE author_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		`,
		authorID, limit,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return toPosts(pp), nil
}

func (s pg) GetPost(ctx context.Context, id string) (*entities.Post, error) {
	var p postDTO

	if err := sqlx.GetContext(ctx, s.ext, &p, `
			SELECT id, author_id, content, created_at
			FROM post
			WHERE id = $1
		`,
		id,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return toPost(&p), nil
}

func (s pg) CreatePost(ctx context.Context, p *storage.CreatePostParams) (*entities.Post, error) {
	post := postDTO{
		ID:        uuid.NewString(),
		AuthorID:  p.AuthorID,
		Content:   p.Content,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := sqlx.NamedExecContext(ctx, s.ext,
		`
			INSERT INTO post(id, author_id, content, created_at)
			VALUES(:id, :author_id, :content, :created_at)
		`, post,
	); err != nil {
		return nil, fmt.Errorf("failed to exec: %w", err)
	}

	return toPost(&post), nil
}

func toPost(p *postDTO) *entities.Post {
	return &entities.Post{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
	}
}

func toPosts(pp []*postDTO) []*entities.Post {
	out := make([]*entities.Post, len(pp))
	for i, v := range pp {
		out[i] = toPost(v)
	}

	return out
}

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/sirupsen/logrus"

	"github.com/emotter/emotter/internal/service"
)

// Error ...
// swagger:model
type Error struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// Post ...
type Post struct {
	ID        string `json:"id"`
	AuthorID  string `json:"authorId"`
	Content   string `json:"content"`
	CreatedAt uint64 `json:"createdAt"`
}

// Author ...
type Author struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// PostWithAuthor ...
// swagger:model
type PostWithAuthor struct {
	Post   Post   `json:"post"`
	Author Author `json:"author"`
}

// CreatePostRequest ...
// swagger:model
type CreatePostRequest struct {
	Content string `json:"content"`
}

func writeOK(w http.ResponseWriter, status int, v interface{}) {
	data, _ := json.Marshal(v)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) // nolint
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeOK(w, status, Error{Error: message})
}

func writeValidationError(w http.ResponseWriter, field, message string) {
	writeOK(w, http.StatusBadRequest, Error{Error: message, Field: field})
}

func writeInternalErrorf(ctx context.Context, w http.ResponseWriter, format string, args ...interface{}) {
	logrus.WithField("request_id", middleware.GetReqID(ctx)).Error(fmt.Sprintf(format, args...))

	writeError(w, http.StatusInternalServerError, "internal error")
}

func toAPIPost(p *service.PostWithAuthor) PostWithAuthor {
	return PostWithAuthor{
		Post: Post{
			ID:        p.Post.ID,
			AuthorID:  p.Post.AuthorID,
			Content:   p.Post.Content,
			CreatedAt: uint64(p.Post.CreatedAt.Unix()),
		},
		Author: Author{
			ID:              p.Author.ID,
			Username:        p.Author.Username,
			ProfileImageURL: p.Author.ProfileImageURL,
		},
	}
}

func toAPIPosts(pp []*service.PostWithAuthor) []PostWithAuthor {
	out := make([]PostWithAuthor, len(pp))
	for i, v := range pp {
		out[i] = toAPIPost(v)
	}

	return out
}

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	mm "github.com/emotter/emotter/internal/middleware"
	"github.com/emotter/emotter/internal/service"
)

func (s server) listPosts(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /posts Posts ListPosts
	//
	// Return the 100 most recent posts with their authors.
	//
	// ---
	// produces:
	// - application/json
	// responses:
	//   '200':
	//     description: Posts
	//     schema:
	//       type: array
	//       items:
	//         "$ref": "#/definitions/PostWithAuthor"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	pp, err := s.s.ListPosts(r.Context())
	if err != nil {
		writeInternalErrorf(r.Context(), w, "failed to list posts: %s", err.Error())
		return
	}

	writeOK(w, http.StatusOK, toAPIPosts(pp))
}

func (s server) getPost(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /posts/{id} Posts GetPost
	//
	// Get post by id.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: Post
	//     schema:
	//       "$ref": "#/definitions/PostWithAuthor"
	//   '404':
	//     description: post not found
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	p, err := s.s.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeInternalErrorf(r.Context(), w, "failed to get post: %s", err.Error())
		return
	}

	writeOK(w, http.StatusOK, toAPIPost(p))
}

func (s server) listAuthorPosts(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /profiles/{userID}/posts Posts ListAuthorPosts
	//
	// Return posts of one author, most recent first.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: userID
	//   in: path
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: Posts
	//     schema:
	//       type: array
	//       items:
	//         "$ref": "#/definitions/PostWithAuthor"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	pp, err := s.s.ListAuthorPosts(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeInternalErrorf(r.Context(), w, "failed to list author posts: %s", err.Error())
		return
	}

	writeOK(w, http.StatusOK, toAPIPosts(pp))
}

func (s server) createPost(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /posts Posts CreatePost
	//
	// Create a post on behalf of the authenticated caller.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: body
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/CreatePostRequest"
	// responses:
	//   '201':
	//     description: created post
	//     schema:
	//       "$ref": "#/definitions/Post"
	//   '400':
	//     description: invalid content
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '401':
	//     description: caller identity is missing
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '429':
	//     description: posting rate exceeded
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	callerID, ok := mm.CallerID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "failed to decode json")
		return
	}

	post, err := s.s.CreatePost(r.Context(), callerID, req.Content)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			writeValidationError(w, ve.Field, ve.Message)
		case errors.Is(err, service.ErrTooManyRequests):
			writeError(w, http.StatusTooManyRequests, "too many requests")
		default:
			writeInternalErrorf(r.Context(), w, "failed to create post: %s", err.Error())
		}
		return
	}

	writeOK(w, http.StatusCreated, Post{
		ID:        post.ID,
		AuthorID:  post.AuthorID,
		Content:   post.Content,
		CreatedAt: uint64(post.CreatedAt.Unix()),
	})
}

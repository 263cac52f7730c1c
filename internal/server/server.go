// Package server Emotter
//
// The Emotter is a service which provides access to an emoji-only status feed.
//
//     Schemes: https
//     BasePath: /v1
//     Version: 1.0.0
//
//     Produces:
//     - application/json
//     Consumes:
//     - application/json
//
// swagger:meta
package server

import (
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"

	mm "github.com/emotter/emotter/internal/middleware"
	"github.com/emotter/emotter/internal/service"
)

// a max-length post is 255 emoji runes: up to ~1KB of raw utf-8, ~3KB when
// the client sends \u-escaped json, plus framing
const maxBodySize = 4096

type server struct {
	s service.Service
}

// SetupRouter setups handlers to chi router.
func SetupRouter(s service.Service, r chi.Router, timeout time.Duration, jwtSecret string) {
	r.Use(
		middleware.RealIP,
		middleware.RequestID,
		mm.Logger,
		middleware.StripSlashes,
		cors.AllowAll().Handler,
		middleware.Recoverer,
		middleware.Timeout(timeout),
		mm.BodyLimiter(maxBodySize),
		mm.Auth(jwtSecret),
	)

	srv := server{
		s: s,
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/posts", srv.listPosts)
		r.Post("/posts", srv.createPost)
		r.Get("/posts/{id}", srv.getPost)
		r.Get("/profiles/{userID}/posts", srv.listAuthorPosts)
	})
}

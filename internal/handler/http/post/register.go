package post

import (
	"log/slog"
	"net/http"

	"book-journal/internal/common/pagination"
	postUC "book-journal/internal/usecase/post"
)

// ListingOverrides adjusts the pagination settings of a named listing
// ("posts", "user_posts", "my_posts").
type ListingOverrides interface {
	Apply(name string, base pagination.Config) pagination.Config
}

// Register registers the /posts routes with the given mux. overrides may be nil.
// /posts/user/me is registered explicitly so it wins over /posts/user/{userId}.
func Register(mux *http.ServeMux, svc *postUC.Service, listing pagination.Config, overrides ListingOverrides, logger *slog.Logger) {
	list := func(scope Scope) ListHandler {
		cfg := listing
		if overrides != nil {
			cfg = overrides.Apply(scope.listing(), listing)
		}
		return ListHandler{Svc: svc, Listing: cfg, Scope: scope, Logger: logger}
	}

	mux.Handle("GET /posts", list(ScopePublic))
	mux.Handle("GET /posts/user/me", list(ScopeMe))
	mux.Handle("GET /posts/user/{userId}", list(ScopeUser))
	mux.Handle("GET /posts/book/{isbn}", BookPostsHandler{svc})
	mux.Handle("GET /posts/{id}", GetHandler{svc})

	mux.Handle("POST /posts", CreateHandler{svc})
	mux.Handle("PUT /posts/{id}", UpdateHandler{svc})
	mux.Handle("DELETE /posts/{id}", DeleteHandler{svc})
}

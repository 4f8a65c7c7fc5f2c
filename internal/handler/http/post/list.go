package post

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"book-journal/internal/common/pagination"
	"book-journal/internal/handler/http/pathutil"
	"book-journal/internal/handler/http/respond"
	"book-journal/internal/handler/http/viewer"
	"book-journal/internal/observability/logging"
	"book-journal/internal/repository"
	postUC "book-journal/internal/usecase/post"
)

// Scope selects whose posts a ListHandler pages through.
type Scope int

const (
	// ScopePublic lists public posts of every user.
	ScopePublic Scope = iota
	// ScopeUser lists the posts of the user named in the path.
	ScopeUser
	// ScopeMe lists the viewer's own posts, private ones included.
	ScopeMe
)

// listing is the metrics and log label of the scope.
func (s Scope) listing() string {
	switch s {
	case ScopeUser:
		return "user_posts"
	case ScopeMe:
		return "my_posts"
	default:
		return "posts"
	}
}

// ListHandler serves one cursor page of posts.
type ListHandler struct {
	Svc     *postUC.Service
	Listing pagination.Config
	Scope   Scope
	Logger  *slog.Logger
}

// ServeHTTP returns one cursor page of posts.
// @Summary      List posts (cursor pagination)
// @Description  Pages through posts. /posts lists public posts, /posts/user/me the caller's posts including private ones, and /posts/user/{userId} another reader's public posts.
// @Tags         posts
// @Security     UserID
// @Produce      json
// @Param        userId  path   string    false  "Author's user ID (only /posts/user/{userId})"
// @Param        cursor  query  string    false  "Opaque cursor from the previous page's nextCursor"
// @Param        order   query  []string  false  "Sort directives field_ASC or field_DESC, repeatable or comma separated" collectionFormat(multi)
// @Param        take    query  int       false  "Page size" minimum(1)
// @Success      200 {object} pagination.Response[DTO] "Cursor page of posts"
// @Failure      400 {string} string "Invalid cursor, order, take or user ID"
// @Failure      401 {string} string "Authentication required (/posts/user/me)"
// @Failure      429 {string} string "Too many requests - rate limit exceeded" headers(Retry-After=integer)
// @Failure      500 {string} string "Server error"
// @Failure      503 {string} string "Database unavailable"
// @Router       /posts [get]
// @Router       /posts/user/me [get]
// @Router       /posts/user/{userId} [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)
	if h.Logger != nil {
		logger = logging.WithRequestID(ctx, h.Logger)
	}
	logger = logging.WithTrace(ctx, logger)

	params, err := pagination.ParseQueryParams(r, h.Listing)
	obs := pagination.Observe(ctx, logger, h.Scope.listing(), params)
	if err != nil {
		obs.Failed(http.StatusBadRequest, err)
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	page, err := h.fetch(r, params)
	if err != nil {
		code := statusFor(err)
		obs.Failed(code, err)
		respond.SafeError(w, code, err)
		return
	}

	obs.Served(len(page.Posts), page.NextCursor != nil)
	respond.JSON(w, http.StatusOK, pagination.NewResponse(toDTOs(page.Posts), page.NextCursor, page.Count))
}

func (h ListHandler) fetch(r *http.Request, params pagination.Request) (*repository.PostPage, error) {
	ctx := r.Context()
	viewerID := viewer.FromContext(ctx)

	switch h.Scope {
	case ScopeUser:
		ownerID, err := pathutil.ParseUserID(r.PathValue("userId"))
		if err != nil {
			return nil, err
		}
		return h.Svc.ListByUser(ctx, ownerID, viewerID, params)
	case ScopeMe:
		if viewerID == uuid.Nil {
			return nil, postUC.ErrUnauthenticated
		}
		return h.Svc.ListByUser(ctx, viewerID, viewerID, params)
	default:
		return h.Svc.ListPublic(ctx, params)
	}
}

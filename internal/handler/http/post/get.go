package post

import (
	"net/http"

	"book-journal/internal/handler/http/pathutil"
	"book-journal/internal/handler/http/respond"
	"book-journal/internal/handler/http/viewer"
	postUC "book-journal/internal/usecase/post"
)

// GetHandler serves GET /posts/{id}. Private posts are returned to their owner only.
type GetHandler struct{ Svc *postUC.Service }

// @Summary      Get a post
// @Tags         posts
// @Security     UserID
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200 {object} DTO "Post with its book and author"
// @Failure      400 {string} string "Invalid post ID"
// @Failure      403 {string} string "Private post of another reader"
// @Failure      404 {string} string "Post not found"
// @Failure      500 {string} string "Server error"
// @Router       /posts/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	detail, err := h.Svc.Get(r.Context(), viewer.FromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(detail))
}

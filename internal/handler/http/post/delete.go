package post

import (
	"net/http"

	"book-journal/internal/handler/http/pathutil"
	"book-journal/internal/handler/http/respond"
	"book-journal/internal/handler/http/viewer"
	postUC "book-journal/internal/usecase/post"
)

// DeleteHandler serves DELETE /posts/{id}.
type DeleteHandler struct{ Svc *postUC.Service }

// @Summary      Delete a post
// @Tags         posts
// @Security     UserID
// @Param        id path int true "Post ID"
// @Success      204 "Deleted"
// @Failure      400 {string} string "Invalid post ID"
// @Failure      401 {string} string "Authentication required"
// @Failure      403 {string} string "Not the owner"
// @Failure      404 {string} string "Post not found"
// @Failure      500 {string} string "Server error"
// @Router       /posts/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), viewer.FromContext(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

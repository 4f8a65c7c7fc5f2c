package post

import (
	"net/http"

	"book-journal/internal/handler/http/pathutil"
	"book-journal/internal/handler/http/respond"
	"book-journal/internal/handler/http/viewer"
	postUC "book-journal/internal/usecase/post"
)

// UpdateHandler serves PUT /posts/{id}. Only the owner may update a post.
type UpdateHandler struct{ Svc *postUC.Service }

// @Summary      Update a post
// @Tags         posts
// @Security     UserID
// @Accept       json
// @Produce      json
// @Param        id   path int          true "Post ID"
// @Param        post body WriteRequest true "New post contents"
// @Success      200 {object} DTO "Updated post"
// @Failure      400 {string} string "Invalid ID, body or field"
// @Failure      401 {string} string "Authentication required"
// @Failure      403 {string} string "Not the owner"
// @Failure      404 {string} string "Post not found"
// @Failure      500 {string} string "Server error"
// @Router       /posts/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	req, err := decodeWriteRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	detail, err := h.Svc.Update(r.Context(), viewer.FromContext(r.Context()), id, req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(detail))
}

package post

import (
	"encoding/json"
	"fmt"
	"net/http"

	"book-journal/internal/handler/http/respond"
	"book-journal/internal/handler/http/viewer"
	postUC "book-journal/internal/usecase/post"
)

// CreateHandler serves POST /posts on behalf of the viewer.
type CreateHandler struct{ Svc *postUC.Service }

// @Summary      Create a post
// @Description  The book and its author are created on first use.
// @Tags         posts
// @Security     UserID
// @Accept       json
// @Produce      json
// @Param        post body WriteRequest true "Post to create"
// @Success      201 {object} DTO "Created post"
// @Failure      400 {string} string "Invalid body or field"
// @Failure      401 {string} string "Authentication required"
// @Failure      404 {string} string "User not found"
// @Failure      500 {string} string "Server error"
// @Router       /posts [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := decodeWriteRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	detail, err := h.Svc.Create(r.Context(), viewer.FromContext(r.Context()), req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(detail))
}

func decodeWriteRequest(r *http.Request) (WriteRequest, error) {
	var req WriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return req, nil
}

package post

import (
	"net/http"

	"book-journal/internal/handler/http/respond"
	postUC "book-journal/internal/usecase/post"
)

// BookPostsHandler serves GET /posts/book/{isbn}: the book, its author and
// its public posts.
type BookPostsHandler struct{ Svc *postUC.Service }

// @Summary      Get a book with its public posts
// @Tags         posts
// @Produce      json
// @Param        isbn path string true "ISBN-10 or ISBN-13"
// @Success      200 {object} BookPostsDTO "Book and its public posts"
// @Failure      404 {string} string "Book not found"
// @Failure      500 {string} string "Server error"
// @Router       /posts/book/{isbn} [get]
func (h BookPostsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result, err := h.Svc.ListByBook(r.Context(), r.PathValue("isbn"))
	if err != nil {
		writeError(w, err)
		return
	}

	out := BookPostsDTO{
		BookDTO: toBookDTO(result.Book, result.Author),
		Posts:   make([]DTO, 0, len(result.Posts)),
	}
	for i := range result.Posts {
		out.Posts = append(out.Posts, toDTO(&result.Posts[i]))
	}
	respond.JSON(w, http.StatusOK, out)
}

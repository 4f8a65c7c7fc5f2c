package book

import (
	"errors"
	"net/http"

	"github.com/sony/gobreaker"

	"book-journal/internal/handler/http/respond"
	bookUC "book-journal/internal/usecase/book"
)

// ListHandler serves GET /books.
type ListHandler struct{ Svc *bookUC.Service }

// @Summary      List books
// @Tags         books
// @Produce      json
// @Success      200 {array} DTO "Catalogued books, most recently added first"
// @Failure      500 {string} string "Server error"
// @Router       /books [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	books, err := h.Svc.List(r.Context())
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	out := make([]DTO, 0, len(books))
	for i := range books {
		out = append(out, toDTO(&books[i]))
	}
	respond.JSON(w, http.StatusOK, out)
}

// GetHandler serves GET /books/{isbn}.
type GetHandler struct{ Svc *bookUC.Service }

// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Param        isbn path string true "ISBN-10 or ISBN-13"
// @Success      200 {object} DTO "Book"
// @Failure      404 {string} string "Book not found"
// @Failure      500 {string} string "Server error"
// @Router       /books/{isbn} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, err := h.Svc.Get(r.Context(), r.PathValue("isbn"))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(b))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, bookUC.ErrBookNotFound):
		return http.StatusNotFound
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Register registers the /books routes with the given mux.
func Register(mux *http.ServeMux, svc *bookUC.Service) {
	mux.Handle("GET /books", ListHandler{svc})
	mux.Handle("GET /books/{isbn}", GetHandler{svc})
}

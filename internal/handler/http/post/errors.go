package post

import (
	"errors"
	"net/http"

	"github.com/sony/gobreaker"

	"book-journal/internal/common/pagination"
	"book-journal/internal/domain/entity"
	"book-journal/internal/handler/http/pathutil"
	"book-journal/internal/handler/http/respond"
	postUC "book-journal/internal/usecase/post"
)

var errInvalidBody = errors.New("invalid request body")

// statusFor maps use case errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, postUC.ErrPostNotFound),
		errors.Is(err, postUC.ErrUserNotFound),
		errors.Is(err, postUC.ErrBookNotFound):
		return http.StatusNotFound
	case errors.Is(err, postUC.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, postUC.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, postUC.ErrInvalidPostID),
		errors.Is(err, pathutil.ErrInvalidID),
		errors.Is(err, pathutil.ErrInvalidUserID),
		errors.Is(err, errInvalidBody),
		errors.Is(err, entity.ErrInvalid),
		pagination.IsClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, gobreaker.ErrOpenState),
		errors.Is(err, gobreaker.ErrTooManyRequests):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	respond.SafeError(w, statusFor(err), err)
}

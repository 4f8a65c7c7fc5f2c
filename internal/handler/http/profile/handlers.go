package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"

	"book-journal/internal/domain/entity"
	"book-journal/internal/handler/http/respond"
	"book-journal/internal/handler/http/viewer"
	profileUC "book-journal/internal/usecase/profile"
)

var errInvalidBody = errors.New("invalid request body")

// GetHandler serves GET /profiles/me.
type GetHandler struct{ Svc *profileUC.Service }

// ServeHTTP returns the caller's profile.
// @Summary      Get my profile
// @Tags         profiles
// @Security     UserID
// @Produce      json
// @Success      200 {object} DTO "Profile"
// @Failure      400 {string} string "Malformed X-User-ID"
// @Failure      401 {string} string "Authentication required"
// @Failure      404 {string} string "User or profile not found"
// @Failure      500 {string} string "Server error"
// @Router       /profiles/me [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, err := h.Svc.Get(r.Context(), viewer.FromContext(r.Context()))
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(p))
}

// UpdateHandler serves PATCH /profiles/me.
type UpdateHandler struct{ Svc *profileUC.Service }

// ServeHTTP merges the request body into the caller's profile.
// @Summary      Update my profile
// @Description  Sets nickname, avatarUrl and bio. Omitted fields keep their value.
// @Tags         profiles
// @Security     UserID
// @Accept       json
// @Produce      json
// @Param        profile body UpdateRequest true "Fields to change"
// @Success      200 {object} DTO "Updated profile"
// @Failure      400 {string} string "Invalid body or field"
// @Failure      401 {string} string "Authentication required"
// @Failure      404 {string} string "User or profile not found"
// @Failure      409 {string} string "Nickname already taken"
// @Failure      500 {string} string "Server error"
// @Router       /profiles/me [patch]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", errInvalidBody, err))
		return
	}

	p, err := h.Svc.Update(r.Context(), viewer.FromContext(r.Context()), req.patch())
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(p))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, profileUC.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, profileUC.ErrUserNotFound),
		errors.Is(err, profileUC.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, profileUC.ErrNicknameTaken):
		return http.StatusConflict
	case errors.Is(err, entity.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Register registers the /profiles routes with the given mux.
func Register(mux *http.ServeMux, svc *profileUC.Service) {
	mux.Handle("GET /profiles/me", GetHandler{svc})
	mux.Handle("PATCH /profiles/me", UpdateHandler{svc})
}

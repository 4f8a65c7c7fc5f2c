package pagination

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Request represents cursor pagination parameters from an HTTP request.
type Request struct {
	Cursor string   // Opaque continuation token from the previous page (optional)
	Order  []string // "<field>_<ASC|DESC>" directives, primary first
	Take   int      // Maximum rows to return
}

// ParseQueryParams parses pagination parameters from HTTP request query string.
// Missing parameters fall back to config defaults.
//
// Query parameters:
//   - cursor: Opaque cursor returned as nextCursor by the previous page
//   - order: Sort directive, repeatable (order=startDate_DESC&order=id_DESC) or comma separated
//   - take: Rows per page (must be between 1 and config.MaxTake)
//
// Returns an error if parameters are invalid.
func ParseQueryParams(r *http.Request, config Config) (Request, error) {
	q := r.URL.Query()
	req := Request{
		Cursor: strings.TrimSpace(q.Get("cursor")),
		Order:  append([]string(nil), config.DefaultOrder...),
		Take:   config.DefaultTake,
	}

	// Parse order parameter
	if raw, ok := q["order"]; ok {
		order := make([]string, 0, len(raw))
		for _, v := range raw {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					order = append(order, part)
				}
			}
		}
		if len(order) > 0 {
			req.Order = order
		}
	}

	// Parse take parameter
	if takeStr := q.Get("take"); takeStr != "" {
		take, err := strconv.Atoi(takeStr)
		if err != nil {
			return req, fmt.Errorf("invalid query parameter: %w: take must be an integer", ErrInvalidTake)
		}
		req.Take = take
	}

	if err := req.Validate(config); err != nil {
		return req, fmt.Errorf("invalid query parameter: %w", err)
	}
	return req, nil
}

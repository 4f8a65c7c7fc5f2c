// Package post provides the reading journal use cases: cursor-paginated
// listings, single post reads with visibility checks, and the transactional
// create, update and delete flows.
package post

import "errors"

// Sentinel errors for post use case operations.
var (
	// ErrPostNotFound indicates that the post does not exist or was deleted.
	ErrPostNotFound = errors.New("post not found")

	// ErrForbidden indicates that the caller may not read or change the post.
	// Private posts are readable and every post is writable only by its owner.
	ErrForbidden = errors.New("user is not owner")

	// ErrInvalidPostID indicates that the post ID is not a positive integer.
	ErrInvalidPostID = errors.New("invalid post ID")

	// ErrUserNotFound indicates that the writing user has no account.
	ErrUserNotFound = errors.New("user not found")

	// ErrBookNotFound indicates that no book has the requested ISBN.
	ErrBookNotFound = errors.New("book not found")

	// ErrUnauthenticated indicates that a write was attempted without a user.
	ErrUnauthenticated = errors.New("authentication required")
)

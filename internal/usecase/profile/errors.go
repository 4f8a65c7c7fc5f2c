// Package profile provides the use cases over a reader's own profile.
package profile

import "errors"

var (
	// ErrUnauthenticated indicates that the request carries no user.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrUserNotFound indicates that the caller has no account.
	ErrUserNotFound = errors.New("user not found")

	// ErrProfileNotFound indicates that the account has no profile yet.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrNicknameTaken indicates that another reader already uses the nickname.
	ErrNicknameTaken = errors.New("nickname already taken")
)

// Package book provides read use cases over the book catalogue.
package book

import "errors"

// ErrBookNotFound indicates that no catalogued book has the requested ISBN.
var ErrBookNotFound = errors.New("book not found")

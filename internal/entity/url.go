// Package entity defines the entities and errors used in the application.
// It includes the URL struct, which maps a short code to the long URL it
// stands in for, along with the error values shared between layers.
package entity

import "errors"

var (
	// ErrInvalidURL is returned when a long URL does not use the http or https scheme.
	ErrInvalidURL = errors.New("url must start with http:// or https://")
	// ErrURLNotFound is returned when a URL with the specified short code or long URL cannot be found.
	ErrURLNotFound = errors.New("url not found")
	// ErrURLExists is returned when saving a mapping whose short code or long URL is already taken.
	ErrURLExists = errors.New("url exists")
	// ErrStorage is returned when the persistence layer fails for a reason other than the ones above.
	ErrStorage = errors.New("storage error")
)

// URL represents a shortened URL.
type URL struct {
	ShortCode string // ShortCode is the generated code used to shorten the long URL.
	LongURL   string // LongURL is the full URL that the short code resolves to.
}

package catalog

import (
	"errors"
)

// ErrNotFound is returned when no book has the requested id.
var ErrNotFound = errors.New("book not found")

// ErrISBNConflict is returned when a create or update would leave two
// books sharing the same ISBN.
var ErrISBNConflict = errors.New("isbn already exists")

// Book represents a book entity.
type Book struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	PublicationYear int    `json:"publication_year"`
	Genre           string `json:"genre"`
	Available       bool   `json:"available"`
}

// Patch is a partial update to a book. Nil fields are left unchanged;
// the id is never part of a patch.
type Patch struct {
	Title           *string
	Author          *string
	ISBN            *string
	PublicationYear *int
	Genre           *string
	Available       *bool
}

// Filter defines optional filters for listing books. Genre matches
// case-insensitively; Available, when non-nil, matches exactly. Both
// combine with logical AND.
type Filter struct {
	Genre     string
	Available *bool
}

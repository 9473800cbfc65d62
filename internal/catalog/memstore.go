package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemStore is an in-memory Repository. State lives only for the
// lifetime of the process; a single mutex guards both the book map and
// the id counter so that concurrent requests cannot break ISBN
// uniqueness or id monotonicity.
type MemStore struct {
	mu     sync.Mutex
	books  map[int]Book
	nextID int
}

// NewMemStore creates an empty store. Ids start at 1 and are never
// reused, even after deletion.
func NewMemStore() *MemStore {
	return &MemStore{
		books:  make(map[int]Book),
		nextID: 1,
	}
}

// Seed inserts books without conflict checks, assigning ids in order.
// Intended for startup seeding and tests.
func (s *MemStore) Seed(books ...Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range books {
		b.ID = s.nextID
		s.books[b.ID] = b
		s.nextID++
	}
}

func (s *MemStore) List(ctx context.Context, f Filter) ([]Book, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, 0, len(s.books))
	for id := range s.books {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	result := make([]Book, 0, len(ids))
	for _, id := range ids {
		b := s.books[id]
		if f.Genre != "" && !strings.EqualFold(b.Genre, f.Genre) {
			continue
		}
		if f.Available != nil && b.Available != *f.Available {
			continue
		}
		result = append(result, b)
	}
	return result, len(result), nil
}

func (s *MemStore) Get(ctx context.Context, id int) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (s *MemStore) Create(ctx context.Context, b Book) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isbnTaken(b.ISBN, 0) {
		return Book{}, ErrISBNConflict
	}

	b.ID = s.nextID
	s.books[b.ID] = b
	s.nextID++
	return b, nil
}

func (s *MemStore) Update(ctx context.Context, id int, p Patch) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}

	// Validate before mutating so a conflicting patch leaves the
	// record untouched. Re-submitting the book's own ISBN is not a
	// conflict.
	if p.ISBN != nil && *p.ISBN != b.ISBN && s.isbnTaken(*p.ISBN, id) {
		return Book{}, ErrISBNConflict
	}

	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.ISBN != nil {
		b.ISBN = *p.ISBN
	}
	if p.PublicationYear != nil {
		b.PublicationYear = *p.PublicationYear
	}
	if p.Genre != nil {
		b.Genre = *p.Genre
	}
	if p.Available != nil {
		b.Available = *p.Available
	}

	s.books[id] = b
	return b, nil
}

func (s *MemStore) Delete(ctx context.Context, id int) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	delete(s.books, id)
	return b, nil
}

// isbnTaken reports whether another book already holds the ISBN.
// Callers must hold s.mu. excludeID is ignored during the scan; pass 0
// to scan every book.
func (s *MemStore) isbnTaken(isbn string, excludeID int) bool {
	for id, b := range s.books {
		if id == excludeID {
			continue
		}
		if b.ISBN == isbn {
			return true
		}
	}
	return false
}

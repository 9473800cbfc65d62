package catalog

import (
	"context"
)

// Service provides catalog business logic on top of a Repository.
type Service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns books matching the filter and the match count.
func (s *Service) List(ctx context.Context, f Filter) ([]Book, int, error) {
	return s.repo.List(ctx, f)
}

// Get returns the book with the given id.
func (s *Service) Get(ctx context.Context, id int) (Book, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new book, assigning its id.
func (s *Service) Create(ctx context.Context, b Book) (Book, error) {
	return s.repo.Create(ctx, b)
}

// Update merges the patch into the stored book.
func (s *Service) Update(ctx context.Context, id int, p Patch) (Book, error) {
	return s.repo.Update(ctx, id, p)
}

// Delete removes the book and returns its last state.
func (s *Service) Delete(ctx context.Context, id int) (Book, error) {
	return s.repo.Delete(ctx, id)
}

package catalog

import "context"

// Repository defines the contract for storing books.
type Repository interface {
	// List returns books matching the filter, ordered by ascending id,
	// along with the match count.
	List(ctx context.Context, f Filter) ([]Book, int, error)
	// Get returns the book with the given id.
	Get(ctx context.Context, id int) (Book, error)
	// Create stores a new book and returns it with its assigned id.
	Create(ctx context.Context, b Book) (Book, error)
	// Update merges the patch into the stored book and returns the result.
	Update(ctx context.Context, id int, p Patch) (Book, error)
	// Delete removes the book with the given id and returns its last state.
	Delete(ctx context.Context, id int) (Book, error)
}

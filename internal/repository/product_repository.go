package repository

import (
	"context"
	"errors"

	"github.com/VijayBuddhi/phase-zero-project/internal/domain"
)

var (
	ErrDuplicatePartNumber = errors.New("product with this part number already exists")
)

// ProductRepository defines the interface for product data access.
// Implementations must make Insert atomic with respect to concurrent
// inserts: a check-then-insert race must never admit two products sharing
// a part number.
type ProductRepository interface {
	// Insert assigns a fresh id to the product, records it and returns the
	// id. Returns ErrDuplicatePartNumber when a product with the same part
	// number already exists. Ids are monotonic positive integers starting
	// at 1 and are never reused.
	Insert(ctx context.Context, product *domain.Product) (int64, error)

	// List returns a snapshot of all products in insertion order. The
	// caller owns the returned slice and products; later inserts do not
	// affect it.
	List(ctx context.Context) ([]*domain.Product, error)

	// ExistsByPartNumber reports whether a product with the given part
	// number exists, consistent with Insert's uniqueness check.
	ExistsByPartNumber(ctx context.Context, partNumber string) (bool, error)
}

package repository

import (
	"context"
	"sync"

	"github.com/VijayBuddhi/phase-zero-project/internal/domain"
)

// memoryProductRepository keeps products in process memory. A single
// RWMutex serializes the duplicate-check-plus-insert region; the id
// counter is only advanced while the write lock is held.
type memoryProductRepository struct {
	mu       sync.RWMutex
	products []domain.Product
	byNumber map[string]int
	nextID   int64
}

// NewMemoryProductRepository creates an in-memory ProductRepository.
func NewMemoryProductRepository() ProductRepository {
	return &memoryProductRepository{
		byNumber: make(map[string]int),
		nextID:   1,
	}
}

// Insert records the product under a fresh id, rejecting duplicate part
// numbers while the write lock is held.
func (r *memoryProductRepository) Insert(ctx context.Context, product *domain.Product) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byNumber[product.PartNumber]; exists {
		return 0, ErrDuplicatePartNumber
	}

	stored := *product
	stored.ID = r.nextID
	r.nextID++

	r.byNumber[stored.PartNumber] = len(r.products)
	r.products = append(r.products, stored)

	return stored.ID, nil
}

// List returns an independent snapshot of all products in insertion order.
func (r *memoryProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*domain.Product, 0, len(r.products))
	for i := range r.products {
		p := r.products[i]
		products = append(products, &p)
	}

	return products, nil
}

// ExistsByPartNumber reports whether a product with the given part number
// has been inserted.
func (r *memoryProductRepository) ExistsByPartNumber(ctx context.Context, partNumber string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.byNumber[partNumber]
	return exists, nil
}

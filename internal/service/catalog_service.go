package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/VijayBuddhi/phase-zero-project/internal/domain"
	"github.com/VijayBuddhi/phase-zero-project/internal/repository"
)

var (
	ErrPartNumberRequired = errors.New("part number is required")
	ErrPartNameRequired   = errors.New("part name is required")
	ErrCategoryRequired   = errors.New("category is required")
	ErrNegativePrice      = errors.New("price cannot be negative")
	ErrNegativeStock      = errors.New("stock cannot be negative")
)

// IsValidationError reports whether err is one of the catalog validation
// errors, as opposed to a duplicate or a store failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrPartNumberRequired) ||
		errors.Is(err, ErrPartNameRequired) ||
		errors.Is(err, ErrCategoryRequired) ||
		errors.Is(err, ErrNegativePrice) ||
		errors.Is(err, ErrNegativeStock)
}

// CatalogService defines the interface for catalog business logic.
type CatalogService interface {
	AddProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetAllProducts(ctx context.Context) ([]*domain.Product, error)
	SearchByName(ctx context.Context, name string) ([]*domain.Product, error)
	FilterByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	SortByPrice(ctx context.Context) ([]*domain.Product, error)
	GetTotalInventoryValue(ctx context.Context) (float64, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

// AddProduct validates the submitted product, lowercases its part name and
// stores it. The repository's Insert is the authoritative uniqueness check;
// the Exists pre-check only gives a fast failure for the common case.
func (s *catalogService) AddProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsByPartNumber(ctx, product.PartNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing part number: %w", err)
	}
	if exists {
		return nil, repository.ErrDuplicatePartNumber
	}

	stored := *product
	stored.PartName = strings.ToLower(stored.PartName)

	id, err := s.productRepo.Insert(ctx, &stored)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicatePartNumber) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	stored.ID = id
	return &stored, nil
}

// GetAllProducts returns a snapshot of every product in the catalog.
func (s *catalogService) GetAllProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// SearchByName returns every product whose stored part name contains the
// query as a substring, compared case-insensitively. An empty query
// matches every product.
func (s *catalogService) SearchByName(ctx context.Context, name string) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	// Stored part names are already lowercase.
	query := strings.ToLower(name)

	matches := []*domain.Product{}
	for _, product := range products {
		if strings.Contains(product.PartName, query) {
			matches = append(matches, product)
		}
	}

	return matches, nil
}

// FilterByCategory returns every product whose category equals the given
// one under case-insensitive full-string comparison.
func (s *catalogService) FilterByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	matches := []*domain.Product{}
	for _, product := range products {
		if strings.EqualFold(product.Category, category) {
			matches = append(matches, product)
		}
	}

	return matches, nil
}

// SortByPrice returns all products ordered by price ascending. The sort is
// stable, so ties keep their store order, and runs on a snapshot without
// touching the store.
func (s *catalogService) SortByPrice(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Price < products[j].Price
	})

	return products, nil
}

// GetTotalInventoryValue computes the sum of price times stock over the
// whole catalog. An empty catalog yields 0.
func (s *catalogService) GetTotalInventoryValue(ctx context.Context) (float64, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list products: %w", err)
	}

	var total float64
	for _, product := range products {
		total += product.Price * float64(product.Stock)
	}

	return total, nil
}

func validateProduct(product *domain.Product) error {
	if strings.TrimSpace(product.PartNumber) == "" {
		return ErrPartNumberRequired
	}
	if strings.TrimSpace(product.PartName) == "" {
		return ErrPartNameRequired
	}
	if strings.TrimSpace(product.Category) == "" {
		return ErrCategoryRequired
	}
	if product.Price < 0 {
		return ErrNegativePrice
	}
	if product.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

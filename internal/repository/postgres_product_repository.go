package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/VijayBuddhi/phase-zero-project/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the SQLSTATE class for unique constraint violations.
const pgUniqueViolation = "23505"

type postgresProductRepository struct {
	db *sql.DB
}

// NewPostgresProductRepository creates a ProductRepository backed by a
// products table with a unique index on part_number. The index is the
// serialization point for concurrent inserts of the same part number.
func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

// Insert stores the product using a parameterized query and returns the
// database-assigned id.
func (r *postgresProductRepository) Insert(ctx context.Context, product *domain.Product) (int64, error) {
	query := `
		INSERT INTO products (part_number, part_name, category, price, stock)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(
		ctx,
		query,
		product.PartNumber,
		product.PartName,
		product.Category,
		product.Price,
		product.Stock,
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return 0, ErrDuplicatePartNumber
		}
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}

	return id, nil
}

// List retrieves all products ordered by id, which matches insertion order
// because ids are assigned from an ascending sequence.
func (r *postgresProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, part_number, part_name, category, price, stock
		FROM products
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.PartNumber,
			&product.PartName,
			&product.Category,
			&product.Price,
			&product.Stock,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// ExistsByPartNumber checks the unique part_number column.
func (r *postgresProductRepository) ExistsByPartNumber(ctx context.Context, partNumber string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM products WHERE part_number = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, partNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check part number: %w", err)
	}

	return exists, nil
}

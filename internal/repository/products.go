package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ilyakh/ShopKeeper/internal/models"
)

// ErrProductNotFound is returned when no product matches the given id.
var ErrProductNotFound = errors.New("product not found")

// PostgresProductRepository implements product persistence against PostgreSQL.
type PostgresProductRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresProductRepository creates a new PostgresProductRepository using
// the provided *sql.DB.
func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{DB: db}
}

// List fetches all products ordered by id.
func (s *PostgresProductRepository) List(ctx context.Context) ([]models.Product, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, name, price, description FROM products ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return products, nil
}

// GetByID fetches a single product. A missing row yields ErrProductNotFound.
func (s *PostgresProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, name, price, description FROM products WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Price, &p.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return &p, nil
}

// Create inserts a product and returns the stored record with its
// server-assigned id. Any id on the input is ignored.
func (s *PostgresProductRepository) Create(ctx context.Context, p models.Product) (*models.Product, error) {
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO products (name, price, description) VALUES ($1, $2, $3) RETURNING id
	`, p.Name, p.Price, p.Description).Scan(&p.ID)
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return &p, nil
}

// Update replaces the product identified by p.ID and returns the stored
// record. A missing row yields ErrProductNotFound.
func (s *PostgresProductRepository) Update(ctx context.Context, p models.Product) (*models.Product, error) {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE products SET name = $1, price = $2, description = $3 WHERE id = $4
	`, p.Name, p.Price, p.Description, p.ID)
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("Update rows: %w", err)
	}
	if rows == 0 {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

// Delete removes the product by id. A missing row yields ErrProductNotFound.
func (s *PostgresProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete rows: %w", err)
	}
	if rows == 0 {
		return ErrProductNotFound
	}
	return nil
}

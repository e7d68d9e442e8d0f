package service

import (
	"context"

	"github.com/ilyakh/ShopKeeper/internal/models"
)

// ProductRepository defines the persistence operations required by the
// product service.
type ProductRepository interface {
	// List fetches all products.
	List(ctx context.Context) ([]models.Product, error)
	// GetByID fetches a single product.
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	// Create inserts a product and returns the stored record.
	Create(ctx context.Context, p models.Product) (*models.Product, error)
	// Update replaces a product and returns the stored record.
	Update(ctx context.Context, p models.Product) (*models.Product, error)
	// Delete removes a product by id.
	Delete(ctx context.Context, id int64) error
}

// ProductService implements catalog operations by delegating to a
// ProductRepository.
type ProductService struct {
	// repo performs the data-layer operations.
	repo ProductRepository
}

// NewProductService constructs a ProductService using the provided repository.
func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// List returns the full catalog.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.repo.List(ctx)
}

// GetByID returns a single product.
func (s *ProductService) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new product.
func (s *ProductService) Create(ctx context.Context, p models.Product) (*models.Product, error) {
	return s.repo.Create(ctx, p)
}

// Update replaces an existing product.
func (s *ProductService) Update(ctx context.Context, p models.Product) (*models.Product, error) {
	return s.repo.Update(ctx, p)
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/market-api/internal/models"
)

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")

// ProductFilter carries list filtering, ordering and pagination. Order is
// one of "newest", "oldest", "priceLowest", "priceHighest".
type ProductFilter struct {
	Category string
	Order    string
	Offset   *int
	Limit    *int
}

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	GetAll(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Product, error)
	// GetByIDs fetches all products matching the given ids in a single read.
	// Ids with no matching product are silently absent from the result.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	Update(ctx context.Context, product models.Product) (models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

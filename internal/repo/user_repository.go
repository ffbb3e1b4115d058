package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/market-api/internal/models"
)

// ErrUserNotFound is returned when a user is not found in the repository.
var ErrUserNotFound = errors.New("user not found")

// UserFilter carries list pagination and ordering. Order is "newest" or
// "oldest"; anything else falls back to newest first.
type UserFilter struct {
	Order  string
	Offset *int
	Limit  *int
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	GetAll(ctx context.Context, filter UserFilter) ([]models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
	Update(ctx context.Context, user models.User) (models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SavedProducts(ctx context.Context, userID uuid.UUID) ([]models.Product, error)
	SaveProduct(ctx context.Context, userID, productID uuid.UUID) ([]models.Product, error)
}

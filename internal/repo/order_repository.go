package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/market-api/internal/models"
)

// ErrOrderNotFound is returned when an order is not found in the repository.
var ErrOrderNotFound = errors.New("order not found")

// ErrInsufficientStock is returned when an order would decrement a
// product's stock below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// OrderRepository defines the interface for order data operations.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	// GetByID returns the order together with its line items.
	GetByID(ctx context.Context, id uuid.UUID) (models.Order, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	// CreateWithItems persists the order with its line items and applies the
	// given stock decrements as one atomic transaction. Each decrement is
	// re-guarded against the current stock inside the transaction; a guard
	// failure rolls everything back with ErrInsufficientStock.
	CreateWithItems(ctx context.Context, order models.Order, decrements map[uuid.UUID]int) (models.Order, error)
	Update(ctx context.Context, order models.Order) (models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

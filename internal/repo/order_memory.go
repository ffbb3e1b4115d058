package repo

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/market-api/internal/models"
)

// InMemoryOrderRepository is an in-memory implementation of OrderRepository.
// It shares the product repository so stock decrements hit the same data the
// placement pre-check read.
type InMemoryOrderRepository struct {
	mu       sync.Mutex
	orders   []models.Order
	products *InMemoryProductRepository
}

// NewInMemoryOrderRepository creates a new instance of InMemoryOrderRepository.
func NewInMemoryOrderRepository(products *InMemoryProductRepository) *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders:   []models.Order{},
		products: products,
	}
}

func (r *InMemoryOrderRepository) GetAll(_ context.Context) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders := make([]models.Order, len(r.orders))
	for i, o := range r.orders {
		o.Items = nil
		orders[i] = o
	}
	return orders, nil
}

func (r *InMemoryOrderRepository) GetByID(_ context.Context, id uuid.UUID) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}

func (r *InMemoryOrderRepository) GetByUserID(_ context.Context, userID uuid.UUID) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var orders []models.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			o.Items = nil
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// CreateWithItems mirrors the Postgres transaction: every decrement is
// validated against current stock before any of them is applied, so a failing
// guard leaves both orders and stock untouched.
func (r *InMemoryOrderRepository) CreateWithItems(_ context.Context, o models.Order, decrements map[uuid.UUID]int) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products.mu.Lock()
	defer r.products.mu.Unlock()

	for productID, qty := range decrements {
		p, err := r.products.getByIDLocked(productID)
		if err != nil {
			return models.Order{}, err
		}
		if p.Stock < qty {
			return models.Order{}, ErrInsufficientStock
		}
	}

	for productID, qty := range decrements {
		if err := r.products.adjustStockLocked(productID, -qty); err != nil {
			return models.Order{}, err
		}
	}

	r.orders = append(r.orders, o)
	return o, nil
}

func (r *InMemoryOrderRepository) Update(_ context.Context, order models.Order) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, o := range r.orders {
		if o.ID == order.ID {
			o.UserID = order.UserID
			o.UpdatedAt = order.UpdatedAt
			r.orders[i] = o
			return o, nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}

func (r *InMemoryOrderRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, o := range r.orders {
		if o.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return ErrOrderNotFound
}

func (r *InMemoryOrderRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = []models.Order{}
}

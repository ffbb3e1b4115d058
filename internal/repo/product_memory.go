package repo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/market-api/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	mu       sync.Mutex
	products []models.Product
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{products: []models.Product{}}
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = append(r.products, product)
	return product, nil
}

// GetAll retrieves products matching the filter.
func (r *InMemoryProductRepository) GetAll(_ context.Context, filter ProductFilter) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var filtered []models.Product
	for _, p := range r.products {
		if filter.Category == "" || p.Category == filter.Category {
			filtered = append(filtered, p)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		switch filter.Order {
		case "priceLowest":
			return filtered[i].Price < filtered[j].Price
		case "priceHighest":
			return filtered[i].Price > filtered[j].Price
		case "oldest":
			return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
		default:
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		}
	})

	return paginate(filtered, filter.Offset, filter.Limit), nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(_ context.Context, id uuid.UUID) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getByIDLocked(id)
}

// GetByIDs retrieves the products whose ids are present in the repository.
func (r *InMemoryProductRepository) GetByIDs(_ context.Context, ids []uuid.UUID) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var products []models.Product
	for _, id := range ids {
		if p, err := r.getByIDLocked(id); err == nil {
			products = append(products, p)
		}
	}
	return products, nil
}

// Update modifies an existing product in the repository.
func (r *InMemoryProductRepository) Update(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == product.ID {
			r.products[i] = product
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = []models.Product{}
}

func (r *InMemoryProductRepository) getByIDLocked(id uuid.UUID) (models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// adjustStockLocked applies a guarded decrement. Caller must hold the lock.
func (r *InMemoryProductRepository) adjustStockLocked(id uuid.UUID, delta int) error {
	for i, p := range r.products {
		if p.ID == id {
			if p.Stock+delta < 0 {
				return ErrInsufficientStock
			}
			r.products[i].Stock += delta
			return nil
		}
	}
	return ErrProductNotFound
}

func paginate[T any](items []T, offset, limit *int) []T {
	start := 0
	if offset != nil {
		start = clamp(*offset, 0, len(items))
	}
	end := len(items)
	if limit != nil && *limit > 0 {
		end = clamp(start+*limit, start, len(items))
	}
	return items[start:end]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package order implements the order placement workflow: a stock-sufficiency
// check over the requested products followed by one atomic write that creates
// the order with its line items and decrements stock.
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/market-api/internal/models"
	"github.com/rogerio-castellano/market-api/internal/repo"
)

// LineItem is one requested (product, quantity, unit price) tuple. The unit
// price is trusted as supplied and stored as the order-time snapshot; it is
// not cross-checked against the product's current price.
type LineItem struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice float64
}

type PlacementService struct {
	users    repo.UserRepository
	products repo.ProductRepository
	orders   repo.OrderRepository
}

func NewPlacementService(users repo.UserRepository, products repo.ProductRepository, orders repo.OrderRepository) *PlacementService {
	return &PlacementService{users: users, products: products, orders: orders}
}

// Place validates the requested line items against current stock and, if all
// of them can be satisfied, persists the order and the stock decrements as
// one transaction. On any failure nothing is mutated.
//
// Requested quantities are summed per product, so a product referenced by
// several line items is checked and decremented once with the combined total.
// The insufficient-stock error deliberately names no product: the check is
// all-or-nothing across the whole order.
func (s *PlacementService) Place(ctx context.Context, userID uuid.UUID, items []LineItem) (models.Order, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return models.Order{}, err
	}

	requested := make(map[uuid.UUID]int, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, seen := requested[item.ProductID]; !seen {
			ids = append(ids, item.ProductID)
		}
		requested[item.ProductID] += item.Quantity
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to fetch products: %w", err)
	}

	fetched := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		fetched[p.ID] = p
	}
	for _, id := range ids {
		if _, ok := fetched[id]; !ok {
			return models.Order{}, fmt.Errorf("product %s: %w", id, repo.ErrProductNotFound)
		}
	}

	for id, qty := range requested {
		if fetched[id].Stock < qty {
			return models.Order{}, repo.ErrInsufficientStock
		}
	}

	now := time.Now().UTC()
	o := models.Order{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, item := range items {
		o.Items = append(o.Items, models.OrderItem{
			ID:        uuid.New(),
			OrderID:   o.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			CreatedAt: now,
		})
	}

	return s.orders.CreateWithItems(ctx, o, requested)
}

// Total computes the read-time order total: the sum of quantity times the
// unit price snapshot over the persisted line items. It is never stored.
func Total(items []models.OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}

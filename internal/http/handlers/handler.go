package handlers

import (
	"go.uber.org/zap"

	"github.com/rogerio-castellano/market-api/internal/order"
	"github.com/rogerio-castellano/market-api/internal/repo"
)

// Handler holds the request handlers' dependencies. Repositories are passed
// in explicitly so tests can swap the in-memory implementations.
type Handler struct {
	users     repo.UserRepository
	products  repo.ProductRepository
	orders    repo.OrderRepository
	placement *order.PlacementService
	log       *zap.SugaredLogger
}

func New(users repo.UserRepository, products repo.ProductRepository, orders repo.OrderRepository,
	placement *order.PlacementService, log *zap.SugaredLogger) *Handler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Handler{
		users:     users,
		products:  products,
		orders:    orders,
		placement: placement,
		log:       log,
	}
}

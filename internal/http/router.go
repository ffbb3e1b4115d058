package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/market-api/internal/http/handlers"
	rl "github.com/rogerio-castellano/market-api/internal/http/rate_limiter"
)

// NewRouter wires all routes. Middlewares are optional: a nil registry
// disables rate limiting and a nil logger disables request logging, which
// keeps test routers quiet.
func NewRouter(h *handlers.Handler, visitors *rl.Registry, log *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()

	if log != nil {
		r.Use(RequestLogger(log))
	}
	if visitors != nil {
		r.Use(RateLimit(visitors))
	}

	r.Get("/users", h.GetUsersHandler)
	r.Post("/users", h.CreateUserHandler)
	r.Get("/users/{id}", h.GetUserByIDHandler)
	r.Patch("/users/{id}", h.UpdateUserHandler)
	r.Delete("/users/{id}", h.DeleteUserHandler)
	r.Get("/users/{id}/orders", h.GetUserOrdersHandler)
	r.Get("/users/{id}/saved-products", h.GetSavedProductsHandler)
	r.Post("/users/{id}/saved-products", h.SaveProductHandler)

	r.Get("/products", h.GetProductsHandler)
	r.Post("/products", h.CreateProductHandler)
	r.Get("/products/{id}", h.GetProductByIDHandler)
	r.Patch("/products/{id}", h.UpdateProductHandler)
	r.Delete("/products/{id}", h.DeleteProductHandler)

	r.Get("/orders", h.GetOrdersHandler)
	r.Post("/orders", h.CreateOrderHandler)
	r.Get("/orders/{id}", h.GetOrderByIDHandler)
	r.Patch("/orders/{id}", h.UpdateOrderHandler)
	r.Delete("/orders/{id}", h.DeleteOrderHandler)

	r.Get("/swagger/*", httpSwagger.Handler())

	return r
}

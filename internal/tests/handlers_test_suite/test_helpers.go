package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/google/uuid"

	api "github.com/rogerio-castellano/market-api/internal/http"
	handler "github.com/rogerio-castellano/market-api/internal/http/handlers"
	"github.com/rogerio-castellano/market-api/internal/order"
	"github.com/rogerio-castellano/market-api/internal/repo"
)

var (
	userRepo    *repo.InMemoryUserRepository
	productRepo *repo.InMemoryProductRepository
	orderRepo   *repo.InMemoryOrderRepository
)

func init() {
	productRepo = repo.NewInMemoryProductRepository()
	userRepo = repo.NewInMemoryUserRepository(productRepo)
	orderRepo = repo.NewInMemoryOrderRepository(productRepo)
}

// newTestRouter builds a router over the shared in-memory repositories, with
// rate limiting and request logging disabled.
func newTestRouter() http.Handler {
	placement := order.NewPlacementService(userRepo, productRepo, orderRepo)
	h := handler.New(userRepo, productRepo, orderRepo, placement, nil)
	return api.NewRouter(h, nil, nil)
}

func clearAll() {
	orderRepo.Clear()
	userRepo.Clear()
	productRepo.Clear()
}

func createUser(r http.Handler, u handler.UserRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(u)
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(p)
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func placeOrder(r http.Handler, o handler.OrderRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(o)
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// mustCreateUser creates a user through the API and returns its id, panicking
// on failure so test setup errors surface immediately.
func mustCreateUser(r http.Handler, email string) uuid.UUID {
	w := createUser(r, handler.UserRequest{
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Address:   "1 Test Street",
	})
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("user setup failed with status %d: %s", w.Code, w.Body.String()))
	}
	var resp handler.UserResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		panic(fmt.Sprintf("user setup decoding failed: %v", err))
	}
	return resp.Id
}

// mustCreateProduct creates a product through the API and returns its id.
func mustCreateProduct(r http.Handler, name string, price float64, stock int) uuid.UUID {
	w := createProduct(r, handler.ProductRequest{
		Name:     name,
		Category: "ELECTRONICS",
		Price:    price,
		Stock:    stock,
	})
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("product setup failed with status %d: %s", w.Code, w.Body.String()))
	}
	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		panic(fmt.Sprintf("product setup decoding failed: %v", err))
	}
	return resp.Id
}

func getProduct(r http.Handler, id uuid.UUID) handler.ProductResponse {
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%s", id), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.ProductResponse
	json.NewDecoder(w.Body).Decode(&resp)
	return resp
}

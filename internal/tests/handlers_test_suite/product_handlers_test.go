package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	handler "github.com/rogerio-castellano/market-api/internal/http/handlers"
)

func TestCreateProductHandler_Valid(t *testing.T) {
	t.Cleanup(clearAll)
	r := newTestRouter()

	w := createProduct(r, handler.ProductRequest{
		Name:        "Laptop",
		Description: "15 inch",
		Category:    "ELECTRONICS",
		Price:       1500.0,
		Stock:       5,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if resp.Name != "Laptop" {
		t.Errorf("expected name 'Laptop', got %v", resp.Name)
	}
	if resp.Category != "ELECTRONICS" {
		t.Errorf("expected category 'ELECTRONICS', got %v", resp.Category)
	}
	if resp.Price != 1500.0 {
		t.Errorf("expected price 1500.0, got %v", resp.Price)
	}
	if resp.Stock != 5 {
		t.Errorf("expected stock 5, got %v", resp.Stock)
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAll)
	r := newTestRouter()

	tests := []struct {
		name           string
		payload        handler.ProductRequest
		expectCode     int
		expectedErrors []string
	}{
		{
			name:           "Empty name and price",
			payload:        handler.ProductRequest{Name: "", Category: "FASHION", Price: 0.0},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"Name", "Price"},
		},
		{
			name:           "Invalid category",
			payload:        handler.ProductRequest{Name: "Mug", Category: "CROCKERY", Price: 9.99},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"Category"},
		},
		{
			name:           "Negative stock",
			payload:        handler.ProductRequest{Name: "Keyboard", Category: "ELECTRONICS", Price: 50.0, Stock: -1},
			expectCode:     http.StatusBadRequest,
			expectedErrors: []string{"Stock"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createProduct(r, tt.payload)

			if w.Code != tt.expectCode {
				t.Errorf("expected status %d, got %d", tt.expectCode, w.Code)
			}

			var resp []handler.ValidationError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}

			for _, field := range tt.expectedErrors {
				found := false
				for _, err := range resp {
					if strings.EqualFold(err.Field, field) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for field %q, but not found", field)
				}
			}
		})
	}
}

func TestCreateProductHandler_MalformedJSON(t *testing.T) {
	t.Cleanup(clearAll)
	r := newTestRouter()

	badJSON := `{Name: "Invalid" Price: 100 "}` // missing comma
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(badJSON))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 Bad Request, got %d", w.Code)
	}

	expectedBody := "invalid input\n"
	if w.Body.String() != expectedBody {
		t.Errorf("expected response body %q, got %q", expectedBody, w.Body.String())
	}
}

func TestGetProductsHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := newTestRouter()

	mustCreateProduct(r, "Phone", 999.99, 1)
	mustCreateProduct(r, "Tablet", 499.99, 2)

	getReq := httptest.NewRequest(http.MethodGet, "/products", nil)
	getW := httptest.NewRecorder()
	r.ServeHTTP(getW, getReq)

	if getW.Code != http.StatusOK {
		t.Fatalf("expected 200 OK for product retrieval, got %d", getW.Code)
	}

	var products []handler.ProductResponse
	if err := json.NewDecoder(getW.Body).Decode(&products); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("expected two products, got %d", len(products))
	}
}

func TestGetProductsHandler_Filters(t *testing.T) {
	t.Cleanup(clearAll)
	r := newTestRouter()

	seed := []handler.ProductRequest{
		{Name: "Phone", Category: "ELECTRONICS", Price: 699.99, Stock: 10},
		{Name: "Sneakers", Category: "SPORTS", Price: 89.99, Stock: 50},
		{Name: "Blender", Category: "KITCHENWARE", Price: 39.99, Stock: 20},
		{Name: "Monitor", Category: "ELECTRONICS", Price: 199.99, Stock: 20},
	}
	for _, p := range seed {
		w := createProduct(r, p)
		if w.Code != http.StatusCreated {
			t.Fatalf("failed to create test product: %v", p.Name)
		}
	}

	t.Run("Filter by category", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products?category=ELECTRONICS", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp []handler.ProductResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if len(resp) != 2 {
			t.Fatalf("expected two electronics products, got %d", len(resp))
		}
		for _, p := range resp {
			if p.Category != "ELECTRONICS" {
				t.Errorf("unexpected category in result: %v", p.Category)
			}
		}
	})

	t.Run("Sort by price ascending", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products?order=priceLowest", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp []handler.ProductResponse
		json.NewDecoder(w.Body).Decode(&resp)
		for i := 1; i < len(resp); i++ {
			if resp[i].Price < resp[i-1].Price {
				t.Errorf("products not sorted by ascending price: %v before %v", resp[i-1].Price, resp[i].Price)
			}
		}
	})

	t.Run("Pagination limit and offset", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products?offset=0&limit=2", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		var resp []handler.ProductResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
		if got := len(resp); got != 2 {
			t.Errorf("expected 2 products, got %d", got)
		}
	})

	t.Run("Offset past the end", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products?offset=999&limit=10", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		var resp []handler.ProductResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
		if got := len(resp); got != 0 {
			t.Errorf("expected empty result, got %d items", got)
		}
	})

	t.Run("Malformed pagination", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products?offset=abc", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 Bad Request, got %d", w.Code)
		}
	})
}

func TestUpdateProductHandler_Valid(t *testing.T) {
	t.Cleanup(clearAll)
	r := newTestRouter()

	id := mustCreateProduct(r, "Old Name", 100.0, 1)

	newName := "New Name"
	newPrice := 200.0
	updateBody := handler.ProductPatchRequest{Name: &newName, Price: &newPrice}
	jsonUpdateBody, _ := json.Marshal(updateBody)
	updateReq := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/products/%s", id), bytes.NewReader(jsonUpdateBody))
	updateW := httptest.NewRecorder()
	r.ServeHTTP(updateW, updateReq)

	if updateW.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", updateW.Code)
	}

	var updated handler.ProductResponse
	if err := json.NewDecoder(updateW.Body).Decode(&updated); err != nil {
		t.Fatalf("error decoding update response: %v", err)
	}

	if updated.Name != "New Name" {
		t.Errorf("expected name 'New Name', got %v", updated.Name)
	}
	if updated.Price != 200.0 {
		t.Errorf("expected price 200.0, got %v", updated.Price)
	}
	if updated.Stock != 1 {
		t.Errorf("expected untouched stock 1, got %v", updated.Stock)
	}
}

func TestUpdateProductHandler_NotFound(t *testing.T) {
	r := newTestRouter()

	name := "Ghost"
	updateBody := handler.ProductPatchRequest{Name: &name}
	jsonBody, _ := json.Marshal(updateBody)
	req := httptest.NewRequest(http.MethodPatch, "/products/0b39cbbe-6af2-4c5a-9b36-b9a045dbc6e8", bytes.NewReader(jsonBody))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestUpdateProductHandler_InvalidID(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPatch, "/products/not-a-uuid", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestUpdateProductHandler_ValidationErrors(t *testing.T) {
	t.Cleanup(clearAll)
	r := newTestRouter()

	id := mustCreateProduct(r, "Temporary", 100.0, 1)

	emptyName := ""
	negativePrice := -100.0
	negativeStock := -1
	invalidUpdate := handler.ProductPatchRequest{Name: &emptyName, Price: &negativePrice, Stock: &negativeStock}
	jsonInvalid, _ := json.Marshal(invalidUpdate)
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/products/%s", id), bytes.NewReader(jsonInvalid))
	wResult := httptest.NewRecorder()
	r.ServeHTTP(wResult, req)

	if wResult.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", wResult.Code)
	}

	var resp []handler.ValidationError
	if err := json.NewDecoder(wResult.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	assertField := func(field string) {
		found := false
		for _, err := range resp {
			if err.Field == field {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected validation error for %q", field)
		}
	}

	assertField("Name")
	assertField("Price")
	assertField("Stock")
}

func TestDeleteProductHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := newTestRouter()

	id := mustCreateProduct(r, "Disposable", 10.0, 1)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/products/%s", id), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}

	getReq := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%s", id), nil)
	getW := httptest.NewRecorder()
	r.ServeHTTP(getW, getReq)

	if getW.Code != http.StatusNotFound {
		t.Errorf("expected 404 after deletion, got %d", getW.Code)
	}
}

func TestDeleteProductHandler_NotFound(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodDelete, "/products/0b39cbbe-6af2-4c5a-9b36-b9a045dbc6e8", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
}

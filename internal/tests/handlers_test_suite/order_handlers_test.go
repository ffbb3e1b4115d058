package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"

	handler "github.com/rogerio-castellano/market-api/internal/http/handlers"
)

func TestCreateOrderHandler_Valid(t *testing.T) {
	t.Cleanup(clearAll)
	r := newTestRouter()

	userID := mustCreateUser(r, "buyer@example.com")
	productID := mustCreateProduct(r, "Camera", 350.0, 5)

	w := placeOrder(r, handler.OrderRequest{
		UserID: userID,
		OrderItems: []handler.OrderItemRequest{
			{ProductID: productID, Quantity: 3, UnitPrice: 350.0},
		},
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.OrderDetailResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if resp.UserId != userID {
		t.Errorf("expected userId %v, got %v", userID, resp.UserId)
	}
	if len(resp.OrderItems) != 1 {
		t.Fatalf("expected one order item, got %d", len(resp.OrderItems))
	}
	if resp.OrderItems[0].Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", resp.OrderItems[0].Quantity)
	}
	if resp.Total != 1050.0 {
		t.Errorf("expected total 1050.0, got %v", resp.Total)
	}

	if got := getProduct(r, productID).Stock; got != 2 {
		t.Errorf("expected stock decremented to 2, got %d", got)
	}
}

func TestCreateOrderHandler_InsufficientStock(t *testing.T) {
	t.Cleanup(clearAll)
	r := newTestRouter()

	userID := mustCreateUser(r, "buyer@example.com")
	productID := mustCreateProduct(r, "Camera", 350.0, 2)

	w := placeOrder(r, handler.OrderRequest{
		UserID: userID,
		OrderItems: []handler.OrderItemRequest{
			{ProductID: productID, Quantity: 3, UnitPrice: 350.0},
		},
	})

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 Conflict, got %d: %s", w.Code, w.Body.String())
	}

	if got := getProduct(r, productID).Stock; got != 2 {
		t.Errorf("expected stock unchanged at 2, got %d", got)
	}

	listReq := httptest.NewRequest(http.MethodGet, "/orders", nil)
	listW := httptest.NewRecorder()
	r.ServeHTTP(listW, listReq)

	var orders []handler.OrderResponse
	json.NewDecoder(listW.Body).Decode(&orders)
	if len(orders) != 0 {
		t.Errorf("expected no orders after failed placement, got %d", len(orders))
	}
}

func TestCreateOrderHandler_PartialShortage(t *testing.T) {
	t.Cleanup(clearAll)
	r := newTestRouter()

	userID := mustCreateUser(r, "buyer@example.com")
	plenty := mustCreateProduct(r, "Pens", 2.0, 100)
	scarce := mustCreateProduct(r, "Notebook", 8.0, 1)

	w := placeOrder(r, handler.OrderRequest{
		UserID: userID,
		OrderItems: []handler.OrderItemRequest{
			{ProductID: plenty, Quantity: 10, UnitPrice: 2.0},
			{ProductID: scarce, Quantity: 2, UnitPrice: 8.0},
		},
	})

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 Conflict, got %d", w.Code)
	}

	// One short line item must leave every product untouched.
	if got := getProduct(r, plenty).Stock; got != 100 {
		t.Errorf("expected stock 100 for the satisfiable product, got %d", got)
	}
	if got := getProduct(r, scarce).Stock; got != 1 {
		t.Errorf("expected stock 1 for the scarce product, got %d", got)
	}
}

func TestCreateOrderHandler_DuplicateProductSummed(t *testing.T) {
	t.Cleanup(clearAll)
	r := newTestRouter()

	userID := mustCreateUser(r, "buyer@example.com")
	productID := mustCreateProduct(r, "Socks", 5.0, 3)

	// 2 + 2 across two line items exceeds the stock of 3.
	w := placeOrder(r, handler.OrderRequest{
		UserID: userID,
		OrderItems: []handler.OrderItemRequest{
			{ProductID: productID, Quantity: 2, UnitPrice: 5.0},
			{ProductID: productID, Quantity: 2, UnitPrice: 5.0},
		},
	})

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 Conflict for combined quantity, got %d", w.Code)
	}
	if got := getProduct(r, productID).Stock; got != 3 {
		t.Errorf("expected stock unchanged at 3, got %d", got)
	}
}

func TestCreateOrderHandler_UnknownProduct(t *testing.T) {
	t.Cleanup(clearAll)
	r := newTestRouter()

	userID := mustCreateUser(r, "buyer@example.com")

	w := placeOrder(r, handler.OrderRequest{
		UserID: userID,
		OrderItems: []handler.OrderItemRequest{
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: 9.99},
		},
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestCreateOrderHandler_UnknownUser(t *testing.T) {
	t.Cleanup(clearAll)
	r := newTestRouter()

	productID := mustCreateProduct(r, "Camera", 350.0, 5)

	w := placeOrder(r, handler.OrderRequest{
		UserID: uuid.New(),
		OrderItems: []handler.OrderItemRequest{
			{ProductID: productID, Quantity: 1, UnitPrice: 350.0},
		},
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
	if got := getProduct(r, productID).Stock; got != 5 {
		t.Errorf("expected stock unchanged at 5, got %d", got)
	}
}

func TestCreateOrderHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAll)
	r := newTestRouter()

	tests := []struct {
		name    string
		payload handler.OrderRequest
	}{
		{
			name:    "Missing user and items",
			payload: handler.OrderRequest{},
		},
		{
			name: "Zero quantity",
			payload: handler.OrderRequest{
				UserID: uuid.New(),
				OrderItems: []handler.OrderItemRequest{
					{ProductID: uuid.New(), Quantity: 0, UnitPrice: 1.0},
				},
			},
		},
		{
			name: "Negative unit price",
			payload: handler.OrderRequest{
				UserID: uuid.New(),
				OrderItems: []handler.OrderItemRequest{
					{ProductID: uuid.New(), Quantity: 1, UnitPrice: -1.0},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := placeOrder(r, tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400 Bad Request, got %d", w.Code)
			}
		})
	}
}

func TestCreateOrderHandler_Concurrent(t *testing.T) {
	t.Cleanup(clearAll)
	r := newTestRouter()

	userID := mustCreateUser(r, "buyer@example.com")
	productID := mustCreateProduct(r, "Limited", 20.0, 10)

	// 20 buyers racing for 10 units, one unit each: exactly 10 may win.
	var wg sync.WaitGroup
	codes := make([]int, 20)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := placeOrder(r, handler.OrderRequest{
				UserID: userID,
				OrderItems: []handler.OrderItemRequest{
					{ProductID: productID, Quantity: 1, UnitPrice: 20.0},
				},
			})
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	created := 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
		default:
			t.Errorf("unexpected status code %d", code)
		}
	}

	if created != 10 {
		t.Errorf("expected exactly 10 successful placements, got %d", created)
	}
	if got := getProduct(r, productID).Stock; got != 0 {
		t.Errorf("expected stock exhausted to 0, got %d", got)
	}
}

func TestGetOrderByIDHandler_Total(t *testing.T) {
	t.Cleanup(clearAll)
	r := newTestRouter()

	userID := mustCreateUser(r, "buyer@example.com")
	first := mustCreateProduct(r, "Mug", 10.0, 10)
	second := mustCreateProduct(r, "Coaster", 5.0, 10)

	w := placeOrder(r, handler.OrderRequest{
		UserID: userID,
		OrderItems: []handler.OrderItemRequest{
			{ProductID: first, Quantity: 2, UnitPrice: 10.0},
			{ProductID: second, Quantity: 1, UnitPrice: 5.0},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var placed handler.OrderDetailResponse
	json.NewDecoder(w.Body).Decode(&placed)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/orders/%s", placed.Id), nil)
	getW := httptest.NewRecorder()
	r.ServeHTTP(getW, req)

	if getW.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", getW.Code)
	}

	var resp handler.OrderDetailResponse
	if err := json.NewDecoder(getW.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(resp.OrderItems) != 2 {
		t.Fatalf("expected two order items, got %d", len(resp.OrderItems))
	}
	if resp.Total != 25.0 {
		t.Errorf("expected total 25.0, got %v", resp.Total)
	}
}

func TestGetOrderByIDHandler_NotFound(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/orders/%s", uuid.New()), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestGetUserOrdersHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := newTestRouter()

	buyer := mustCreateUser(r, "buyer@example.com")
	other := mustCreateUser(r, "other@example.com")
	productID := mustCreateProduct(r, "Camera", 350.0, 10)

	for i := 0; i < 2; i++ {
		w := placeOrder(r, handler.OrderRequest{
			UserID: buyer,
			OrderItems: []handler.OrderItemRequest{
				{ProductID: productID, Quantity: 1, UnitPrice: 350.0},
			},
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201 Created, got %d", w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/users/%s/orders", buyer), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var orders []handler.OrderResponse
	if err := json.NewDecoder(w.Body).Decode(&orders); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(orders) != 2 {
		t.Errorf("expected two orders for buyer, got %d", len(orders))
	}

	otherReq := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/users/%s/orders", other), nil)
	otherW := httptest.NewRecorder()
	r.ServeHTTP(otherW, otherReq)

	var otherOrders []handler.OrderResponse
	json.NewDecoder(otherW.Body).Decode(&otherOrders)
	if len(otherOrders) != 0 {
		t.Errorf("expected no orders for the other user, got %d", len(otherOrders))
	}
}

func TestUpdateOrderHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := newTestRouter()

	buyer := mustCreateUser(r, "buyer@example.com")
	newOwner := mustCreateUser(r, "owner@example.com")
	productID := mustCreateProduct(r, "Camera", 350.0, 5)

	w := placeOrder(r, handler.OrderRequest{
		UserID: buyer,
		OrderItems: []handler.OrderItemRequest{
			{ProductID: productID, Quantity: 1, UnitPrice: 350.0},
		},
	})
	var placed handler.OrderDetailResponse
	json.NewDecoder(w.Body).Decode(&placed)

	patch := handler.OrderPatchRequest{UserID: &newOwner}
	body, _ := json.Marshal(patch)
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/orders/%s", placed.Id), bytes.NewReader(body))
	patchW := httptest.NewRecorder()
	r.ServeHTTP(patchW, req)

	if patchW.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", patchW.Code, patchW.Body.String())
	}

	var updated handler.OrderResponse
	if err := json.NewDecoder(patchW.Body).Decode(&updated); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if updated.UserId != newOwner {
		t.Errorf("expected order reassigned to %v, got %v", newOwner, updated.UserId)
	}
}

func TestUpdateOrderHandler_UnknownUser(t *testing.T) {
	t.Cleanup(clearAll)
	r := newTestRouter()

	buyer := mustCreateUser(r, "buyer@example.com")
	productID := mustCreateProduct(r, "Camera", 350.0, 5)

	w := placeOrder(r, handler.OrderRequest{
		UserID: buyer,
		OrderItems: []handler.OrderItemRequest{
			{ProductID: productID, Quantity: 1, UnitPrice: 350.0},
		},
	})
	var placed handler.OrderDetailResponse
	json.NewDecoder(w.Body).Decode(&placed)

	ghost := uuid.New()
	patch := handler.OrderPatchRequest{UserID: &ghost}
	body, _ := json.Marshal(patch)
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/orders/%s", placed.Id), bytes.NewReader(body))
	patchW := httptest.NewRecorder()
	r.ServeHTTP(patchW, req)

	if patchW.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", patchW.Code)
	}
}

func TestDeleteOrderHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := newTestRouter()

	buyer := mustCreateUser(r, "buyer@example.com")
	productID := mustCreateProduct(r, "Camera", 350.0, 5)

	w := placeOrder(r, handler.OrderRequest{
		UserID: buyer,
		OrderItems: []handler.OrderItemRequest{
			{ProductID: productID, Quantity: 1, UnitPrice: 350.0},
		},
	})
	var placed handler.OrderDetailResponse
	json.NewDecoder(w.Body).Decode(&placed)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/orders/%s", placed.Id), nil)
	delW := httptest.NewRecorder()
	r.ServeHTTP(delW, req)

	if delW.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", delW.Code)
	}

	getReq := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/orders/%s", placed.Id), nil)
	getW := httptest.NewRecorder()
	r.ServeHTTP(getW, getReq)

	if getW.Code != http.StatusNotFound {
		t.Errorf("expected 404 after deletion, got %d", getW.Code)
	}
}

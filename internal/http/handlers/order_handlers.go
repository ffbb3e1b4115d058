package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rogerio-castellano/market-api/internal/models"
	"github.com/rogerio-castellano/market-api/internal/order"
)

// CreateOrderHandler godoc
// @Summary Place an order
// @Description Checks stock for every requested product and atomically creates the order while decrementing stock
// @Tags orders
// @Accept json
// @Produce json
// @Param order body OrderRequest true "Order to place"
// @Success 201 {object} OrderDetailResponse
// @Failure 400 {array} ValidationError
// @Failure 404 {string} string "Unknown user or product"
// @Failure 409 {string} string "Insufficient stock"
// @Router /orders [post]
func (h *Handler) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateOrder(req)
	if len(validationErrors) > 0 {
		writeValidationErrors(w, validationErrors)
		return
	}

	items := make([]order.LineItem, len(req.OrderItems))
	for i, item := range req.OrderItems {
		items[i] = order.LineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	placed, err := h.placement.Place(r.Context(), req.UserID, items)
	if err != nil {
		h.domainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderDetailResponse(placed))
}

// GetOrdersHandler godoc
// @Summary List all orders
// @Tags orders
// @Produce json
// @Success 200 {array} OrderResponse
// @Failure 500 {string} string "Internal error"
// @Router /orders [get]
func (h *Handler) GetOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.GetAll(r.Context())
	if err != nil {
		h.domainError(w, err)
		return
	}

	response := make([]OrderResponse, len(orders))
	for i, o := range orders {
		response[i] = toOrderResponse(o)
	}
	writeJSON(w, http.StatusOK, response)
}

// GetOrderByIDHandler godoc
// @Summary Get order by ID
// @Description Returns the order with its line items and the total computed from them
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} OrderDetailResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /orders/{id} [get]
func (h *Handler) GetOrderByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}

	o, err := h.orders.GetByID(r.Context(), id)
	if err != nil {
		h.domainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderDetailResponse(o))
}

// UpdateOrderHandler godoc
// @Summary Partially update an order
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param order body OrderPatchRequest true "Fields to update"
// @Success 200 {object} OrderResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Router /orders/{id} [patch]
func (h *Handler) UpdateOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}

	var req OrderPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	o, err := h.orders.GetByID(r.Context(), id)
	if err != nil {
		h.domainError(w, err)
		return
	}

	if req.UserID != nil {
		if _, err := h.users.GetByID(r.Context(), *req.UserID); err != nil {
			h.domainError(w, err)
			return
		}
		o.UserID = *req.UserID
	}
	o.UpdatedAt = time.Now().UTC()

	updated, err := h.orders.Update(r.Context(), o)
	if err != nil {
		h.domainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(updated))
}

// DeleteOrderHandler godoc
// @Summary Delete an order
// @Tags orders
// @Param id path string true "Order ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /orders/{id} [delete]
func (h *Handler) DeleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}
	if err := h.orders.Delete(r.Context(), id); err != nil {
		h.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toOrderResponse(o models.Order) OrderResponse {
	return OrderResponse{
		Id:        o.ID,
		UserId:    o.UserID,
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
	}
}

func toOrderDetailResponse(o models.Order) OrderDetailResponse {
	resp := OrderDetailResponse{
		Id:         o.ID,
		UserId:     o.UserID,
		CreatedAt:  o.CreatedAt.Format(time.RFC3339),
		OrderItems: make([]OrderItemResponse, len(o.Items)),
		Total:      order.Total(o.Items),
	}
	for i, item := range o.Items {
		resp.OrderItems[i] = OrderItemResponse{
			Id:        item.ID,
			ProductId: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return resp
}

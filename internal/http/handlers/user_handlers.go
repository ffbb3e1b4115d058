package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rogerio-castellano/market-api/internal/models"
	"github.com/rogerio-castellano/market-api/internal/repo"
)

// CreateUserHandler godoc
// @Summary Create a new user
// @Description Creates a user and, when supplied, its preference in one go
// @Tags users
// @Accept json
// @Produce json
// @Param user body UserRequest true "User to create"
// @Success 201 {object} UserResponse
// @Failure 400 {array} ValidationError
// @Router /users [post]
func (h *Handler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateUser(req)
	if len(validationErrors) > 0 {
		writeValidationErrors(w, validationErrors)
		return
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        uuid.New(),
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Preference != nil {
		user.Preference = &models.UserPreference{
			ID:           uuid.New(),
			UserID:       user.ID,
			ReceiveEmail: req.Preference.ReceiveEmail,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	created, err := h.users.Create(r.Context(), user)
	if err != nil {
		h.domainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(created))
}

// GetUsersHandler godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination (default 10)"
// @Param order query string false "Sort order (newest, oldest)"
// @Success 200 {array} UserResponse
// @Failure 500 {string} string "Internal error"
// @Router /users [get]
func (h *Handler) GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	offset, limit, ok := paginationParams(w, q.Get("offset"), q.Get("limit"))
	if !ok {
		return
	}

	users, err := h.users.GetAll(r.Context(), repo.UserFilter{
		Order:  q.Get("order"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		h.domainError(w, err)
		return
	}

	response := make([]UserResponse, len(users))
	for i, u := range users {
		response[i] = toUserResponse(u)
	}
	writeJSON(w, http.StatusOK, response)
}

// GetUserByIDHandler godoc
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} UserResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /users/{id} [get]
func (h *Handler) GetUserByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		h.domainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// UpdateUserHandler godoc
// @Summary Partially update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body UserPatchRequest true "Fields to update"
// @Success 200 {object} UserResponse
// @Failure 400 {array} ValidationError
// @Failure 404 {string} string "Not found"
// @Router /users/{id} [patch]
func (h *Handler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	var req UserPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateUserPatch(req)
	if len(validationErrors) > 0 {
		writeValidationErrors(w, validationErrors)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		h.domainError(w, err)
		return
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	now := time.Now().UTC()
	user.UpdatedAt = now
	if req.Preference != nil {
		if user.Preference == nil {
			user.Preference = &models.UserPreference{
				ID:        uuid.New(),
				UserID:    user.ID,
				CreatedAt: now,
			}
		}
		user.Preference.ReceiveEmail = req.Preference.ReceiveEmail
		user.Preference.UpdatedAt = now
	}

	updated, err := h.users.Update(r.Context(), user)
	if err != nil {
		h.domainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(updated))
}

// DeleteUserHandler godoc
// @Summary Delete a user
// @Tags users
// @Param id path string true "User ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /users/{id} [delete]
func (h *Handler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}
	if err := h.users.Delete(r.Context(), id); err != nil {
		h.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetUserOrdersHandler godoc
// @Summary List a user's orders
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} OrderResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /users/{id}/orders [get]
func (h *Handler) GetUserOrdersHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	if _, err := h.users.GetByID(r.Context(), id); err != nil {
		h.domainError(w, err)
		return
	}

	orders, err := h.orders.GetByUserID(r.Context(), id)
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

// GetSavedProductsHandler godoc
// @Summary List a user's saved products
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} ProductResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /users/{id}/saved-products [get]
func (h *Handler) GetSavedProductsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	products, err := h.users.SavedProducts(r.Context(), id)
	if err != nil {
		h.domainError(w, err)
		return
	}

	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	writeJSON(w, http.StatusOK, response)
}

type saveProductRequest struct {
	ProductID uuid.UUID `json:"productId"`
}

// SaveProductHandler godoc
// @Summary Add a product to a user's saved products
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param body body saveProductRequest true "Product to save"
// @Success 200 {array} ProductResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Router /users/{id}/saved-products [post]
func (h *Handler) SaveProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	var req saveProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == uuid.Nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	products, err := h.users.SaveProduct(r.Context(), id, req.ProductID)
	if err != nil {
		h.domainError(w, err)
		return
	}

	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	writeJSON(w, http.StatusOK, response)
}

func toUserResponse(u models.User) UserResponse {
	resp := UserResponse{
		Id:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Address:   u.Address,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
	if u.Preference != nil {
		resp.Preference = &UserPreferenceResponse{
			Id:           u.Preference.ID,
			UserId:       u.Preference.UserID,
			ReceiveEmail: u.Preference.ReceiveEmail,
		}
	}
	return resp
}

package handlers

import "github.com/google/uuid"

type UserPreferenceRequest struct {
	ReceiveEmail bool `json:"receiveEmail"`
}

type UserRequest struct {
	Email      string                 `json:"email"`
	FirstName  string                 `json:"firstName"`
	LastName   string                 `json:"lastName"`
	Address    string                 `json:"address"`
	Preference *UserPreferenceRequest `json:"userPreference,omitempty"`
}

type UserPatchRequest struct {
	Email      *string                `json:"email,omitempty"`
	FirstName  *string                `json:"firstName,omitempty"`
	LastName   *string                `json:"lastName,omitempty"`
	Address    *string                `json:"address,omitempty"`
	Preference *UserPreferenceRequest `json:"userPreference,omitempty"`
}

type UserPreferenceResponse struct {
	Id           uuid.UUID `json:"id"`
	UserId       uuid.UUID `json:"userId"`
	ReceiveEmail bool      `json:"receiveEmail"`
}

type UserResponse struct {
	Id         uuid.UUID               `json:"id"`
	Email      string                  `json:"email"`
	FirstName  string                  `json:"firstName"`
	LastName   string                  `json:"lastName"`
	Address    string                  `json:"address"`
	CreatedAt  string                  `json:"createdAt"`
	UpdatedAt  string                  `json:"updatedAt"`
	Preference *UserPreferenceResponse `json:"userPreference,omitempty"`
}

type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

type ProductPatchRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
}

type ProductResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unitPrice"`
}

type OrderRequest struct {
	UserID     uuid.UUID          `json:"userId"`
	OrderItems []OrderItemRequest `json:"orderItems"`
}

type OrderPatchRequest struct {
	UserID *uuid.UUID `json:"userId,omitempty"`
}

type OrderItemResponse struct {
	Id        uuid.UUID `json:"id"`
	ProductId uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unitPrice"`
}

// OrderResponse is the list shape: no line items, no total.
type OrderResponse struct {
	Id        uuid.UUID `json:"id"`
	UserId    uuid.UUID `json:"userId"`
	CreatedAt string    `json:"createdAt"`
}

// OrderDetailResponse carries the line items and the total computed at read
// time from them.
type OrderDetailResponse struct {
	Id         uuid.UUID           `json:"id"`
	UserId     uuid.UUID           `json:"userId"`
	CreatedAt  string              `json:"createdAt"`
	OrderItems []OrderItemResponse `json:"orderItems"`
	Total      float64             `json:"total"`
}

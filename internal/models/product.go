package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog entry. Stock is only ever decremented
// through the order placement transaction and direct CRUD updates.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Categories accepted for a product.
var ProductCategories = []string{
	"FASHION",
	"BEAUTY",
	"SPORTS",
	"ELECTRONICS",
	"HOME_INTERIOR",
	"HOUSEHOLD_SUPPLIES",
	"KITCHENWARE",
}

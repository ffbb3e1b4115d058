package handlers

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/market-api/internal/models"
)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateUser(u UserRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(u.Email) == "" {
		errs = append(errs, ValidationError{Field: "Email", Description: "Email is required"})
	} else if !strings.Contains(u.Email, "@") {
		errs = append(errs, ValidationError{Field: "Email", Description: "Email is not valid"})
	}
	if strings.TrimSpace(u.FirstName) == "" {
		errs = append(errs, ValidationError{Field: "FirstName", Description: "FirstName is required"})
	}
	if strings.TrimSpace(u.LastName) == "" {
		errs = append(errs, ValidationError{Field: "LastName", Description: "LastName is required"})
	}
	return errs
}

func validateUserPatch(u UserPatchRequest) []ValidationError {
	errs := []ValidationError{}
	if u.Email != nil && !strings.Contains(*u.Email, "@") {
		errs = append(errs, ValidationError{Field: "Email", Description: "Email is not valid"})
	}
	if u.FirstName != nil && strings.TrimSpace(*u.FirstName) == "" {
		errs = append(errs, ValidationError{Field: "FirstName", Description: "FirstName cannot be empty"})
	}
	if u.LastName != nil && strings.TrimSpace(*u.LastName) == "" {
		errs = append(errs, ValidationError{Field: "LastName", Description: "LastName cannot be empty"})
	}
	return errs
}

func validateProduct(p ProductRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ValidationError{Field: "Name", Description: "Name is required"})
	}
	if p.Price <= 0 {
		errs = append(errs, ValidationError{Field: "Price", Description: "Price must be greater than zero"})
	}
	if p.Stock < 0 {
		errs = append(errs, ValidationError{Field: "Stock", Description: "Stock cannot be negative"})
	}
	if !slices.Contains(models.ProductCategories, p.Category) {
		errs = append(errs, ValidationError{Field: "Category", Description: "Category is not valid"})
	}
	return errs
}

func validateProductPatch(p ProductPatchRequest) []ValidationError {
	errs := []ValidationError{}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		errs = append(errs, ValidationError{Field: "Name", Description: "Name cannot be empty"})
	}
	if p.Price != nil && *p.Price <= 0 {
		errs = append(errs, ValidationError{Field: "Price", Description: "Price must be greater than zero"})
	}
	if p.Stock != nil && *p.Stock < 0 {
		errs = append(errs, ValidationError{Field: "Stock", Description: "Stock cannot be negative"})
	}
	if p.Category != nil && !slices.Contains(models.ProductCategories, *p.Category) {
		errs = append(errs, ValidationError{Field: "Category", Description: "Category is not valid"})
	}
	return errs
}

func validateOrder(o OrderRequest) []ValidationError {
	errs := []ValidationError{}
	if o.UserID == uuid.Nil {
		errs = append(errs, ValidationError{Field: "UserId", Description: "UserId is required"})
	}
	if len(o.OrderItems) == 0 {
		errs = append(errs, ValidationError{Field: "OrderItems", Description: "OrderItems must be a non-empty list"})
	}
	for _, item := range o.OrderItems {
		if item.ProductID == uuid.Nil {
			errs = append(errs, ValidationError{Field: "OrderItems", Description: "ProductId is required for every order item"})
			break
		}
	}
	for _, item := range o.OrderItems {
		if item.Quantity <= 0 {
			errs = append(errs, ValidationError{Field: "OrderItems", Description: "Quantity must be greater than zero"})
			break
		}
	}
	for _, item := range o.OrderItems {
		if item.UnitPrice < 0 {
			errs = append(errs, ValidationError{Field: "OrderItems", Description: "UnitPrice cannot be negative"})
			break
		}
	}
	return errs
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID       `json:"id"`
	Email      string          `json:"email"`
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	Address    string          `json:"address"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	Preference *UserPreference `json:"userPreference,omitempty"`
}

// UserPreference is created and updated together with its owning user.
type UserPreference struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"userId"`
	ReceiveEmail bool      `json:"receiveEmail"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

package entities

import (
	"time"

	"github.com/google/uuid"
)

// Sector represents a franchise business sector
type Sector struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"createdAt"`
}

// Country represents a supported target country
type Country struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	PhoneCode string    `json:"phoneCode"`
	Flag      string    `json:"flag"`
	CreatedAt time.Time `json:"createdAt"`
}

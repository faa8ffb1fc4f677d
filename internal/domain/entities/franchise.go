package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Franchise represents a franchise listing. Only active franchises
// participate in matching.
type Franchise struct {
	ID                 uuid.UUID   `json:"id"`
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	Logo               null.String `json:"logo,omitempty"`
	Video              null.String `json:"video,omitempty"`
	InvestmentMin      float64     `json:"investmentMin"`
	InvestmentMax      float64     `json:"investmentMax"`
	SectorID           uuid.UUID   `json:"sectorId"`
	SectorName         string      `json:"sectorName,omitempty"`
	SectorEmoji        string      `json:"sectorEmoji,omitempty"`
	ContactEmail       null.String `json:"contactEmail,omitempty"`
	Featured           bool        `json:"featured"`
	Active             bool        `json:"active"`
	CoverageCountryIDs []uuid.UUID `json:"coverageCountryIds"`
	MatchCount         int         `json:"matchCount,omitempty"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

// CoversCountry reports whether countryID is in the coverage set.
func (f *Franchise) CoversCountry(countryID uuid.UUID) bool {
	for _, id := range f.CoverageCountryIDs {
		if id == countryID {
			return true
		}
	}
	return false
}

// CreateFranchiseInput represents input for creating a franchise
type CreateFranchiseInput struct {
	Name          string      `json:"name" binding:"required"`
	Description   string      `json:"description" binding:"required"`
	Logo          string      `json:"logo"`
	Video         string      `json:"video"`
	InvestmentMin float64     `json:"investmentMin" binding:"required,gt=0"`
	InvestmentMax float64     `json:"investmentMax" binding:"required,gt=0"`
	SectorID      uuid.UUID   `json:"sectorId" binding:"required"`
	ContactEmail  string      `json:"contactEmail"`
	Featured      bool        `json:"featured"`
	Active        *bool       `json:"active"`
	CountryIDs    []uuid.UUID `json:"countryIds"`
}

// UpdateFranchiseInput represents input for updating a franchise
type UpdateFranchiseInput = CreateFranchiseInput

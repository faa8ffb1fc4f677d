package models

import (
	"time"

	"github.com/google/uuid"
)

type Franchise struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Description   string    `gorm:"type:text;not null"`
	Logo          *string   `gorm:"type:varchar(512)"`
	Video         *string   `gorm:"type:varchar(512)"`
	InvestmentMin float64   `gorm:"not null"`
	InvestmentMax float64   `gorm:"not null"`
	SectorID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ContactEmail  *string   `gorm:"type:varchar(255)"`
	Featured      bool      `gorm:"not null;default:false"`
	Active        bool      `gorm:"not null;default:true;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Associations
	Sector    Sector             `gorm:"foreignKey:SectorID"`
	Countries []FranchiseCountry `gorm:"foreignKey:FranchiseID"`
}

// FranchiseCountry is one row of the coverage set.
type FranchiseCountry struct {
	FranchiseID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CountryID   uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (FranchiseCountry) TableName() string {
	return "franchise_countries"
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type Lead struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"type:varchar(255);not null"`
	Email           string    `gorm:"type:varchar(255);not null;index"`
	Phone           string    `gorm:"type:varchar(32);not null;index"`
	PhoneVerified   bool      `gorm:"not null;default:false"`
	CountryID       uuid.UUID `gorm:"type:uuid;not null"`
	InvestmentRange string    `gorm:"type:varchar(32);not null"`
	ExperienceLevel string    `gorm:"type:varchar(32);not null"`
	Viewed          bool      `gorm:"not null;default:false;index"`
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time

	// Associations
	Sectors []LeadSector         `gorm:"foreignKey:LeadID"`
	Matches []LeadFranchiseMatch `gorm:"foreignKey:LeadID"`
}

// LeadSector is one row of the lead's sector selection.
type LeadSector struct {
	LeadID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	SectorID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (LeadSector) TableName() string {
	return "lead_sectors"
}

type LeadFranchiseMatch struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	LeadID      uuid.UUID `gorm:"type:uuid;not null;index"`
	FranchiseID uuid.UUID `gorm:"type:uuid;not null;index"`
	Score       int       `gorm:"not null"`
	Contacted   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time

	// Associations
	Franchise Franchise `gorm:"foreignKey:FranchiseID"`
}

func (LeadFranchiseMatch) TableName() string {
	return "lead_franchise_matches"
}

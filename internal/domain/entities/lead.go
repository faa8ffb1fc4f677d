package entities

import (
	"time"

	"github.com/google/uuid"
)

// InvestmentRange represents the investor's budget tier. The last tier is
// open-ended.
type InvestmentRange string

const (
	Range50K100K  InvestmentRange = "RANGE_50K_100K"
	Range100K200K InvestmentRange = "RANGE_100K_200K"
	Range200KPlus InvestmentRange = "RANGE_200K_PLUS"
)

// Valid reports whether r is one of the known tiers.
func (r InvestmentRange) Valid() bool {
	switch r {
	case Range50K100K, Range100K200K, Range200KPlus:
		return true
	}
	return false
}

// Label returns the human-readable label used in notifications.
func (r InvestmentRange) Label() string {
	switch r {
	case Range50K100K:
		return "$50k - $100k"
	case Range100K200K:
		return "$100k - $200k"
	case Range200KPlus:
		return "$200k+"
	}
	return string(r)
}

// ExperienceLevel represents the investor's background
type ExperienceLevel string

const (
	ExperienceInversor    ExperienceLevel = "INVERSOR"
	ExperienceVentas      ExperienceLevel = "VENTAS"
	ExperienceOperaciones ExperienceLevel = "OPERACIONES"
	ExperienceOtro        ExperienceLevel = "OTRO"
)

// Valid reports whether l is one of the known levels.
func (l ExperienceLevel) Valid() bool {
	switch l {
	case ExperienceInversor, ExperienceVentas, ExperienceOperaciones, ExperienceOtro:
		return true
	}
	return false
}

// InvestorProfile is the preference set scoring runs against. Immutable
// for a given scoring run.
type InvestorProfile struct {
	SectorIDs       []uuid.UUID
	InvestmentRange InvestmentRange
	CountryID       uuid.UUID
	ExperienceLevel ExperienceLevel
}

// Lead represents a prospective investor record
type Lead struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	PhoneVerified   bool            `json:"phoneVerified"`
	CountryID       uuid.UUID       `json:"countryId"`
	InvestmentRange InvestmentRange `json:"investmentRange"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel"`
	SectorIDs       []uuid.UUID     `json:"sectorIds"`
	Viewed          bool            `json:"viewed"`
	Matches         []*Match        `json:"matches,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Profile returns the lead's current investor profile.
func (l *Lead) Profile() *InvestorProfile {
	return &InvestorProfile{
		SectorIDs:       l.SectorIDs,
		InvestmentRange: l.InvestmentRange,
		CountryID:       l.CountryID,
		ExperienceLevel: l.ExperienceLevel,
	}
}

// Match is a scored association between a lead and a franchise
type Match struct {
	ID          uuid.UUID `json:"id"`
	LeadID      uuid.UUID `json:"leadId"`
	FranchiseID uuid.UUID `json:"franchiseId"`
	Score       int       `json:"score"`
	Contacted   bool      `json:"contacted"`
	CreatedAt   time.Time `json:"createdAt"`

	// Franchise is populated on admin reads
	Franchise *Franchise `json:"franchise,omitempty"`
}

// CreateLeadInput represents the intake endpoint payload
type CreateLeadInput struct {
	Name            string          `json:"name" binding:"required"`
	Email           string          `json:"email" binding:"required,email"`
	Phone           string          `json:"phone" binding:"required"`
	Sectors         []uuid.UUID     `json:"sectors" binding:"required,min=1"`
	InvestmentRange InvestmentRange `json:"investmentRange" binding:"required"`
	CountryID       uuid.UUID       `json:"countryId" binding:"required"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel" binding:"required"`
}

// MatchedFranchise is one ranked result returned to the client
type MatchedFranchise struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Logo          string    `json:"logo,omitempty"`
	InvestmentMin float64   `json:"investmentMin"`
	InvestmentMax float64   `json:"investmentMax"`
	SectorName    string    `json:"sectorName"`
	SectorEmoji   string    `json:"sectorEmoji"`
	Score         int       `json:"score"`
}

// SubmitLeadOutput is the intake endpoint response
type SubmitLeadOutput struct {
	LeadID  uuid.UUID           `json:"leadId"`
	Matches []*MatchedFranchise `json:"matches"`
	Updated bool                `json:"updated"`
}

// LeadStats are the admin dashboard counters
type LeadStats struct {
	TotalLeads     int64 `json:"totalLeads"`
	LeadsThisMonth int64 `json:"leadsThisMonth"`
	UnviewedLeads  int64 `json:"unviewedLeads"`
}

package entities

import (
	"time"

	"github.com/google/uuid"
)

// OtpVerification is one issued one-time code for a phone number. Multiple
// rows may exist per phone over time; at most one is active (unverified,
// unexpired) because issuance deletes prior unverified rows.
type OtpVerification struct {
	ID        uuid.UUID `json:"id"`
	Phone     string    `json:"phone"`
	Code      string    `json:"-"`
	Channel   string    `json:"channel"`
	Verified  bool      `json:"verified"`
	Attempts  int       `json:"attempts"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the code is past its expiry at the given instant.
func (v *OtpVerification) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}

// IssueOtpInput is the payload for requesting a code
type IssueOtpInput struct {
	Phone string `json:"phone" binding:"required"`
}

// VerifyOtpInput is the payload for submitting a code
type VerifyOtpInput struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

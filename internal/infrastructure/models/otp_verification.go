package models

import (
	"time"

	"github.com/google/uuid"
)

type OtpVerification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Phone     string    `gorm:"type:varchar(32);not null;index"`
	Code      string    `gorm:"type:varchar(6);not null"`
	Channel   string    `gorm:"type:varchar(16);not null;default:'sms'"`
	Verified  bool      `gorm:"not null;default:false"`
	Attempts  int       `gorm:"not null;default:0"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"index"`
}

func (OtpVerification) TableName() string {
	return "otp_verifications"
}

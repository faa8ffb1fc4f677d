package models

import (
	"time"

	"github.com/google/uuid"
)

type Sector struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Slug      string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Emoji     string    `gorm:"type:varchar(16)"`
	CreatedAt time.Time
}

type Country struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Code      string    `gorm:"type:varchar(2);uniqueIndex;not null"`
	PhoneCode string    `gorm:"type:varchar(10)"`
	Flag      string    `gorm:"type:varchar(16)"`
	CreatedAt time.Time
}

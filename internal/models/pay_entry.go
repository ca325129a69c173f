package models

import "time"

// PayEntry - income for a period of hauling work, usually one settlement
type PayEntry struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index;not null"`
	User      User
	StartDate time.Time `gorm:"index;not null"`
	EndDate   time.Time `gorm:"not null"`
	Amount    float64   `gorm:"not null"`
	Client    string    `gorm:"size:100;not null"`
	Notes     string    `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

package models

import "time"

type Truck struct {
	ID           uint `gorm:"primaryKey"`
	UserID       uint `gorm:"index;not null"`
	User         User
	Name         string `gorm:"size:100;not null"`
	Identifier   string `gorm:"size:50;not null"` // unit number painted on the door
	Make         string `gorm:"size:50;not null"`
	Model        string `gorm:"size:50;not null"`
	Year         int    `gorm:"not null"`
	VIN          string `gorm:"size:50"`
	LicensePlate string `gorm:"size:20"`
	Notes        string `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

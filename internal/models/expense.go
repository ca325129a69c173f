package models

import "time"

type ExpenseCategory string

const (
	CategoryFuel        ExpenseCategory = "Fuel"
	CategoryMaintenance ExpenseCategory = "Maintenance"
	CategoryInsurance   ExpenseCategory = "Insurance"
	CategoryTolls       ExpenseCategory = "Tolls"
	CategoryParking     ExpenseCategory = "Parking"
	CategoryFood        ExpenseCategory = "Food"
	CategoryLodging     ExpenseCategory = "Lodging"
	CategoryOffice      ExpenseCategory = "Office"
	CategoryOther       ExpenseCategory = "Other"
)

// ExpenseCategories lists every valid category, in form order.
var ExpenseCategories = []ExpenseCategory{
	CategoryFuel,
	CategoryMaintenance,
	CategoryInsurance,
	CategoryTolls,
	CategoryParking,
	CategoryFood,
	CategoryLodging,
	CategoryOffice,
	CategoryOther,
}

func (c ExpenseCategory) Valid() bool {
	for _, v := range ExpenseCategories {
		if c == v {
			return true
		}
	}
	return false
}

type Expense struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"index;not null"`
	User        User
	TruckID     *uint `gorm:"index"`
	Truck       *Truck
	Date        time.Time       `gorm:"index;not null"`
	Category    ExpenseCategory `gorm:"size:50;not null"`
	Amount      float64         `gorm:"not null"`
	Description string          `gorm:"size:255;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

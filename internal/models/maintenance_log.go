package models

import "time"

type ServiceType string

const (
	ServiceOilChange       ServiceType = "Oil Change"
	ServiceTireReplacement ServiceType = "Tire Replacement"
	ServiceBrakeService    ServiceType = "Brake Service"
	ServiceEngineRepair    ServiceType = "Engine Repair"
	ServiceTransmission    ServiceType = "Transmission"
	ServiceElectrical      ServiceType = "Electrical"
	ServiceInspection      ServiceType = "Inspection"
	ServiceOther           ServiceType = "Other"
)

// ServiceTypes lists every valid service type, in form order.
var ServiceTypes = []ServiceType{
	ServiceOilChange,
	ServiceTireReplacement,
	ServiceBrakeService,
	ServiceEngineRepair,
	ServiceTransmission,
	ServiceElectrical,
	ServiceInspection,
	ServiceOther,
}

func (s ServiceType) Valid() bool {
	for _, v := range ServiceTypes {
		if s == v {
			return true
		}
	}
	return false
}

type MaintenanceLog struct {
	ID                 uint `gorm:"primaryKey"`
	UserID             uint `gorm:"index;not null"`
	User               User
	TruckID            uint `gorm:"index;not null"`
	Truck              Truck
	Date               time.Time   `gorm:"index;not null"`
	ServiceType        ServiceType `gorm:"size:50;not null"`
	Mileage            float64     `gorm:"not null"`
	Cost               float64     `gorm:"not null"`
	Description        string      `gorm:"size:255;not null"`
	NextServiceDate    *time.Time
	NextServiceMileage *float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

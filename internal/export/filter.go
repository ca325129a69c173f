package export

import (
	"time"

	"truckledger-backend/internal/models"
)

type DataType string

const (
	DataExpenses    DataType = "expenses"
	DataPay         DataType = "pay"
	DataMaintenance DataType = "maintenance"
	DataAll         DataType = "all"
)

func (t DataType) Valid() bool {
	switch t {
	case DataExpenses, DataPay, DataMaintenance, DataAll:
		return true
	}
	return false
}

// Range bounds are inclusive on both ends. Record dates are stored at
// midnight UTC, so plain time comparison is equivalent to comparing
// calendar dates.
func inRange(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}

func FilterExpenses(expenses []models.Expense, from, to time.Time) []models.Expense {
	filtered := make([]models.Expense, 0, len(expenses))
	for _, exp := range expenses {
		if inRange(exp.Date, from, to) {
			filtered = append(filtered, exp)
		}
	}
	return filtered
}

// FilterPayEntries keeps entries whose start OR end date falls in the range,
// so a settlement overlapping the range boundary is still exported.
func FilterPayEntries(payEntries []models.PayEntry, from, to time.Time) []models.PayEntry {
	filtered := make([]models.PayEntry, 0, len(payEntries))
	for _, pay := range payEntries {
		if inRange(pay.StartDate, from, to) || inRange(pay.EndDate, from, to) {
			filtered = append(filtered, pay)
		}
	}
	return filtered
}

func FilterMaintenanceLogs(logs []models.MaintenanceLog, from, to time.Time) []models.MaintenanceLog {
	filtered := make([]models.MaintenanceLog, 0, len(logs))
	for _, ml := range logs {
		if inRange(ml.Date, from, to) {
			filtered = append(filtered, ml)
		}
	}
	return filtered
}

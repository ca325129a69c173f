package report

import (
	"strconv"
	"time"

	"truckledger-backend/internal/models"
)

type Granularity string

const (
	Monthly   Granularity = "monthly"
	Quarterly Granularity = "quarterly"
	Annual    Granularity = "annual"
)

func (g Granularity) Valid() bool {
	switch g {
	case Monthly, Quarterly, Annual:
		return true
	}
	return false
}

// Bucket holds the aggregated totals for one period.
type Bucket struct {
	Income             float64                            `json:"income"`
	Expenses           float64                            `json:"expenses"`
	Maintenance        float64                            `json:"maintenance"`
	Profit             float64                            `json:"profit"`
	ExpensesByCategory map[models.ExpenseCategory]float64 `json:"expenses_by_category"`
	MaintenanceByType  map[models.ServiceType]float64     `json:"maintenance_by_type"`
}

type Report struct {
	Granularity Granularity        `json:"granularity"`
	Year        int                `json:"year"`
	Periods     []string           `json:"periods"` // bucket keys in serialization order
	Buckets     map[string]*Bucket `json:"buckets"`
}

func newBucket() *Bucket {
	return &Bucket{
		ExpensesByCategory: make(map[models.ExpenseCategory]float64),
		MaintenanceByType:  make(map[models.ServiceType]float64),
	}
}

// periodKey maps a record date to its bucket key. Only the month matters;
// the caller has already restricted every collection to the report year.
func periodKey(g Granularity, year int, d time.Time) string {
	switch g {
	case Monthly:
		return d.Month().String()
	case Quarterly:
		quarter := (int(d.Month())-1)/3 + 1
		return "Q" + strconv.Itoa(quarter)
	default:
		return strconv.Itoa(year)
	}
}

// Generate groups the supplied records into per-period buckets and sums
// income, expenses and maintenance costs, with per-category and per-service
// breakdowns. It is a pure function: no I/O, no shared state, and the inputs
// are never mutated. Every period of the year is present in the output even
// when nothing was recorded in it; breakdown entries exist only for
// categories and service types that actually occurred.
//
// Pay entries are attributed to the bucket of their start date. An entry
// spanning a period boundary counts entirely toward its start period; this
// matches how settlements are reported for taxes.
func Generate(expenses []models.Expense, payEntries []models.PayEntry, maintenanceLogs []models.MaintenanceLog, granularity Granularity, year int) *Report {
	r := &Report{
		Granularity: granularity,
		Year:        year,
		Buckets:     make(map[string]*Bucket),
	}

	switch granularity {
	case Monthly:
		for m := time.January; m <= time.December; m++ {
			key := m.String()
			r.Periods = append(r.Periods, key)
			r.Buckets[key] = newBucket()
		}
	case Quarterly:
		for q := 1; q <= 4; q++ {
			key := "Q" + strconv.Itoa(q)
			r.Periods = append(r.Periods, key)
			r.Buckets[key] = newBucket()
		}
	default:
		key := strconv.Itoa(year)
		r.Periods = append(r.Periods, key)
		r.Buckets[key] = newBucket()
	}

	for _, exp := range expenses {
		b := r.Buckets[periodKey(granularity, year, exp.Date)]
		b.Expenses += exp.Amount
		b.ExpensesByCategory[exp.Category] += exp.Amount
	}

	for _, ml := range maintenanceLogs {
		b := r.Buckets[periodKey(granularity, year, ml.Date)]
		b.Maintenance += ml.Cost
		b.MaintenanceByType[ml.ServiceType] += ml.Cost
	}

	for _, pay := range payEntries {
		b := r.Buckets[periodKey(granularity, year, pay.StartDate)]
		b.Income += pay.Amount
	}

	for _, b := range r.Buckets {
		b.Profit = b.Income - b.Expenses - b.Maintenance
	}

	return r
}

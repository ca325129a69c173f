package export

import (
	"sort"
	"strconv"
	"strings"

	"truckledger-backend/internal/models"
	"truckledger-backend/internal/report"
)

const dateLayout = "2006-01-02"

// formatNumber renders a raw numeric value without padding or trailing
// zeros: 2000 -> "2000", 120.50 -> "120.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatTruckID(id *uint) string {
	if id == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*id), 10)
}

// WriteRawCSV renders filtered record sets as sectioned, comma-delimited
// text. The layout is a compatibility contract with existing consumers of
// these files: uppercase section labels, fixed header rows, one row per
// record in fetch order, sections omitted when empty, and NO quoting or
// escaping of embedded delimiters in free-text fields.
func WriteRawCSV(expenses []models.Expense, payEntries []models.PayEntry, maintenanceLogs []models.MaintenanceLog) string {
	var b strings.Builder

	if len(expenses) > 0 {
		b.WriteString("EXPENSES\n")
		b.WriteString("Date,Category,Amount,Description,Truck ID\n")
		for _, exp := range expenses {
			b.WriteString(exp.Date.Format(dateLayout))
			b.WriteString(",")
			b.WriteString(string(exp.Category))
			b.WriteString(",")
			b.WriteString(formatNumber(exp.Amount))
			b.WriteString(",")
			b.WriteString(exp.Description)
			b.WriteString(",")
			b.WriteString(formatTruckID(exp.TruckID))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(payEntries) > 0 {
		b.WriteString("PAY ENTRIES\n")
		b.WriteString("Start Date,End Date,Amount,Client,Notes\n")
		for _, pay := range payEntries {
			b.WriteString(pay.StartDate.Format(dateLayout))
			b.WriteString(",")
			b.WriteString(pay.EndDate.Format(dateLayout))
			b.WriteString(",")
			b.WriteString(formatNumber(pay.Amount))
			b.WriteString(",")
			b.WriteString(pay.Client)
			b.WriteString(",")
			b.WriteString(pay.Notes)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(maintenanceLogs) > 0 {
		b.WriteString("MAINTENANCE LOGS\n")
		b.WriteString("Date,Truck ID,Service Type,Mileage,Cost,Description,Next Service Date,Next Service Mileage\n")
		for _, ml := range maintenanceLogs {
			b.WriteString(ml.Date.Format(dateLayout))
			b.WriteString(",")
			b.WriteString(strconv.FormatUint(uint64(ml.TruckID), 10))
			b.WriteString(",")
			b.WriteString(string(ml.ServiceType))
			b.WriteString(",")
			b.WriteString(formatNumber(ml.Mileage))
			b.WriteString(",")
			b.WriteString(formatNumber(ml.Cost))
			b.WriteString(",")
			b.WriteString(ml.Description)
			b.WriteString(",")
			if ml.NextServiceDate != nil {
				b.WriteString(ml.NextServiceDate.Format(dateLayout))
			}
			b.WriteString(",")
			if ml.NextServiceMileage != nil {
				b.WriteString(formatNumber(*ml.NextServiceMileage))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// sortedCategories returns breakdown keys alphabetically so output is
// deterministic across runs.
func sortedCategories(m map[models.ExpenseCategory]float64) []models.ExpenseCategory {
	keys := make([]models.ExpenseCategory, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedServiceTypes(m map[models.ServiceType]float64) []models.ServiceType {
	keys := make([]models.ServiceType, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// WriteTaxReportCSV renders an aggregated report as delimited text: one
// block per period with the four totals, then the per-category and
// per-service-type breakdowns. Values are raw numerics, not currency
// formatted.
func WriteTaxReportCSV(r *report.Report) string {
	var b strings.Builder

	b.WriteString("TAX REPORT - ")
	b.WriteString(strings.ToUpper(string(r.Granularity)))
	b.WriteString(" - ")
	b.WriteString(strconv.Itoa(r.Year))
	b.WriteString("\n\n")

	for _, period := range r.Periods {
		bucket := r.Buckets[period]

		b.WriteString(period)
		b.WriteString("\n")
		b.WriteString("Income,")
		b.WriteString(formatNumber(bucket.Income))
		b.WriteString("\n")
		b.WriteString("Expenses,")
		b.WriteString(formatNumber(bucket.Expenses))
		b.WriteString("\n")
		b.WriteString("Maintenance,")
		b.WriteString(formatNumber(bucket.Maintenance))
		b.WriteString("\n")
		b.WriteString("Profit,")
		b.WriteString(formatNumber(bucket.Profit))
		b.WriteString("\n\n")

		b.WriteString("Expenses by Category\n")
		for _, cat := range sortedCategories(bucket.ExpensesByCategory) {
			b.WriteString(string(cat))
			b.WriteString(",")
			b.WriteString(formatNumber(bucket.ExpensesByCategory[cat]))
			b.WriteString("\n")
		}

		b.WriteString("\nMaintenance by Type\n")
		for _, st := range sortedServiceTypes(bucket.MaintenanceByType) {
			b.WriteString(string(st))
			b.WriteString(",")
			b.WriteString(formatNumber(bucket.MaintenanceByType[st]))
			b.WriteString("\n")
		}

		b.WriteString("\n\n")
	}

	return b.String()
}

package export

import (
	"strings"
	"testing"
	"time"

	"truckledger-backend/internal/models"
	"truckledger-backend/internal/report"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func uintPtr(v uint) *uint      { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2000, "2000"},
		{120.50, "120.5"},
		{0, "0"},
		{0.25, "0.25"},
		{-45.1, "-45.1"},
	}

	for _, tt := range tests {
		if got := formatNumber(tt.in); got != tt.want {
			t.Errorf("formatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteRawCSVAllSections(t *testing.T) {
	expenses := []models.Expense{
		{Date: date(2024, time.March, 5), Category: models.CategoryFuel, Amount: 120.50, Description: "Diesel fill-up", TruckID: uintPtr(3)},
		{Date: date(2024, time.March, 6), Category: models.CategoryTolls, Amount: 15, Description: "I-80 tolls"},
	}
	payEntries := []models.PayEntry{
		{StartDate: date(2024, time.March, 4), EndDate: date(2024, time.March, 10), Amount: 2000, Client: "Acme Freight", Notes: "weekly settlement"},
	}
	maintenanceLogs := []models.MaintenanceLog{
		{
			Date:               date(2024, time.March, 12),
			TruckID:            3,
			ServiceType:        models.ServiceOilChange,
			Mileage:            125000,
			Cost:               75,
			Description:        "regular service",
			NextServiceDate:    timePtr(date(2024, time.June, 12)),
			NextServiceMileage: floatPtr(130000),
		},
	}

	got := WriteRawCSV(expenses, payEntries, maintenanceLogs)

	want := "EXPENSES\n" +
		"Date,Category,Amount,Description,Truck ID\n" +
		"2024-03-05,Fuel,120.5,Diesel fill-up,3\n" +
		"2024-03-06,Tolls,15,I-80 tolls,\n" +
		"\n" +
		"PAY ENTRIES\n" +
		"Start Date,End Date,Amount,Client,Notes\n" +
		"2024-03-04,2024-03-10,2000,Acme Freight,weekly settlement\n" +
		"\n" +
		"MAINTENANCE LOGS\n" +
		"Date,Truck ID,Service Type,Mileage,Cost,Description,Next Service Date,Next Service Mileage\n" +
		"2024-03-12,3,Oil Change,125000,75,regular service,2024-06-12,130000\n"

	if got != want {
		t.Errorf("raw output mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestWriteRawCSVOmitsEmptySections(t *testing.T) {
	payEntries := []models.PayEntry{
		{StartDate: date(2024, time.March, 4), EndDate: date(2024, time.March, 10), Amount: 1800, Client: "Acme Freight"},
	}

	got := WriteRawCSV(nil, payEntries, nil)

	if strings.Contains(got, "EXPENSES") {
		t.Error("empty expenses section should be omitted")
	}
	if strings.Contains(got, "MAINTENANCE LOGS") {
		t.Error("empty maintenance section should be omitted")
	}
	if !strings.HasPrefix(got, "PAY ENTRIES\n") {
		t.Errorf("output should start with pay section, got %q", got)
	}
}

func TestWriteRawCSVEmptyOptionalFields(t *testing.T) {
	maintenanceLogs := []models.MaintenanceLog{
		{Date: date(2024, time.May, 1), TruckID: 1, ServiceType: models.ServiceInspection, Mileage: 90000, Cost: 50, Description: "DOT inspection"},
	}

	got := WriteRawCSV(nil, nil, maintenanceLogs)

	if !strings.Contains(got, "2024-05-01,1,Inspection,90000,50,DOT inspection,,\n") {
		t.Errorf("optional fields should serialize empty, got %q", got)
	}
}

// Free text is emitted verbatim. A comma inside a description therefore
// shifts columns; this pins the format rather than endorsing it, so a change
// here is a deliberate break with files already in the wild.
func TestWriteRawCSVEmbeddedCommaUnescaped(t *testing.T) {
	expenses := []models.Expense{
		{Date: date(2024, time.March, 5), Category: models.CategoryFood, Amount: 30, Description: "lunch, dinner"},
	}

	got := WriteRawCSV(expenses, nil, nil)

	if !strings.Contains(got, "2024-03-05,Food,30,lunch, dinner,\n") {
		t.Errorf("embedded comma should pass through unescaped, got %q", got)
	}
}

func TestWriteTaxReportCSV(t *testing.T) {
	expenses := []models.Expense{
		{Date: date(2024, time.March, 5), Category: models.CategoryFuel, Amount: 100},
		{Date: date(2024, time.March, 18), Category: models.CategoryTolls, Amount: 20.50},
	}
	payEntries := []models.PayEntry{
		{StartDate: date(2024, time.March, 4), EndDate: date(2024, time.March, 10), Amount: 2000, Client: "Acme Freight"},
	}
	maintenanceLogs := []models.MaintenanceLog{
		{Date: date(2024, time.March, 12), ServiceType: models.ServiceOilChange, Cost: 75},
	}

	r := report.Generate(expenses, payEntries, maintenanceLogs, report.Annual, 2024)
	got := WriteTaxReportCSV(r)

	want := "TAX REPORT - ANNUAL - 2024\n\n" +
		"2024\n" +
		"Income,2000\n" +
		"Expenses,120.5\n" +
		"Maintenance,75\n" +
		"Profit,1804.5\n\n" +
		"Expenses by Category\n" +
		"Fuel,100\n" +
		"Tolls,20.5\n" +
		"\nMaintenance by Type\n" +
		"Oil Change,75\n" +
		"\n\n"

	if got != want {
		t.Errorf("tax output mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestWriteTaxReportCSVMonthlyHasAllPeriods(t *testing.T) {
	r := report.Generate(nil, nil, nil, report.Monthly, 2024)
	got := WriteTaxReportCSV(r)

	if !strings.HasPrefix(got, "TAX REPORT - MONTHLY - 2024\n\n") {
		t.Errorf("header mismatch: %q", got[:40])
	}
	for m := time.January; m <= time.December; m++ {
		if !strings.Contains(got, m.String()+"\n") {
			t.Errorf("missing period block for %s", m)
		}
	}
}

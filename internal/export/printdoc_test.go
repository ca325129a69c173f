package export

import (
	"strings"
	"testing"
	"time"

	"truckledger-backend/internal/models"
	"truckledger-backend/internal/report"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{75, "$75.00"},
		{1234.5, "$1,234.50"},
		{1234567.89, "$1,234,567.89"},
		{-1804.5, "-$1,804.50"},
	}

	for _, tt := range tests {
		if got := formatCurrency(tt.in); got != tt.want {
			t.Errorf("formatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMileage(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{125000, "125,000"},
		{999, "999"},
		{120.5, "120.5"},
		{1000000, "1,000,000"},
	}

	for _, tt := range tests {
		if got := formatMileage(tt.in); got != tt.want {
			t.Errorf("formatMileage(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteRawPrintDocument(t *testing.T) {
	trucksMap := map[uint]string{3: "Blue Kenworth"}
	expenses := []models.Expense{
		{Date: date(2024, time.March, 5), Category: models.CategoryFuel, Amount: 120.50, Description: "Diesel fill-up", TruckID: uintPtr(3)},
	}
	payEntries := []models.PayEntry{
		{StartDate: date(2024, time.March, 4), EndDate: date(2024, time.March, 10), Amount: 2000, Client: "Acme Freight"},
	}
	maintenanceLogs := []models.MaintenanceLog{
		{Date: date(2024, time.March, 12), TruckID: 3, ServiceType: models.ServiceOilChange, Mileage: 125000, Cost: 75, Description: "regular service"},
	}

	got := WriteRawPrintDocument(expenses, payEntries, maintenanceLogs, trucksMap,
		date(2024, time.March, 1), date(2024, time.March, 31))

	if !strings.Contains(got, "<title>Trucking Expense Tracker Report</title>") {
		t.Error("missing document title")
	}
	if !strings.Contains(got, "Date Range: Mar 1, 2024 - Mar 31, 2024") {
		t.Error("missing formatted date range")
	}
	if !strings.Contains(got, "<td>Blue Kenworth</td>") {
		t.Error("truck id should resolve to its name")
	}
	if !strings.Contains(got, "<td>$120.50</td>") {
		t.Error("expense amount should be currency formatted")
	}
	if !strings.Contains(got, "<td>125,000</td>") {
		t.Error("mileage should have thousands separators")
	}
	if !strings.Contains(got, "<td>$2,000.00</td>") {
		t.Error("pay amount should be currency formatted")
	}
}

func TestWriteRawPrintDocumentEscapesHTML(t *testing.T) {
	expenses := []models.Expense{
		{Date: date(2024, time.March, 5), Category: models.CategoryOther, Amount: 10, Description: "<script>alert(1)</script>"},
	}

	got := WriteRawPrintDocument(expenses, nil, nil, nil,
		date(2024, time.March, 1), date(2024, time.March, 31))

	if strings.Contains(got, "<script>alert(1)</script>") {
		t.Error("free text must be HTML-escaped")
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Error("escaped form should be present")
	}
}

func TestWriteRawPrintDocumentUnknownTruckFallsBackToID(t *testing.T) {
	maintenanceLogs := []models.MaintenanceLog{
		{Date: date(2024, time.March, 12), TruckID: 99, ServiceType: models.ServiceOther, Mileage: 1, Cost: 1},
	}

	got := WriteRawPrintDocument(nil, nil, maintenanceLogs, map[uint]string{},
		date(2024, time.March, 1), date(2024, time.March, 31))

	if !strings.Contains(got, "<td>99</td>") {
		t.Error("unknown truck should fall back to its raw id")
	}
}

func TestWriteRawPrintDocumentOmitsEmptySections(t *testing.T) {
	payEntries := []models.PayEntry{
		{StartDate: date(2024, time.March, 4), EndDate: date(2024, time.March, 10), Amount: 500, Client: "Acme Freight"},
	}

	got := WriteRawPrintDocument(nil, payEntries, nil, nil,
		date(2024, time.March, 1), date(2024, time.March, 31))

	if strings.Contains(got, "<h2>Expenses</h2>") {
		t.Error("empty expenses section should be omitted")
	}
	if strings.Contains(got, "<h2>Maintenance Logs</h2>") {
		t.Error("empty maintenance section should be omitted")
	}
	if !strings.Contains(got, "<h2>Pay Entries</h2>") {
		t.Error("pay section should be present")
	}
}

func TestWriteTaxReportPrintDocument(t *testing.T) {
	expenses := []models.Expense{
		{Date: date(2024, time.March, 5), Category: models.CategoryFuel, Amount: 100},
	}
	payEntries := []models.PayEntry{
		{StartDate: date(2024, time.March, 4), EndDate: date(2024, time.March, 10), Amount: 2000, Client: "Acme Freight"},
	}

	r := report.Generate(expenses, payEntries, nil, report.Monthly, 2024)
	got := WriteTaxReportPrintDocument(r)

	if !strings.Contains(got, "<title>Tax Report - Monthly - 2024</title>") {
		t.Error("missing capitalized title")
	}
	if !strings.Contains(got, "<h2>March</h2>") {
		t.Error("missing March period heading")
	}
	if !strings.Contains(got, "<h2>April</h2>") {
		t.Error("empty periods still get a section")
	}
	if !strings.Contains(got, "<p>No expense data available</p>") {
		t.Error("empty breakdown should carry the placeholder text")
	}
	if !strings.Contains(got, "<p>No maintenance data available</p>") {
		t.Error("empty maintenance breakdown should carry the placeholder text")
	}
	if !strings.Contains(got, "<strong>$1,900.00</strong>") {
		t.Error("March profit should be currency formatted in bold")
	}
}

package report

import (
	"testing"
	"time"

	"truckledger-backend/internal/models"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func marchFixtures() ([]models.Expense, []models.PayEntry, []models.MaintenanceLog) {
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
	return expenses, payEntries, maintenanceLogs
}

func TestGenerateMonthlyTotals(t *testing.T) {
	expenses, payEntries, maintenanceLogs := marchFixtures()

	r := Generate(expenses, payEntries, maintenanceLogs, Monthly, 2024)

	if len(r.Periods) != 12 {
		t.Fatalf("expected 12 periods, got %d", len(r.Periods))
	}
	if len(r.Buckets) != 12 {
		t.Fatalf("expected 12 buckets, got %d", len(r.Buckets))
	}

	march := r.Buckets["March"]
	if march == nil {
		t.Fatal("missing March bucket")
	}
	if march.Income != 2000 {
		t.Errorf("March income = %v, want 2000", march.Income)
	}
	if march.Expenses != 120.50 {
		t.Errorf("March expenses = %v, want 120.50", march.Expenses)
	}
	if march.Maintenance != 75 {
		t.Errorf("March maintenance = %v, want 75", march.Maintenance)
	}
	if march.Profit != 1804.50 {
		t.Errorf("March profit = %v, want 1804.50", march.Profit)
	}

	if got := march.ExpensesByCategory[models.CategoryFuel]; got != 100 {
		t.Errorf("Fuel = %v, want 100", got)
	}
	if got := march.ExpensesByCategory[models.CategoryTolls]; got != 20.50 {
		t.Errorf("Tolls = %v, want 20.50", got)
	}
	if got := march.MaintenanceByType[models.ServiceOilChange]; got != 75 {
		t.Errorf("Oil Change = %v, want 75", got)
	}
}

func TestGenerateEmptyPeriodsPresent(t *testing.T) {
	expenses, payEntries, maintenanceLogs := marchFixtures()

	r := Generate(expenses, payEntries, maintenanceLogs, Monthly, 2024)

	april := r.Buckets["April"]
	if april == nil {
		t.Fatal("missing April bucket")
	}
	if april.Income != 0 || april.Expenses != 0 || april.Maintenance != 0 || april.Profit != 0 {
		t.Errorf("April should be all zero, got %+v", april)
	}
	if len(april.ExpensesByCategory) != 0 {
		t.Errorf("April should have no category breakdown, got %v", april.ExpensesByCategory)
	}
	if len(april.MaintenanceByType) != 0 {
		t.Errorf("April should have no service breakdown, got %v", april.MaintenanceByType)
	}
}

func TestGenerateQuarterly(t *testing.T) {
	expenses := []models.Expense{
		{Date: date(2024, time.March, 31), Category: models.CategoryFuel, Amount: 50},
		{Date: date(2024, time.April, 1), Category: models.CategoryFuel, Amount: 70},
	}

	r := Generate(expenses, nil, nil, Quarterly, 2024)

	if len(r.Periods) != 4 {
		t.Fatalf("expected 4 periods, got %d", len(r.Periods))
	}
	if got := r.Buckets["Q1"].Expenses; got != 50 {
		t.Errorf("Q1 expenses = %v, want 50", got)
	}
	if got := r.Buckets["Q2"].Expenses; got != 70 {
		t.Errorf("Q2 expenses = %v, want 70", got)
	}
}

func TestGenerateAnnual(t *testing.T) {
	expenses, payEntries, maintenanceLogs := marchFixtures()

	r := Generate(expenses, payEntries, maintenanceLogs, Annual, 2024)

	if len(r.Periods) != 1 || r.Periods[0] != "2024" {
		t.Fatalf("expected single period \"2024\", got %v", r.Periods)
	}
	b := r.Buckets["2024"]
	if b.Income != 2000 || b.Expenses != 120.50 || b.Maintenance != 75 {
		t.Errorf("annual totals wrong: %+v", b)
	}
}

func TestGeneratePayEntrySpanUsesStartDate(t *testing.T) {
	payEntries := []models.PayEntry{
		{StartDate: date(2024, time.March, 28), EndDate: date(2024, time.April, 5), Amount: 1500, Client: "Acme Freight"},
	}

	r := Generate(nil, payEntries, nil, Monthly, 2024)

	if got := r.Buckets["March"].Income; got != 1500 {
		t.Errorf("March income = %v, want 1500", got)
	}
	if got := r.Buckets["April"].Income; got != 0 {
		t.Errorf("April income = %v, want 0", got)
	}
}

func TestGenerateBreakdownSumsMatchTotals(t *testing.T) {
	expenses := []models.Expense{
		{Date: date(2024, time.June, 1), Category: models.CategoryFuel, Amount: 300.25},
		{Date: date(2024, time.June, 2), Category: models.CategoryFuel, Amount: 99.75},
		{Date: date(2024, time.June, 3), Category: models.CategoryInsurance, Amount: 450},
		{Date: date(2024, time.June, 4), Category: models.CategoryOther, Amount: 10},
	}

	r := Generate(expenses, nil, nil, Monthly, 2024)

	june := r.Buckets["June"]
	var sum float64
	for _, v := range june.ExpensesByCategory {
		sum += v
	}
	if sum != june.Expenses {
		t.Errorf("category sum %v != total %v", sum, june.Expenses)
	}
}

func TestGenerateNegativeProfit(t *testing.T) {
	expenses := []models.Expense{
		{Date: date(2024, time.May, 1), Category: models.CategoryFuel, Amount: 500},
	}
	maintenanceLogs := []models.MaintenanceLog{
		{Date: date(2024, time.May, 2), ServiceType: models.ServiceEngineRepair, Cost: 1200},
	}

	r := Generate(expenses, nil, maintenanceLogs, Monthly, 2024)

	if got := r.Buckets["May"].Profit; got != -1700 {
		t.Errorf("May profit = %v, want -1700", got)
	}
}

func TestGenerateDoesNotMutateInputs(t *testing.T) {
	expenses, payEntries, maintenanceLogs := marchFixtures()

	first := Generate(expenses, payEntries, maintenanceLogs, Monthly, 2024)
	second := Generate(expenses, payEntries, maintenanceLogs, Monthly, 2024)

	if first.Buckets["March"].Profit != second.Buckets["March"].Profit {
		t.Errorf("repeated runs disagree: %v vs %v",
			first.Buckets["March"].Profit, second.Buckets["March"].Profit)
	}
	if expenses[0].Amount != 100 {
		t.Errorf("input expense mutated: %v", expenses[0].Amount)
	}
}

func TestGranularityValid(t *testing.T) {
	tests := []struct {
		g    Granularity
		want bool
	}{
		{Monthly, true},
		{Quarterly, true},
		{Annual, true},
		{Granularity("weekly"), false},
		{Granularity(""), false},
	}

	for _, tt := range tests {
		if got := tt.g.Valid(); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.g, got, tt.want)
		}
	}
}

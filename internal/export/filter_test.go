package export

import (
	"testing"
	"time"

	"truckledger-backend/internal/models"
)

func TestFilterExpensesInclusiveBounds(t *testing.T) {
	from := date(2024, time.March, 1)
	to := date(2024, time.March, 31)

	expenses := []models.Expense{
		{Description: "before", Date: date(2024, time.February, 29)},
		{Description: "first day", Date: from},
		{Description: "middle", Date: date(2024, time.March, 15)},
		{Description: "last day", Date: to},
		{Description: "after", Date: date(2024, time.April, 1)},
	}

	got := FilterExpenses(expenses, from, to)

	if len(got) != 3 {
		t.Fatalf("expected 3 expenses, got %d", len(got))
	}
	if got[0].Description != "first day" || got[2].Description != "last day" {
		t.Errorf("range bounds should be inclusive, got %v", got)
	}
}

func TestFilterPayEntriesOverlap(t *testing.T) {
	from := date(2024, time.March, 1)
	to := date(2024, time.March, 31)

	payEntries := []models.PayEntry{
		{Client: "ends inside", StartDate: date(2024, time.February, 26), EndDate: date(2024, time.March, 3)},
		{Client: "inside", StartDate: date(2024, time.March, 10), EndDate: date(2024, time.March, 16)},
		{Client: "starts inside", StartDate: date(2024, time.March, 28), EndDate: date(2024, time.April, 5)},
		{Client: "outside", StartDate: date(2024, time.April, 10), EndDate: date(2024, time.April, 16)},
	}

	got := FilterPayEntries(payEntries, from, to)

	if len(got) != 3 {
		t.Fatalf("expected 3 pay entries, got %d", len(got))
	}
	for _, pay := range got {
		if pay.Client == "outside" {
			t.Error("entry outside the range should be filtered out")
		}
	}
}

func TestFilterMaintenanceLogs(t *testing.T) {
	from := date(2024, time.January, 1)
	to := date(2024, time.December, 31)

	logs := []models.MaintenanceLog{
		{Description: "prior year", Date: date(2023, time.December, 31)},
		{Description: "in range", Date: date(2024, time.July, 4)},
	}

	got := FilterMaintenanceLogs(logs, from, to)

	if len(got) != 1 || got[0].Description != "in range" {
		t.Errorf("expected only the in-range log, got %v", got)
	}
}

func TestDataTypeValid(t *testing.T) {
	tests := []struct {
		t    DataType
		want bool
	}{
		{DataExpenses, true},
		{DataPay, true},
		{DataMaintenance, true},
		{DataAll, true},
		{DataType("trucks"), false},
		{DataType(""), false},
	}

	for _, tt := range tests {
		if got := tt.t.Valid(); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

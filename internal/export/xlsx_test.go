package export

import (
	"testing"
	"time"

	"truckledger-backend/internal/models"
	"truckledger-backend/internal/report"
)

func TestWriteTaxReportXLSXQuarterly(t *testing.T) {
	expenses := []models.Expense{
		{Date: date(2024, time.March, 5), Category: models.CategoryFuel, Amount: 100},
	}
	payEntries := []models.PayEntry{
		{StartDate: date(2024, time.March, 4), EndDate: date(2024, time.March, 10), Amount: 2000, Client: "Acme Freight"},
	}

	r := report.Generate(expenses, payEntries, nil, report.Quarterly, 2024)

	f, err := WriteTaxReportXLSX(r)
	if err != nil {
		t.Fatalf("WriteTaxReportXLSX: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 4 {
		t.Fatalf("expected 4 sheets, got %d: %v", len(sheets), sheets)
	}
	for i, want := range []string{"Q1", "Q2", "Q3", "Q4"} {
		if sheets[i] != want {
			t.Errorf("sheet[%d] = %q, want %q", i, sheets[i], want)
		}
	}

	income, err := f.GetCellValue("Q1", "B2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if income != "2000" {
		t.Errorf("Q1 income cell = %q, want 2000", income)
	}

	profit, err := f.GetCellValue("Q1", "B5")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if profit != "1900" {
		t.Errorf("Q1 profit cell = %q, want 1900", profit)
	}

	label, err := f.GetCellValue("Q1", "A7")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if label != "Expenses by Category" {
		t.Errorf("A7 = %q, want breakdown heading", label)
	}

	fuel, err := f.GetCellValue("Q1", "B8")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if fuel != "100" {
		t.Errorf("Q1 fuel cell = %q, want 100", fuel)
	}
}

func TestWriteTaxReportXLSXWritesBuffer(t *testing.T) {
	r := report.Generate(nil, nil, nil, report.Annual, 2024)

	f, err := WriteTaxReportXLSX(r)
	if err != nil {
		t.Fatalf("WriteTaxReportXLSX: %v", err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("workbook buffer should not be empty")
	}
}

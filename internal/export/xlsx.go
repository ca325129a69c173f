package export

import (
	"fmt"
	"strconv"

	"truckledger-backend/internal/report"

	"github.com/xuri/excelize/v2"
)

// WriteTaxReportXLSX builds a workbook with one sheet per period bucket.
// Each sheet carries the summary totals followed by the category and
// service-type breakdowns, in the same order as the delimited export.
func WriteTaxReportXLSX(r *report.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	for i, period := range r.Periods {
		bucket := r.Buckets[period]

		sheet := period
		if i == 0 {
			// excelize always creates "Sheet1"; rename it instead of leaving
			// an empty sheet behind
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("add sheet %s: %w", sheet, err)
			}
		}

		row := 1
		setRow := func(label string, value interface{}) error {
			if err := f.SetCellValue(sheet, "A"+strconv.Itoa(row), label); err != nil {
				return err
			}
			if value != nil {
				if err := f.SetCellValue(sheet, "B"+strconv.Itoa(row), value); err != nil {
					return err
				}
			}
			row++
			return nil
		}

		if err := setRow("Category", "Amount"); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}
		if err := setRow("Income", bucket.Income); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}
		if err := setRow("Expenses", bucket.Expenses); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}
		if err := setRow("Maintenance", bucket.Maintenance); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}
		if err := setRow("Profit", bucket.Profit); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}

		row++
		if err := setRow("Expenses by Category", nil); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}
		for _, cat := range sortedCategories(bucket.ExpensesByCategory) {
			if err := setRow(string(cat), bucket.ExpensesByCategory[cat]); err != nil {
				return nil, fmt.Errorf("sheet %s: %w", sheet, err)
			}
		}

		row++
		if err := setRow("Maintenance by Type", nil); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}
		for _, st := range sortedServiceTypes(bucket.MaintenanceByType) {
			if err := setRow(string(st), bucket.MaintenanceByType[st]); err != nil {
				return nil, fmt.Errorf("sheet %s: %w", sheet, err)
			}
		}
	}

	return f, nil
}

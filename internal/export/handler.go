package export

import (
	"fmt"
	"strconv"
	"time"

	"truckledger-backend/internal/auth"
	"truckledger-backend/internal/database"
	"truckledger-backend/internal/models"
	"truckledger-backend/internal/report"

	"github.com/gofiber/fiber/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf" // printable HTML handed to the browser's print-to-PDF
	FormatXLSX Format = "xlsx"
)

// fetch order is insertion order (ids are monotonic), which is the row order
// contract of the raw delimited export
func fetchExpenses(userID uint) ([]models.Expense, error) {
	var rows []models.Expense
	if err := database.DB.Where("user_id = ?", userID).Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func fetchPayEntries(userID uint) ([]models.PayEntry, error) {
	var rows []models.PayEntry
	if err := database.DB.Where("user_id = ?", userID).Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func fetchMaintenanceLogs(userID uint) ([]models.MaintenanceLog, error) {
	var rows []models.MaintenanceLog
	if err := database.DB.Where("user_id = ?", userID).Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func fetchTrucksMap(userID uint) (map[uint]string, error) {
	var trucks []models.Truck
	if err := database.DB.Where("user_id = ?", userID).Find(&trucks).Error; err != nil {
		return nil, err
	}
	trucksMap := make(map[uint]string, len(trucks))
	for _, t := range trucks {
		trucksMap[t.ID] = t.Name
	}
	return trucksMap, nil
}

// GET /api/export/data?type=all&format=csv&from=2024-01-01&to=2024-12-31
// Raw export: emits the filtered records as-is, without aggregation.
func DataExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		dataType := DataType(c.Query("type", string(DataAll)))
		if !dataType.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "type must be one of expenses, pay, maintenance, all")
		}

		format := Format(c.Query("format", string(FormatCSV)))
		if format != FormatCSV && format != FormatPDF {
			return fiber.NewError(fiber.StatusBadRequest, "format must be csv or pdf")
		}

		fromStr := c.Query("from")
		toStr := c.Query("to")
		if fromStr == "" || toStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "from and to dates are required (YYYY-MM-DD)")
		}
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "from date is invalid")
		}
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "to date is invalid")
		}
		if to.Before(from) {
			return fiber.NewError(fiber.StatusBadRequest, "to date must not be before from date")
		}

		var expenses []models.Expense
		var payEntries []models.PayEntry
		var maintenanceLogs []models.MaintenanceLog

		if dataType == DataExpenses || dataType == DataAll {
			rows, err := fetchExpenses(userID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not load expenses")
			}
			expenses = FilterExpenses(rows, from, to)
		}
		if dataType == DataPay || dataType == DataAll {
			rows, err := fetchPayEntries(userID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not load pay entries")
			}
			payEntries = FilterPayEntries(rows, from, to)
		}
		if dataType == DataMaintenance || dataType == DataAll {
			rows, err := fetchMaintenanceLogs(userID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not load maintenance logs")
			}
			maintenanceLogs = FilterMaintenanceLogs(rows, from, to)
		}

		if format == FormatPDF {
			trucksMap, err := fetchTrucksMap(userID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not load trucks")
			}
			doc := WriteRawPrintDocument(expenses, payEntries, maintenanceLogs, trucksMap, from, to)
			c.Set("Content-Type", "text/html; charset=utf-8")
			return c.SendString(doc)
		}

		filename := "trucking-data-" + time.Now().Format("2006-01-02") + ".csv"
		c.Set("Content-Type", "text/csv;charset=utf-8")
		c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		return c.SendString(WriteRawCSV(expenses, payEntries, maintenanceLogs))
	}
}

// GET /api/export/tax-report?type=monthly&year=2024&format=csv
// Tax export: runs the aggregation engine over the year's records and emits
// the report in the requested format.
func TaxReportExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		granularity := report.Granularity(c.Query("type", string(report.Annual)))
		if !granularity.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "type must be one of monthly, quarterly, annual")
		}

		format := Format(c.Query("format", string(FormatCSV)))
		if format != FormatCSV && format != FormatPDF && format != FormatXLSX {
			return fiber.NewError(fiber.StatusBadRequest, "format must be csv, pdf or xlsx")
		}

		year, err := parseYear(c.Query("year"))
		if err != nil {
			return err
		}

		expenses, payEntries, maintenanceLogs, err := FetchYearRecords(userID, year)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load records")
		}

		rep := report.Generate(expenses, payEntries, maintenanceLogs, granularity, year)

		switch format {
		case FormatPDF:
			c.Set("Content-Type", "text/html; charset=utf-8")
			return c.SendString(WriteTaxReportPrintDocument(rep))

		case FormatXLSX:
			f, err := WriteTaxReportXLSX(rep)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not build workbook")
			}
			buf, err := f.WriteToBuffer()
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not write workbook")
			}
			filename := fmt.Sprintf("tax-report-%d-%s.xlsx", year, granularity)
			c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
			return c.Send(buf.Bytes())

		default:
			filename := fmt.Sprintf("tax-report-%d-%s.csv", year, granularity)
			c.Set("Content-Type", "text/csv;charset=utf-8")
			c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
			return c.SendString(WriteTaxReportCSV(rep))
		}
	}
}

// parseYear rejects anything but a plain numeric year; partial parses like
// "2024abc" are errors.
func parseYear(s string) (int, error) {
	if s == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, "year is required")
	}
	year, err := strconv.Atoi(s)
	if err != nil || year < 2000 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "year is invalid")
	}
	return year, nil
}

// FetchYearRecords loads the owner's records restricted to the given
// calendar year. Pay entries are attributed to their start period by the
// aggregation engine, so only entries starting in the year are loaded.
func FetchYearRecords(userID uint, year int) ([]models.Expense, []models.PayEntry, []models.MaintenanceLog, error) {
	firstDay := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	lastDay := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	var expenses []models.Expense
	if err := database.DB.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, firstDay, lastDay).
		Order("id asc").Find(&expenses).Error; err != nil {
		return nil, nil, nil, err
	}

	var payEntries []models.PayEntry
	if err := database.DB.
		Where("user_id = ? AND start_date >= ? AND start_date <= ?", userID, firstDay, lastDay).
		Order("id asc").Find(&payEntries).Error; err != nil {
		return nil, nil, nil, err
	}

	var maintenanceLogs []models.MaintenanceLog
	if err := database.DB.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, firstDay, lastDay).
		Order("id asc").Find(&maintenanceLogs).Error; err != nil {
		return nil, nil, nil, err
	}

	return expenses, payEntries, maintenanceLogs, nil
}

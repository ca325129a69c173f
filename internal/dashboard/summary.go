package dashboard

import (
	"strconv"
	"time"

	"truckledger-backend/internal/auth"
	"truckledger-backend/internal/database"
	"truckledger-backend/internal/models"
	"truckledger-backend/internal/report"

	"github.com/gofiber/fiber/v2"
)

type SummaryPoint struct {
	Label       string  `json:"label"` // month name
	Income      float64 `json:"income"`
	Expenses    float64 `json:"expenses"`
	Maintenance float64 `json:"maintenance"`
	Profit      float64 `json:"profit"`
}

type SummaryGrandTotals struct {
	Income      float64 `json:"income"`
	Expenses    float64 `json:"expenses"`
	Maintenance float64 `json:"maintenance"`
	Profit      float64 `json:"profit"`
}

type SummaryResponse struct {
	Year                int                `json:"year"`
	Points              []SummaryPoint     `json:"points"`
	GrandTotals         SummaryGrandTotals `json:"grand_totals"`
	TruckCount          int64              `json:"truck_count"`
	UpcomingMaintenance int64              `json:"upcoming_maintenance"`
}

// GET /api/dashboard/summary?year=2025
// One point per month of the year plus year totals, a truck count, and the
// number of services due in the next 30 days.
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		year := time.Now().Year()
		if yearStr := c.Query("year"); yearStr != "" {
			parsed, err := strconv.Atoi(yearStr)
			if err != nil || parsed < 2000 {
				return fiber.NewError(fiber.StatusBadRequest, "year is invalid")
			}
			year = parsed
		}

		firstDay := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		lastDay := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

		var expenses []models.Expense
		if err := database.DB.
			Where("user_id = ? AND date >= ? AND date <= ?", userID, firstDay, lastDay).
			Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load expenses")
		}

		var payEntries []models.PayEntry
		if err := database.DB.
			Where("user_id = ? AND start_date >= ? AND start_date <= ?", userID, firstDay, lastDay).
			Find(&payEntries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load pay entries")
		}

		var maintenanceLogs []models.MaintenanceLog
		if err := database.DB.
			Where("user_id = ? AND date >= ? AND date <= ?", userID, firstDay, lastDay).
			Find(&maintenanceLogs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load maintenance logs")
		}

		rep := report.Generate(expenses, payEntries, maintenanceLogs, report.Monthly, year)

		points := make([]SummaryPoint, 0, len(rep.Periods))
		grand := SummaryGrandTotals{}

		for _, period := range rep.Periods {
			bucket := rep.Buckets[period]
			points = append(points, SummaryPoint{
				Label:       period,
				Income:      bucket.Income,
				Expenses:    bucket.Expenses,
				Maintenance: bucket.Maintenance,
				Profit:      bucket.Profit,
			})

			grand.Income += bucket.Income
			grand.Expenses += bucket.Expenses
			grand.Maintenance += bucket.Maintenance
			grand.Profit += bucket.Profit
		}

		var truckCount int64
		if err := database.DB.Model(&models.Truck{}).
			Where("user_id = ?", userID).
			Count(&truckCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count trucks")
		}

		now := time.Now().UTC()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		cutoff := today.AddDate(0, 0, 30)

		var upcoming int64
		if err := database.DB.Model(&models.MaintenanceLog{}).
			Where("user_id = ? AND next_service_date IS NOT NULL AND next_service_date >= ? AND next_service_date <= ?",
				userID, today, cutoff).
			Count(&upcoming).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count upcoming maintenance")
		}

		return c.JSON(SummaryResponse{
			Year:                year,
			Points:              points,
			GrandTotals:         grand,
			TruckCount:          truckCount,
			UpcomingMaintenance: upcoming,
		})
	}
}

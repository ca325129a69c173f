package report

import (
	"strconv"
	"time"

	"truckledger-backend/internal/auth"
	"truckledger-backend/internal/database"
	"truckledger-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/reports/tax?type=monthly&year=2024
func TaxReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		granularity := Granularity(c.Query("type", string(Annual)))
		if !granularity.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "type must be one of monthly, quarterly, annual")
		}

		yearStr := c.Query("year")
		if yearStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "year is required")
		}
		year, err := strconv.Atoi(yearStr)
		if err != nil || year < 2000 {
			return fiber.NewError(fiber.StatusBadRequest, "year is invalid")
		}

		firstDay := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		lastDay := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

		var expenses []models.Expense
		if err := database.DB.
			Where("user_id = ? AND date >= ? AND date <= ?", userID, firstDay, lastDay).
			Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load expenses")
		}

		// a settlement is attributed to its start period, so only entries
		// starting in the report year contribute
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

		return c.JSON(Generate(expenses, payEntries, maintenanceLogs, granularity, year))
	}
}

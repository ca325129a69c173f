package pay

import (
	"fmt"
	"strings"
	"time"

	"truckledger-backend/internal/audit"
	"truckledger-backend/internal/auth"
	"truckledger-backend/internal/database"
	"truckledger-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreatePayEntryRequest struct {
	StartDate string  `json:"start_date"` // "2025-12-01"
	EndDate   string  `json:"end_date"`
	Amount    float64 `json:"amount"`
	Client    string  `json:"client"`
	Notes     string  `json:"notes"`
}

type UpdatePayEntryRequest struct {
	StartDate *string  `json:"start_date"`
	EndDate   *string  `json:"end_date"`
	Amount    *float64 `json:"amount"`
	Client    *string  `json:"client"`
	Notes     *string  `json:"notes"`
}

type PayEntryResponse struct {
	ID        uint    `json:"id"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Amount    float64 `json:"amount"`
	Client    string  `json:"client"`
	Notes     string  `json:"notes"`
}

func toPayEntryResponse(pay models.PayEntry) PayEntryResponse {
	return PayEntryResponse{
		ID:        pay.ID,
		StartDate: pay.StartDate.Format("2006-01-02"),
		EndDate:   pay.EndDate.Format("2006-01-02"),
		Amount:    pay.Amount,
		Client:    pay.Client,
		Notes:     pay.Notes,
	}
}

func getUserInfo(c *fiber.Ctx) (uint, string, error) {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return 0, "", err
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "Could not load user")
	}

	return userID, user.Name, nil
}

// POST /api/pay-entries
func CreatePayEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, err := getUserInfo(c)
		if err != nil {
			return err
		}

		var body CreatePayEntryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "amount must be greater than 0")
		}

		body.Client = strings.TrimSpace(body.Client)
		if body.Client == "" {
			return fiber.NewError(fiber.StatusBadRequest, "client is required")
		}

		start, err := time.Parse("2006-01-02", body.StartDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "start_date must be in 'YYYY-MM-DD' format")
		}
		end, err := time.Parse("2006-01-02", body.EndDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "end_date must be in 'YYYY-MM-DD' format")
		}
		if end.Before(start) {
			return fiber.NewError(fiber.StatusBadRequest, "end_date must not be before start_date")
		}

		pay := models.PayEntry{
			UserID:    userID,
			StartDate: start,
			EndDate:   end,
			Amount:    body.Amount,
			Client:    body.Client,
			Notes:     body.Notes,
		}

		if err := database.DB.Create(&pay).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save pay entry")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "pay_entry",
			EntityID:    pay.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Pay entry added: %s - $%.2f", pay.Client, pay.Amount),
			Before:      nil,
			After:       pay,
		}); logErr != nil {
			fmt.Printf("could not write audit log: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toPayEntryResponse(pay))
	}
}

// GET /api/pay-entries?from=...&to=...&client=...
// Range filtering matches the export rule: an entry qualifies when its start
// or end date falls inside the range.
func ListPayEntriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.PayEntry{}).Where("user_id = ?", userID)

		fromStr := c.Query("from")
		toStr := c.Query("to")
		if fromStr != "" && toStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from is invalid")
			}
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to is invalid")
			}
			dbq = dbq.Where("(start_date >= ? AND start_date <= ?) OR (end_date >= ? AND end_date <= ?)",
				from, to, from, to)
		} else if fromStr != "" || toStr != "" {
			return fiber.NewError(fiber.StatusBadRequest, "from and to must be given together")
		}

		if client := strings.TrimSpace(c.Query("client")); client != "" {
			dbq = dbq.Where("client = ?", client)
		}

		var rows []models.PayEntry
		if err := dbq.Order("start_date asc, id asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list pay entries")
		}

		resp := make([]PayEntryResponse, 0, len(rows))
		for _, r := range rows {
			resp = append(resp, toPayEntryResponse(r))
		}

		return c.JSON(resp)
	}
}

// PUT /api/pay-entries/:id
func UpdatePayEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, err := getUserInfo(c)
		if err != nil {
			return err
		}

		var pay models.PayEntry
		if err := database.DB.First(&pay, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pay entry not found")
		}
		before := pay

		var body UpdatePayEntryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.StartDate != nil {
			start, err := time.Parse("2006-01-02", *body.StartDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "start_date must be in 'YYYY-MM-DD' format")
			}
			pay.StartDate = start
		}
		if body.EndDate != nil {
			end, err := time.Parse("2006-01-02", *body.EndDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "end_date must be in 'YYYY-MM-DD' format")
			}
			pay.EndDate = end
		}
		if pay.EndDate.Before(pay.StartDate) {
			return fiber.NewError(fiber.StatusBadRequest, "end_date must not be before start_date")
		}

		if body.Amount != nil {
			if *body.Amount <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "amount must be greater than 0")
			}
			pay.Amount = *body.Amount
		}

		if body.Client != nil {
			client := strings.TrimSpace(*body.Client)
			if client == "" {
				return fiber.NewError(fiber.StatusBadRequest, "client cannot be empty")
			}
			pay.Client = client
		}

		if body.Notes != nil {
			pay.Notes = *body.Notes
		}

		if err := database.DB.Save(&pay).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update pay entry")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "pay_entry",
			EntityID:    pay.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Pay entry updated: %s - $%.2f", pay.Client, pay.Amount),
			Before:      before,
			After:       pay,
		}); logErr != nil {
			fmt.Printf("could not write audit log: %v\n", logErr)
		}

		return c.JSON(toPayEntryResponse(pay))
	}
}

// DELETE /api/pay-entries/:id
func DeletePayEntryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, err := getUserInfo(c)
		if err != nil {
			return err
		}

		var pay models.PayEntry
		if err := database.DB.First(&pay, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pay entry not found")
		}

		if err := database.DB.Delete(&pay).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete pay entry")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "pay_entry",
			EntityID:    pay.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Pay entry deleted: %s - $%.2f", pay.Client, pay.Amount),
			Before:      pay,
			After:       nil,
		}); logErr != nil {
			fmt.Printf("could not write audit log: %v\n", logErr)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

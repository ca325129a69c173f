package expense

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

type CreateExpenseRequest struct {
	Date        string  `json:"date"` // "2025-12-09"
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	TruckID     *uint   `json:"truck_id"`
}

type UpdateExpenseRequest struct {
	Date        *string  `json:"date"`
	Category    *string  `json:"category"`
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
	TruckID     *uint    `json:"truck_id"`
}

type ExpenseResponse struct {
	ID          uint    `json:"id"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	TruckID     *uint   `json:"truck_id"`
}

func toExpenseResponse(exp models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          exp.ID,
		Date:        exp.Date.Format("2006-01-02"),
		Category:    string(exp.Category),
		Amount:      exp.Amount,
		Description: exp.Description,
		TruckID:     exp.TruckID,
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

// truckBelongsToUser rejects truck references across account boundaries.
func truckBelongsToUser(truckID, userID uint) error {
	var truck models.Truck
	if err := database.DB.First(&truck, "id = ? AND user_id = ?", truckID, userID).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Truck not found")
	}
	return nil
}

// GET /api/expense-categories
func ListExpenseCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(models.ExpenseCategories)
	}
}

// POST /api/expenses
func CreateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, err := getUserInfo(c)
		if err != nil {
			return err
		}

		var body CreateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "amount must be greater than 0")
		}

		body.Description = strings.TrimSpace(body.Description)
		if body.Description == "" {
			return fiber.NewError(fiber.StatusBadRequest, "description is required")
		}

		category := models.ExpenseCategory(body.Category)
		if !category.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "category is invalid")
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be in 'YYYY-MM-DD' format")
		}

		if body.TruckID != nil {
			if err := truckBelongsToUser(*body.TruckID, userID); err != nil {
				return err
			}
		}

		exp := models.Expense{
			UserID:      userID,
			Date:        d,
			Category:    category,
			Amount:      body.Amount,
			Description: body.Description,
			TruckID:     body.TruckID,
		}

		if err := database.DB.Create(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save expense")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "expense",
			EntityID:    exp.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Expense added: %s - $%.2f", exp.Category, exp.Amount),
			Before:      nil,
			After:       exp,
		}); logErr != nil {
			fmt.Printf("could not write audit log: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toExpenseResponse(exp))
	}
}

// GET /api/expenses?from=...&to=...&category=...&truck_id=...
func ListExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.Expense{}).Where("user_id = ?", userID)

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from is invalid")
			}
			dbq = dbq.Where("date >= ?", from)
		}

		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to is invalid")
			}
			dbq = dbq.Where("date <= ?", to)
		}

		if catStr := c.Query("category"); catStr != "" {
			if !models.ExpenseCategory(catStr).Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "category is invalid")
			}
			dbq = dbq.Where("category = ?", catStr)
		}

		if truckStr := c.Query("truck_id"); truckStr != "" {
			var tid uint
			if _, err := fmt.Sscan(truckStr, &tid); err != nil || tid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "truck_id is invalid")
			}
			dbq = dbq.Where("truck_id = ?", tid)
		}

		var rows []models.Expense
		if err := dbq.Order("date asc, id asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list expenses")
		}

		resp := make([]ExpenseResponse, 0, len(rows))
		for _, r := range rows {
			resp = append(resp, toExpenseResponse(r))
		}

		return c.JSON(resp)
	}
}

// PUT /api/expenses/:id
func UpdateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, err := getUserInfo(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var exp models.Expense
		if err := database.DB.First(&exp, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}
		before := exp

		var body UpdateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Date != nil {
			d, err := time.Parse("2006-01-02", *body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be in 'YYYY-MM-DD' format")
			}
			exp.Date = d
		}

		if body.Category != nil {
			category := models.ExpenseCategory(*body.Category)
			if !category.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "category is invalid")
			}
			exp.Category = category
		}

		if body.Amount != nil {
			if *body.Amount <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "amount must be greater than 0")
			}
			exp.Amount = *body.Amount
		}

		if body.Description != nil {
			desc := strings.TrimSpace(*body.Description)
			if desc == "" {
				return fiber.NewError(fiber.StatusBadRequest, "description cannot be empty")
			}
			exp.Description = desc
		}

		if body.TruckID != nil {
			if err := truckBelongsToUser(*body.TruckID, userID); err != nil {
				return err
			}
			exp.TruckID = body.TruckID
		}

		if err := database.DB.Save(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update expense")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "expense",
			EntityID:    exp.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Expense updated: %s - $%.2f", exp.Category, exp.Amount),
			Before:      before,
			After:       exp,
		}); logErr != nil {
			fmt.Printf("could not write audit log: %v\n", logErr)
		}

		return c.JSON(toExpenseResponse(exp))
	}
}

// DELETE /api/expenses/:id
func DeleteExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, err := getUserInfo(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var exp models.Expense
		if err := database.DB.First(&exp, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}

		if err := database.DB.Delete(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete expense")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "expense",
			EntityID:    exp.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Expense deleted: %s - $%.2f", exp.Category, exp.Amount),
			Before:      exp,
			After:       nil,
		}); logErr != nil {
			fmt.Printf("could not write audit log: %v\n", logErr)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

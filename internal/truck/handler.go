package truck

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

type CreateTruckRequest struct {
	Name         string `json:"name"`
	Identifier   string `json:"identifier"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	VIN          string `json:"vin"`
	LicensePlate string `json:"license_plate"`
	Notes        string `json:"notes"`
}

type UpdateTruckRequest struct {
	Name         *string `json:"name"`
	Identifier   *string `json:"identifier"`
	Make         *string `json:"make"`
	Model        *string `json:"model"`
	Year         *int    `json:"year"`
	VIN          *string `json:"vin"`
	LicensePlate *string `json:"license_plate"`
	Notes        *string `json:"notes"`
}

type TruckResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Identifier   string `json:"identifier"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	VIN          string `json:"vin"`
	LicensePlate string `json:"license_plate"`
	Notes        string `json:"notes"`
}

func toTruckResponse(t models.Truck) TruckResponse {
	return TruckResponse{
		ID:           t.ID,
		Name:         t.Name,
		Identifier:   t.Identifier,
		Make:         t.Make,
		Model:        t.Model,
		Year:         t.Year,
		VIN:          t.VIN,
		LicensePlate: t.LicensePlate,
		Notes:        t.Notes,
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

func validateYear(year int) error {
	if year < 1950 || year > time.Now().Year()+1 {
		return fiber.NewError(fiber.StatusBadRequest, "year is out of range")
	}
	return nil
}

// POST /api/trucks
func CreateTruckHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, err := getUserInfo(c)
		if err != nil {
			return err
		}

		var body CreateTruckRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}
		if err := validateYear(body.Year); err != nil {
			return err
		}

		truck := models.Truck{
			UserID:       userID,
			Name:         body.Name,
			Identifier:   strings.TrimSpace(body.Identifier),
			Make:         strings.TrimSpace(body.Make),
			Model:        strings.TrimSpace(body.Model),
			Year:         body.Year,
			VIN:          strings.TrimSpace(body.VIN),
			LicensePlate: strings.TrimSpace(body.LicensePlate),
			Notes:        body.Notes,
		}

		if err := database.DB.Create(&truck).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save truck")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "truck",
			EntityID:    truck.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Truck added: %s", truck.Name),
			Before:      nil,
			After:       truck,
		}); logErr != nil {
			fmt.Printf("could not write audit log: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toTruckResponse(truck))
	}
}

// GET /api/trucks
func ListTrucksHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		var trucks []models.Truck
		if err := database.DB.Where("user_id = ?", userID).Order("name asc, id asc").Find(&trucks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list trucks")
		}

		resp := make([]TruckResponse, 0, len(trucks))
		for _, t := range trucks {
			resp = append(resp, toTruckResponse(t))
		}

		return c.JSON(resp)
	}
}

// GET /api/trucks/:id
func GetTruckHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		var truck models.Truck
		if err := database.DB.First(&truck, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Truck not found")
		}

		return c.JSON(toTruckResponse(truck))
	}
}

// PUT /api/trucks/:id
func UpdateTruckHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, err := getUserInfo(c)
		if err != nil {
			return err
		}

		var truck models.Truck
		if err := database.DB.First(&truck, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Truck not found")
		}
		before := truck

		var body UpdateTruckRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name cannot be empty")
			}
			truck.Name = name
		}
		if body.Identifier != nil {
			truck.Identifier = strings.TrimSpace(*body.Identifier)
		}
		if body.Make != nil {
			truck.Make = strings.TrimSpace(*body.Make)
		}
		if body.Model != nil {
			truck.Model = strings.TrimSpace(*body.Model)
		}
		if body.Year != nil {
			if err := validateYear(*body.Year); err != nil {
				return err
			}
			truck.Year = *body.Year
		}
		if body.VIN != nil {
			truck.VIN = strings.TrimSpace(*body.VIN)
		}
		if body.LicensePlate != nil {
			truck.LicensePlate = strings.TrimSpace(*body.LicensePlate)
		}
		if body.Notes != nil {
			truck.Notes = *body.Notes
		}

		if err := database.DB.Save(&truck).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update truck")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "truck",
			EntityID:    truck.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Truck updated: %s", truck.Name),
			Before:      before,
			After:       truck,
		}); logErr != nil {
			fmt.Printf("could not write audit log: %v\n", logErr)
		}

		return c.JSON(toTruckResponse(truck))
	}
}

// DELETE /api/trucks/:id
// Expense references to the truck are detached rather than deleted;
// maintenance logs require a truck, so they block the delete.
func DeleteTruckHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, err := getUserInfo(c)
		if err != nil {
			return err
		}

		var truck models.Truck
		if err := database.DB.First(&truck, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Truck not found")
		}

		var logCount int64
		if err := database.DB.Model(&models.MaintenanceLog{}).
			Where("truck_id = ? AND user_id = ?", truck.ID, userID).
			Count(&logCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not check maintenance logs")
		}
		if logCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Truck has maintenance logs; delete them first")
		}

		if err := database.DB.Model(&models.Expense{}).
			Where("truck_id = ? AND user_id = ?", truck.ID, userID).
			Update("truck_id", nil).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not detach expenses")
		}

		if err := database.DB.Delete(&truck).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete truck")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "truck",
			EntityID:    truck.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Truck deleted: %s", truck.Name),
			Before:      truck,
			After:       nil,
		}); logErr != nil {
			fmt.Printf("could not write audit log: %v\n", logErr)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

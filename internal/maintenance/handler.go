package maintenance

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"truckledger-backend/internal/audit"
	"truckledger-backend/internal/auth"
	"truckledger-backend/internal/database"
	"truckledger-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateMaintenanceLogRequest struct {
	Date               string   `json:"date"` // "2025-12-09"
	TruckID            uint     `json:"truck_id"`
	ServiceType        string   `json:"service_type"`
	Mileage            float64  `json:"mileage"`
	Cost               float64  `json:"cost"`
	Description        string   `json:"description"`
	NextServiceDate    *string  `json:"next_service_date"`
	NextServiceMileage *float64 `json:"next_service_mileage"`
}

type UpdateMaintenanceLogRequest struct {
	Date               *string  `json:"date"`
	TruckID            *uint    `json:"truck_id"`
	ServiceType        *string  `json:"service_type"`
	Mileage            *float64 `json:"mileage"`
	Cost               *float64 `json:"cost"`
	Description        *string  `json:"description"`
	NextServiceDate    *string  `json:"next_service_date"`
	NextServiceMileage *float64 `json:"next_service_mileage"`
}

type MaintenanceLogResponse struct {
	ID                 uint     `json:"id"`
	Date               string   `json:"date"`
	TruckID            uint     `json:"truck_id"`
	ServiceType        string   `json:"service_type"`
	Mileage            float64  `json:"mileage"`
	Cost               float64  `json:"cost"`
	Description        string   `json:"description"`
	NextServiceDate    *string  `json:"next_service_date"`
	NextServiceMileage *float64 `json:"next_service_mileage"`
}

func toMaintenanceLogResponse(ml models.MaintenanceLog) MaintenanceLogResponse {
	resp := MaintenanceLogResponse{
		ID:                 ml.ID,
		Date:               ml.Date.Format("2006-01-02"),
		TruckID:            ml.TruckID,
		ServiceType:        string(ml.ServiceType),
		Mileage:            ml.Mileage,
		Cost:               ml.Cost,
		Description:        ml.Description,
		NextServiceMileage: ml.NextServiceMileage,
	}
	if ml.NextServiceDate != nil {
		formatted := ml.NextServiceDate.Format("2006-01-02")
		resp.NextServiceDate = &formatted
	}
	return resp
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

func truckBelongsToUser(truckID, userID uint) error {
	var truck models.Truck
	if err := database.DB.First(&truck, "id = ? AND user_id = ?", truckID, userID).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Truck not found")
	}
	return nil
}

func validateCost(cost float64) error {
	if cost <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "cost must be greater than 0")
	}
	return nil
}

func validateMileage(mileage float64) error {
	if mileage <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "mileage must be greater than 0")
	}
	return nil
}

func validateDescription(s string) (string, error) {
	desc := strings.TrimSpace(s)
	if desc == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "description is required")
	}
	return desc, nil
}

// GET /api/service-types
func ListServiceTypesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(models.ServiceTypes)
	}
}

// POST /api/maintenance-logs
func CreateMaintenanceLogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, err := getUserInfo(c)
		if err != nil {
			return err
		}

		var body CreateMaintenanceLogRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.TruckID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "truck_id is required")
		}
		if err := truckBelongsToUser(body.TruckID, userID); err != nil {
			return err
		}

		if err := validateCost(body.Cost); err != nil {
			return err
		}
		if err := validateMileage(body.Mileage); err != nil {
			return err
		}

		description, err := validateDescription(body.Description)
		if err != nil {
			return err
		}

		serviceType := models.ServiceType(body.ServiceType)
		if !serviceType.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "service_type is invalid")
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be in 'YYYY-MM-DD' format")
		}

		ml := models.MaintenanceLog{
			UserID:             userID,
			TruckID:            body.TruckID,
			Date:               d,
			ServiceType:        serviceType,
			Mileage:            body.Mileage,
			Cost:               body.Cost,
			Description:        description,
			NextServiceMileage: body.NextServiceMileage,
		}

		if body.NextServiceDate != nil && *body.NextServiceDate != "" {
			next, err := time.Parse("2006-01-02", *body.NextServiceDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "next_service_date must be in 'YYYY-MM-DD' format")
			}
			ml.NextServiceDate = &next
		}

		if err := database.DB.Create(&ml).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save maintenance log")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "maintenance_log",
			EntityID:    ml.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Maintenance logged: %s - $%.2f", ml.ServiceType, ml.Cost),
			Before:      nil,
			After:       ml,
		}); logErr != nil {
			fmt.Printf("could not write audit log: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toMaintenanceLogResponse(ml))
	}
}

// GET /api/maintenance-logs?from=...&to=...&truck_id=...&service_type=...
func ListMaintenanceLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.MaintenanceLog{}).Where("user_id = ?", userID)

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

		if truckStr := c.Query("truck_id"); truckStr != "" {
			var tid uint
			if _, err := fmt.Sscan(truckStr, &tid); err != nil || tid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "truck_id is invalid")
			}
			dbq = dbq.Where("truck_id = ?", tid)
		}

		if st := c.Query("service_type"); st != "" {
			if !models.ServiceType(st).Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "service_type is invalid")
			}
			dbq = dbq.Where("service_type = ?", st)
		}

		var rows []models.MaintenanceLog
		if err := dbq.Order("date asc, id asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list maintenance logs")
		}

		resp := make([]MaintenanceLogResponse, 0, len(rows))
		for _, r := range rows {
			resp = append(resp, toMaintenanceLogResponse(r))
		}

		return c.JSON(resp)
	}
}

// GET /api/maintenance-logs/upcoming?days=30
// Returns logs whose next service date falls within the window. Mileage-only
// reminders are left to the caller since the server has no odometer feed.
func UpcomingMaintenanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		days := 30
		if daysStr := c.Query("days"); daysStr != "" {
			parsed, err := strconv.Atoi(daysStr)
			if err != nil || parsed < 1 || parsed > 365 {
				return fiber.NewError(fiber.StatusBadRequest, "days must be between 1 and 365")
			}
			days = parsed
		}

		now := time.Now().UTC()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		cutoff := today.AddDate(0, 0, days)

		var rows []models.MaintenanceLog
		if err := database.DB.
			Where("user_id = ? AND next_service_date IS NOT NULL AND next_service_date >= ? AND next_service_date <= ?",
				userID, today, cutoff).
			Order("next_service_date asc, id asc").
			Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list upcoming maintenance")
		}

		resp := make([]MaintenanceLogResponse, 0, len(rows))
		for _, r := range rows {
			resp = append(resp, toMaintenanceLogResponse(r))
		}

		return c.JSON(resp)
	}
}

// PUT /api/maintenance-logs/:id
func UpdateMaintenanceLogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, err := getUserInfo(c)
		if err != nil {
			return err
		}

		var ml models.MaintenanceLog
		if err := database.DB.First(&ml, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Maintenance log not found")
		}
		before := ml

		var body UpdateMaintenanceLogRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Date != nil {
			d, err := time.Parse("2006-01-02", *body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be in 'YYYY-MM-DD' format")
			}
			ml.Date = d
		}

		if body.TruckID != nil {
			if *body.TruckID == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "truck_id is required")
			}
			if err := truckBelongsToUser(*body.TruckID, userID); err != nil {
				return err
			}
			ml.TruckID = *body.TruckID
		}

		if body.ServiceType != nil {
			serviceType := models.ServiceType(*body.ServiceType)
			if !serviceType.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "service_type is invalid")
			}
			ml.ServiceType = serviceType
		}

		if body.Mileage != nil {
			if err := validateMileage(*body.Mileage); err != nil {
				return err
			}
			ml.Mileage = *body.Mileage
		}

		if body.Cost != nil {
			if err := validateCost(*body.Cost); err != nil {
				return err
			}
			ml.Cost = *body.Cost
		}

		if body.Description != nil {
			desc, err := validateDescription(*body.Description)
			if err != nil {
				return err
			}
			ml.Description = desc
		}

		if body.NextServiceDate != nil {
			if *body.NextServiceDate == "" {
				ml.NextServiceDate = nil
			} else {
				next, err := time.Parse("2006-01-02", *body.NextServiceDate)
				if err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "next_service_date must be in 'YYYY-MM-DD' format")
				}
				ml.NextServiceDate = &next
			}
		}

		if body.NextServiceMileage != nil {
			ml.NextServiceMileage = body.NextServiceMileage
		}

		if err := database.DB.Save(&ml).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update maintenance log")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "maintenance_log",
			EntityID:    ml.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Maintenance updated: %s - $%.2f", ml.ServiceType, ml.Cost),
			Before:      before,
			After:       ml,
		}); logErr != nil {
			fmt.Printf("could not write audit log: %v\n", logErr)
		}

		return c.JSON(toMaintenanceLogResponse(ml))
	}
}

// DELETE /api/maintenance-logs/:id
func DeleteMaintenanceLogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName, err := getUserInfo(c)
		if err != nil {
			return err
		}

		var ml models.MaintenanceLog
		if err := database.DB.First(&ml, "id = ? AND user_id = ?", c.Params("id"), userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Maintenance log not found")
		}

		if err := database.DB.Delete(&ml).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete maintenance log")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "maintenance_log",
			EntityID:    ml.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Maintenance deleted: %s - $%.2f", ml.ServiceType, ml.Cost),
			Before:      ml,
			After:       nil,
		}); logErr != nil {
			fmt.Printf("could not write audit log: %v\n", logErr)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"truckledger-backend/internal/database"
	"truckledger-backend/internal/models"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// WriteLog records a change for the activity feed and undo. Snapshots are
// stored as JSON; the jsonb columns need the literal "null" rather than an
// empty string when a side is absent.
func WriteLog(opts LogOptions) error {
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	log := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
		Undone:      false,
		IsUndone:    false,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}

	return nil
}

// UndoLog reverses the change a log describes: deletes what a create made,
// restores the before snapshot of an update, recreates what a delete removed.
// The log itself is marked undone and a compensating undo log is written.
func UndoLog(logID uint, userID uint, userName string) error {
	var log models.AuditLog
	if err := database.DB.First(&log, "id = ? AND user_id = ?", logID, userID).Error; err != nil {
		return fmt.Errorf("log not found: %w", err)
	}

	if log.IsUndone {
		return fmt.Errorf("this change has already been undone")
	}

	switch log.Action {
	case models.AuditActionCreate:
		if err := deleteEntity(log.EntityType, log.EntityID); err != nil {
			return fmt.Errorf("delete entity: %w", err)
		}

	case models.AuditActionUpdate:
		if err := restoreEntity(log.EntityType, log.EntityID, log.BeforeData); err != nil {
			return fmt.Errorf("restore entity: %w", err)
		}

	case models.AuditActionDelete:
		if err := recreateEntity(log.EntityType, log.BeforeData); err != nil {
			return fmt.Errorf("recreate entity: %w", err)
		}

	default:
		return fmt.Errorf("this action cannot be undone")
	}

	now := time.Now()
	log.IsUndone = true
	log.UndoneBy = &userID
	log.UndoneAt = &now

	if err := database.DB.Save(&log).Error; err != nil {
		return fmt.Errorf("update audit log: %w", err)
	}

	undoLog := models.AuditLog{
		UserID:      userID,
		UserName:    userName,
		EntityType:  log.EntityType,
		EntityID:    log.EntityID,
		Action:      models.AuditActionUndo,
		Description: fmt.Sprintf("Undid: %s", log.Description),
		BeforeData:  log.AfterData,
		AfterData:   log.BeforeData,
		Undone:      true,
		IsUndone:    false,
	}

	if err := database.DB.Create(&undoLog).Error; err != nil {
		return fmt.Errorf("write undo log: %w", err)
	}

	return nil
}

func deleteEntity(entityType string, entityID uint) error {
	switch entityType {
	case "truck":
		return database.DB.Delete(&models.Truck{}, "id = ?", entityID).Error
	case "expense":
		return database.DB.Delete(&models.Expense{}, "id = ?", entityID).Error
	case "pay_entry":
		return database.DB.Delete(&models.PayEntry{}, "id = ?", entityID).Error
	case "maintenance_log":
		return database.DB.Delete(&models.MaintenanceLog{}, "id = ?", entityID).Error
	default:
		return fmt.Errorf("unknown entity type: %s", entityType)
	}
}

// recreateEntity rebuilds a deleted record from its snapshot. The ID is
// cleared so the database assigns a fresh one.
func recreateEntity(entityType string, dataJSON string) error {
	switch entityType {
	case "truck":
		var truck models.Truck
		if err := json.Unmarshal([]byte(dataJSON), &truck); err != nil {
			return err
		}
		truck.ID = 0
		return database.DB.Create(&truck).Error

	case "expense":
		var expense models.Expense
		if err := json.Unmarshal([]byte(dataJSON), &expense); err != nil {
			return err
		}
		expense.ID = 0
		return database.DB.Create(&expense).Error

	case "pay_entry":
		var pay models.PayEntry
		if err := json.Unmarshal([]byte(dataJSON), &pay); err != nil {
			return err
		}
		pay.ID = 0
		return database.DB.Create(&pay).Error

	case "maintenance_log":
		var ml models.MaintenanceLog
		if err := json.Unmarshal([]byte(dataJSON), &ml); err != nil {
			return err
		}
		ml.ID = 0
		return database.DB.Create(&ml).Error

	default:
		return fmt.Errorf("unknown entity type: %s", entityType)
	}
}

// restoreEntity writes an update's before snapshot back over the record.
// Columns are listed explicitly so zero values overwrite too.
func restoreEntity(entityType string, entityID uint, dataJSON string) error {
	switch entityType {
	case "truck":
		var truck models.Truck
		if err := json.Unmarshal([]byte(dataJSON), &truck); err != nil {
			return err
		}
		return database.DB.Model(&models.Truck{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"name":          truck.Name,
			"identifier":    truck.Identifier,
			"make":          truck.Make,
			"model":         truck.Model,
			"year":          truck.Year,
			"vin":           truck.VIN,
			"license_plate": truck.LicensePlate,
			"notes":         truck.Notes,
		}).Error

	case "expense":
		var expense models.Expense
		if err := json.Unmarshal([]byte(dataJSON), &expense); err != nil {
			return err
		}
		return database.DB.Model(&models.Expense{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"date":        expense.Date,
			"category":    expense.Category,
			"amount":      expense.Amount,
			"description": expense.Description,
			"truck_id":    expense.TruckID,
		}).Error

	case "pay_entry":
		var pay models.PayEntry
		if err := json.Unmarshal([]byte(dataJSON), &pay); err != nil {
			return err
		}
		return database.DB.Model(&models.PayEntry{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"start_date": pay.StartDate,
			"end_date":   pay.EndDate,
			"amount":     pay.Amount,
			"client":     pay.Client,
			"notes":      pay.Notes,
		}).Error

	case "maintenance_log":
		var ml models.MaintenanceLog
		if err := json.Unmarshal([]byte(dataJSON), &ml); err != nil {
			return err
		}
		return database.DB.Model(&models.MaintenanceLog{}).Where("id = ?", entityID).Updates(map[string]interface{}{
			"date":                 ml.Date,
			"truck_id":             ml.TruckID,
			"service_type":         ml.ServiceType,
			"mileage":              ml.Mileage,
			"cost":                 ml.Cost,
			"description":          ml.Description,
			"next_service_date":    ml.NextServiceDate,
			"next_service_mileage": ml.NextServiceMileage,
		}).Error

	default:
		return fmt.Errorf("unknown entity type: %s", entityType)
	}
}

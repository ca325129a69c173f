package main

import (
	"log"
	"strings"

	"truckledger-backend/internal/audit"
	"truckledger-backend/internal/auth"
	"truckledger-backend/internal/config"
	"truckledger-backend/internal/dashboard"
	"truckledger-backend/internal/database"
	"truckledger-backend/internal/expense"
	"truckledger-backend/internal/export"
	"truckledger-backend/internal/maintenance"
	"truckledger-backend/internal/pay"
	"truckledger-backend/internal/report"
	"truckledger-backend/internal/truck"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Trucks
	protected.Post("/trucks", truck.CreateTruckHandler())
	protected.Get("/trucks", truck.ListTrucksHandler())
	protected.Get("/trucks/:id", truck.GetTruckHandler())
	protected.Put("/trucks/:id", truck.UpdateTruckHandler())
	protected.Delete("/trucks/:id", truck.DeleteTruckHandler())

	// Expenses
	protected.Get("/expense-categories", expense.ListExpenseCategoriesHandler())
	protected.Post("/expenses", expense.CreateExpenseHandler())
	protected.Get("/expenses", expense.ListExpensesHandler())
	protected.Put("/expenses/:id", expense.UpdateExpenseHandler())
	protected.Delete("/expenses/:id", expense.DeleteExpenseHandler())

	// Pay entries
	protected.Post("/pay-entries", pay.CreatePayEntryHandler())
	protected.Get("/pay-entries", pay.ListPayEntriesHandler())
	protected.Put("/pay-entries/:id", pay.UpdatePayEntryHandler())
	protected.Delete("/pay-entries/:id", pay.DeletePayEntryHandler())

	// Maintenance logs
	protected.Get("/service-types", maintenance.ListServiceTypesHandler())
	protected.Post("/maintenance-logs", maintenance.CreateMaintenanceLogHandler())
	protected.Get("/maintenance-logs", maintenance.ListMaintenanceLogsHandler())
	protected.Get("/maintenance-logs/upcoming", maintenance.UpcomingMaintenanceHandler())
	protected.Put("/maintenance-logs/:id", maintenance.UpdateMaintenanceLogHandler())
	protected.Delete("/maintenance-logs/:id", maintenance.DeleteMaintenanceLogHandler())

	// Reports & exports
	protected.Get("/reports/tax", report.TaxReportHandler())
	protected.Get("/export/data", export.DataExportHandler())
	protected.Get("/export/tax-report", export.TaxReportExportHandler())

	// Dashboard
	protected.Get("/dashboard/summary", dashboard.SummaryHandler())

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())
	protected.Post("/audit-logs/:id/undo", audit.UndoAuditLogHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"resellpanel_backend/internal/controller"
	"resellpanel_backend/internal/dataservice"
	"resellpanel_backend/internal/middleware"
	"resellpanel_backend/internal/model"
	"resellpanel_backend/pkg/config"
	"resellpanel_backend/pkg/cron"
	"resellpanel_backend/pkg/database"
	"resellpanel_backend/pkg/email"
	"resellpanel_backend/pkg/seed"
	"resellpanel_backend/pkg/utils/storage"
	"resellpanel_backend/pkg/workingset"
)

func setupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/register", controller.Register)
	auth.Post("/login", controller.Login)

	// Protected Routes
	protected := api.Group("/", middleware.AuthMiddleware())
	protected.Get("/me", controller.GetMe)

	// Reseller submission routes
	submissions := protected.Group("/submissions")
	submissions.Get("/my", controller.ListMySubmissions)
	submissions.Post("/", controller.CreateSubmission)
	submissions.Get("/:id", middleware.CheckSubmissionOwnership(), controller.GetMySubmission)

	// Admin submission routes
	admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.RequireAdmin())
	adminSubs := admin.Group("/submissions")
	adminSubs.Get("/", controller.ListSubmissions)
	adminSubs.Get("/expiring", controller.ListExpiringSubmissions)
	adminSubs.Post("/bulk-delete", controller.BulkDeleteSubmissions)
	adminSubs.Get("/:id", controller.GetSubmission)
	adminSubs.Put("/:id/status", controller.UpdateSubmissionStatus)
	adminSubs.Post("/:id/renew", controller.RenewSubmission)
	adminSubs.Put("/:id/profile-name", controller.UpdateSubmissionProfileName)
	adminSubs.Delete("/:id", controller.DeleteSubmission)

	admin.Get("/resellers", controller.ListResellers)
	admin.Get("/stats", controller.GetDashboardStats)

	// Import/export
	admin.Post("/import", controller.ImportSubmissions)
	admin.Get("/export", controller.ExportSubmissions)

	// Bookkeeping
	transactions := admin.Group("/transactions")
	transactions.Get("/", controller.ListTransactions)
	transactions.Post("/", controller.CreateTransaction)
	transactions.Get("/summary", controller.GetTransactionSummary)
	transactions.Delete("/:id", controller.DeleteTransaction)

	// Customers and invoices
	admin.Get("/customers", controller.ListCustomers)
	admin.Post("/customers", controller.CreateCustomer)
	admin.Get("/invoices", controller.ListInvoices)
	admin.Post("/invoices", controller.CreateInvoice)
}

func main() {
	cfg := config.Load()

	if cfg.Email.ResendAPIKey != "" {
		if err := email.InitEmailService(cfg.Email.ResendAPIKey, cfg.Email.From); err != nil {
			log.Fatal("Could not initialize email service:", err)
		}
		log.Println("Email service initialized")
	} else {
		log.Println("RESEND_API_KEY not set, email notifications disabled")
	}

	if cfg.Export.S3Bucket != "" {
		if err := storage.InitStorage(cfg.Export.S3Bucket, cfg.Export.S3Region); err != nil {
			log.Printf("Export archive disabled: %v", err)
		}
	} else {
		log.Println("EXPORT_S3_BUCKET not set, export archiving disabled")
	}

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	database.InitDB(cfg.Database.URL)
	err := database.MigrateDatabase(
		&model.User{},
		&model.Customer{},
		&model.Submission{},
		&model.Transaction{},
		&model.Invoice{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	seed.SeedAdminUser(database.GetDB())
	seed.SeedDemoReseller(database.GetDB())

	svc := dataservice.New(database.GetDB())
	store := workingset.NewStore()
	if subs, err := svc.FetchAllSubmissions(); err != nil {
		log.Printf("Could not warm the working set: %v", err)
	} else {
		store.Load(subs)
	}
	controller.InitSubmissionController(svc, store)

	cron.InitExpiryWatchCron(store)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}

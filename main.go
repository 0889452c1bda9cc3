package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/sanyam-ls/loadsmart-backend/database"
	"github.com/sanyam-ls/loadsmart-backend/internal/jobs"
	"github.com/sanyam-ls/loadsmart-backend/internal/models"
	"github.com/sanyam-ls/loadsmart-backend/internal/routes"
	"github.com/sanyam-ls/loadsmart-backend/internal/services"
	"github.com/sanyam-ls/loadsmart-backend/internal/storage"
)

func main() {
	// Load .env file for local development
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		err := godotenv.Load(".env")
		if err != nil {
			err = godotenv.Load("environments/.env.development")
			if err != nil {
				log.Println("⚠️  No .env file found - checking environment variables")
			}
		}
	}

	// Initialize storage
	var store storage.Store

	// Check if we should use memory store (for testing)
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		// Connect to database
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect()

		// Run migrations
		log.Println("🔄 Running database migrations...")
		err := database.DB.AutoMigrate(
			&models.Carrier{},
			&models.VerificationApplication{},
			&models.DocumentRecord{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(database.DB)
		log.Println("✅ Using PostgreSQL database storage")
	}

	// Redis-backed gating cache (optional)
	redisClient := database.ConnectRedis()
	gating := services.NewGatingService(store, redisClient, 0)

	// Change notification port: audit log always, WhatsApp when configured
	notifier := services.NewMultiNotifier(services.LogNotifier{})

	twilioService, err := services.NewTwilioService()
	if err != nil {
		log.Println("⚠️  Twilio not configured - carrier WhatsApp notifications disabled")
		twilioService = nil
	} else {
		log.Println("✅ Twilio service initialized")
		notifier.Register(services.NewWhatsAppNotifier(store, twilioService))
	}

	// Verification engine
	verification := services.NewVerificationService(store, gating, notifier)

	// Start reminder job for stale pending applications
	var reminderJob *jobs.ReminderJob
	if twilioService != nil {
		reminderJob = jobs.NewReminderJob(store, twilioService)
		reminderJob.Start()
	}

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "Loadsmart Verification Engine v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Health check endpoint for monitoring
	app.Get("/health", func(c *fiber.Ctx) error {
		status := "healthy"
		statusCode := 200

		// Check database if using it
		if os.Getenv("USE_MEMORY_STORE") != "true" && database.DB != nil {
			sqlDB, err := database.DB.DB()
			if err != nil || sqlDB.Ping() != nil {
				status = "unhealthy"
				statusCode = 503
			}
		}

		return c.Status(statusCode).JSON(fiber.Map{
			"status": status,
			"services": fiber.Map{
				"database": status == "healthy",
				"redis":    redisClient != nil,
				"twilio":   twilioService != nil,
			},
		})
	})

	// Setup routes
	routes.SetupRoutes(app, store, verification, gating)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		if reminderJob != nil {
			log.Println("⏹️  Stopping reminder job...")
			reminderJob.Stop()
		}
		log.Println("⏹️  Shutting down server...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Println("========================================")
	log.Printf("🚀 Loadsmart Verification Engine starting on port %s", port)
	log.Printf("📊 Storage: %s", getStorageType())
	log.Printf("🌍 Environment: %s", getEnvironment())
	log.Println("========================================")

	log.Fatal(app.Listen(":" + port))
}

func getEnvironment() string {
	if os.Getenv("INSTANCE_CONNECTION_NAME") != "" {
		return "Production (Cloud Run)"
	}
	return "Development (Local)"
}

func getStorageType() string {
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sanyam-ls/loadsmart-backend/internal/handlers"
	"github.com/sanyam-ls/loadsmart-backend/internal/middleware"
	"github.com/sanyam-ls/loadsmart-backend/internal/services"
	"github.com/sanyam-ls/loadsmart-backend/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, store storage.Store, verification *services.VerificationService, gating *services.GatingService) {
	carrierHandler := handlers.NewCarrierHandler(store, verification)
	adminHandler := handlers.NewAdminHandler(verification)
	gatingHandler := handlers.NewGatingHandler(gating)
	healthHandler := handlers.NewHealthHandler("1.0.0")

	// Root endpoint
	app.Get("/", healthHandler.Check)

	// ========== CARRIER-FACING ROUTES ==========
	api := app.Group("/api")

	carriers := api.Group("/carriers")
	carriers.Post("/register", carrierHandler.Register)
	carriers.Get("/:carrierID", carrierHandler.GetCarrier)
	carriers.Post("/:carrierID/application", carrierHandler.OpenApplication)
	carriers.Get("/:carrierID/application", carrierHandler.GetMyApplication)
	carriers.Get("/:carrierID/can-transact", gatingHandler.CanTransact)

	applications := api.Group("/applications")
	applications.Get("/:applicationID", carrierHandler.GetApplication)
	applications.Post("/:applicationID/documents", carrierHandler.UploadDocument)
	applications.Post("/:applicationID/submit", carrierHandler.SubmitApplication)

	api.Get("/requirements/:carrierType", carrierHandler.GetRequirements)

	// ========== ADMIN ROUTES ==========
	admin := app.Group("/admin", middleware.RequireAdmin())
	admin.Get("/applications", adminHandler.GetReviewQueue)
	admin.Get("/applications/decided", adminHandler.GetDecidedApplications)
	admin.Get("/applications/:applicationID", adminHandler.GetApplication)
	admin.Post("/applications/:applicationID/review", adminHandler.StartReview)
	admin.Post("/applications/:applicationID/decision", adminHandler.DecideApplication)
	admin.Post("/applications/:applicationID/reopen", adminHandler.ReopenApplication)
	admin.Post("/documents/:documentID/decision", adminHandler.DecideDocument)
}

package storage

import (
	"github.com/sanyam-ls/loadsmart-backend/internal/models"
)

// Store defines the interface for storage operations
type Store interface {
	// Carrier operations
	CreateCarrier(reg *models.CarrierRegistration) (*models.Carrier, error)
	GetCarrier(carrierID string) (*models.Carrier, error)
	GetCarrierByPhone(phone string) (*models.Carrier, error)

	// Application operations
	CreateApplication(app *models.VerificationApplication) (*models.VerificationApplication, error)
	GetApplication(applicationID string) (*models.VerificationApplication, error)
	// GetActiveApplication returns the carrier's current (non-rejected)
	// application, or a not_found domain error.
	GetActiveApplication(carrierID string) (*models.VerificationApplication, error)
	// UpdateApplication persists app only if the stored version still equals
	// expectedVersion, then bumps the version. Stale writers get a conflict
	// domain error; two admins can never both win.
	UpdateApplication(app *models.VerificationApplication, expectedVersion int) error
	// ListApplications returns applications in any of the given statuses,
	// newest first (submitted_at, falling back to created_at). carrierType ""
	// means all carrier types.
	ListApplications(statuses []models.ApplicationStatus, carrierType models.CarrierType) ([]*models.VerificationApplication, error)

	// Document operations
	// AddDocument records an upload and marks earlier non-superseded records
	// of the same type on the same application as superseded.
	AddDocument(doc *models.DocumentRecord) (*models.DocumentRecord, error)
	GetDocument(documentID string) (*models.DocumentRecord, error)
	// GetDocumentsByApplication returns the live (non-superseded) records in
	// upload order.
	GetDocumentsByApplication(applicationID string) ([]*models.DocumentRecord, error)
	// UpdateDocument persists doc only if the stored status still equals
	// expectedStatus; a concurrent decision surfaces as a conflict.
	UpdateDocument(doc *models.DocumentRecord, expectedStatus models.DocumentStatus) error
}

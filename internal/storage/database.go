package storage

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sanyam-ls/loadsmart-backend/internal/models"
)

// DatabaseStore is the PostgreSQL implementation of Store on top of GORM.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a new database-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// Carrier operations

func (s *DatabaseStore) CreateCarrier(reg *models.CarrierRegistration) (*models.Carrier, error) {
	carrier := &models.Carrier{
		Name:        reg.Name,
		Phone:       reg.Phone,
		Email:       reg.Email,
		City:        reg.City,
		CarrierType: models.CarrierType(reg.CarrierType),
		FleetSize:   reg.FleetSize,
	}
	if err := s.db.Create(carrier).Error; err != nil {
		return nil, err
	}
	return carrier, nil
}

func (s *DatabaseStore) GetCarrier(carrierID string) (*models.Carrier, error) {
	var carrier models.Carrier
	err := s.db.Where("carrier_id = ?", carrierID).First(&carrier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound("carrier", carrierID)
	}
	if err != nil {
		return nil, err
	}
	return &carrier, nil
}

func (s *DatabaseStore) GetCarrierByPhone(phone string) (*models.Carrier, error) {
	var carrier models.Carrier
	err := s.db.Where("phone = ?", phone).First(&carrier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound("carrier", phone)
	}
	if err != nil {
		return nil, err
	}
	return &carrier, nil
}

// Application operations

func (s *DatabaseStore) CreateApplication(app *models.VerificationApplication) (*models.VerificationApplication, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.VerificationApplication
		err := tx.
			Where("carrier_id = ? AND status <> ?", app.CarrierID, models.ApplicationStatusRejected).
			First(&existing).Error
		if err == nil {
			return models.ErrValidation("carrier %s already has active application %s", app.CarrierID, existing.ApplicationID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(app).Error
	})
	if err != nil {
		// Two opens can race past the read under READ COMMITTED; the partial
		// unique index on carrier_id makes the loser's insert fail here.
		if strings.Contains(err.Error(), "uni_active_application") {
			return nil, models.ErrValidation("carrier %s already has an active application", app.CarrierID)
		}
		return nil, err
	}
	return app, nil
}

func (s *DatabaseStore) GetApplication(applicationID string) (*models.VerificationApplication, error) {
	var app models.VerificationApplication
	err := s.db.Where("application_id = ?", applicationID).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound("application", applicationID)
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *DatabaseStore) GetActiveApplication(carrierID string) (*models.VerificationApplication, error) {
	var app models.VerificationApplication
	err := s.db.
		Where("carrier_id = ? AND status <> ?", carrierID, models.ApplicationStatusRejected).
		Order("created_at DESC").
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound("application for carrier", carrierID)
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *DatabaseStore) UpdateApplication(app *models.VerificationApplication, expectedVersion int) error {
	// Version-guarded update: the WHERE clause loses against any writer that
	// committed after our read, so the second admin gets a conflict instead
	// of silently overwriting the first decision.
	res := s.db.Model(&models.VerificationApplication{}).
		Where("application_id = ? AND version = ?", app.ApplicationID, expectedVersion).
		Updates(map[string]interface{}{
			"status":           app.Status,
			"submitted_at":     app.SubmittedAt,
			"reviewed_by":      app.ReviewedBy,
			"reviewed_at":      app.ReviewedAt,
			"rejection_reason": app.RejectionReason,
			"hold_notes":       app.HoldNotes,
			"version":          expectedVersion + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		s.db.Model(&models.VerificationApplication{}).
			Where("application_id = ?", app.ApplicationID).Count(&count)
		if count == 0 {
			return models.ErrNotFound("application", app.ApplicationID)
		}
		return models.ErrConflict(app.ApplicationID)
	}
	app.Version = expectedVersion + 1
	return nil
}

func (s *DatabaseStore) ListApplications(statuses []models.ApplicationStatus, carrierType models.CarrierType) ([]*models.VerificationApplication, error) {
	query := s.db.Model(&models.VerificationApplication{})
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	if carrierType != "" {
		query = query.Where("carrier_type = ?", carrierType)
	}

	var apps []*models.VerificationApplication
	err := query.Order("COALESCE(submitted_at, created_at) DESC").Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// Document operations

func (s *DatabaseStore) AddDocument(doc *models.DocumentRecord) (*models.DocumentRecord, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Supersede earlier uploads of the same type on this application.
		if err := tx.Model(&models.DocumentRecord{}).
			Where("application_id = ? AND document_type = ? AND superseded = false",
				doc.ApplicationID, doc.DocumentType).
			Update("superseded", true).Error; err != nil {
			return err
		}
		return tx.Create(doc).Error
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DatabaseStore) GetDocument(documentID string) (*models.DocumentRecord, error) {
	var doc models.DocumentRecord
	err := s.db.Where("document_id = ?", documentID).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound("document", documentID)
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *DatabaseStore) GetDocumentsByApplication(applicationID string) ([]*models.DocumentRecord, error) {
	var docs []*models.DocumentRecord
	err := s.db.
		Where("application_id = ? AND superseded = false", applicationID).
		Order("uploaded_at ASC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *DatabaseStore) UpdateDocument(doc *models.DocumentRecord, expectedStatus models.DocumentStatus) error {
	res := s.db.Model(&models.DocumentRecord{}).
		Where("document_id = ? AND status = ?", doc.DocumentID, expectedStatus).
		Updates(map[string]interface{}{
			"status":           doc.Status,
			"rejection_reason": doc.RejectionReason,
			"reviewed_by":      doc.ReviewedBy,
			"reviewed_at":      doc.ReviewedAt,
			"updated_at":       time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		s.db.Model(&models.DocumentRecord{}).
			Where("document_id = ?", doc.DocumentID).Count(&count)
		if count == 0 {
			return models.ErrNotFound("document", doc.DocumentID)
		}
		return models.ErrConflict(doc.DocumentID)
	}
	return nil
}

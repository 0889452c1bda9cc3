package storage

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sanyam-ls/loadsmart-backend/internal/models"
)

// MemoryStore holds all data in memory; used for tests and local development.
type MemoryStore struct {
	carriers     map[string]models.Carrier
	applications map[string]models.VerificationApplication
	documents    map[string]models.DocumentRecord

	// Mutexes for thread safety
	carrierMu sync.RWMutex
	appMu     sync.RWMutex
	docMu     sync.RWMutex

	// Counters for ID generation
	carrierCounter  int
	appCounter      int
	documentCounter int
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carriers:     make(map[string]models.Carrier),
		applications: make(map[string]models.VerificationApplication),
		documents:    make(map[string]models.DocumentRecord),
	}
}

// Carrier operations

func (m *MemoryStore) CreateCarrier(reg *models.CarrierRegistration) (*models.Carrier, error) {
	m.carrierMu.Lock()
	defer m.carrierMu.Unlock()

	for _, c := range m.carriers {
		if c.Phone == reg.Phone {
			return nil, models.ErrValidation("phone %s already registered", reg.Phone)
		}
	}

	m.carrierCounter++
	now := time.Now()
	carrier := models.Carrier{
		CarrierID:   fmt.Sprintf("CAR%05d", m.carrierCounter),
		Name:        reg.Name,
		Phone:       reg.Phone,
		Email:       reg.Email,
		City:        reg.City,
		CarrierType: models.CarrierType(reg.CarrierType),
		FleetSize:   reg.FleetSize,
	}
	if carrier.FleetSize < 1 {
		carrier.FleetSize = 1
	}
	if carrier.Phone != "" && !strings.HasPrefix(carrier.Phone, "+") {
		carrier.Phone = "+91" + strings.TrimPrefix(carrier.Phone, "91")
	}
	carrier.CreatedAt = now
	carrier.UpdatedAt = now

	m.carriers[carrier.CarrierID] = carrier
	out := carrier
	return &out, nil
}

func (m *MemoryStore) GetCarrier(carrierID string) (*models.Carrier, error) {
	m.carrierMu.RLock()
	defer m.carrierMu.RUnlock()

	carrier, exists := m.carriers[carrierID]
	if !exists {
		return nil, models.ErrNotFound("carrier", carrierID)
	}
	out := carrier
	return &out, nil
}

func (m *MemoryStore) GetCarrierByPhone(phone string) (*models.Carrier, error) {
	m.carrierMu.RLock()
	defer m.carrierMu.RUnlock()

	for _, carrier := range m.carriers {
		if carrier.Phone == phone {
			out := carrier
			return &out, nil
		}
	}
	return nil, models.ErrNotFound("carrier", phone)
}

// Application operations

func (m *MemoryStore) CreateApplication(app *models.VerificationApplication) (*models.VerificationApplication, error) {
	m.appMu.Lock()
	defer m.appMu.Unlock()

	// One active application per carrier, checked under the write lock so
	// two concurrent opens cannot both slip past it.
	for id := range m.applications {
		existing := m.applications[id]
		if existing.CarrierID == app.CarrierID && existing.Status != models.ApplicationStatusRejected {
			return nil, models.ErrValidation("carrier %s already has active application %s", app.CarrierID, existing.ApplicationID)
		}
	}

	m.appCounter++
	now := time.Now()
	stored := *app
	if stored.ApplicationID == "" {
		stored.ApplicationID = fmt.Sprintf("APP%05d", m.appCounter)
	}
	if stored.Status == "" {
		stored.Status = models.ApplicationStatusDraft
	}
	stored.CreatedAt = now
	stored.UpdatedAt = now
	stored.Version = 0

	m.applications[stored.ApplicationID] = stored
	out := stored
	return &out, nil
}

func (m *MemoryStore) GetApplication(applicationID string) (*models.VerificationApplication, error) {
	m.appMu.RLock()
	defer m.appMu.RUnlock()

	app, exists := m.applications[applicationID]
	if !exists {
		return nil, models.ErrNotFound("application", applicationID)
	}
	out := app
	return &out, nil
}

func (m *MemoryStore) GetActiveApplication(carrierID string) (*models.VerificationApplication, error) {
	m.appMu.RLock()
	defer m.appMu.RUnlock()

	var latest *models.VerificationApplication
	for id := range m.applications {
		app := m.applications[id]
		if app.CarrierID != carrierID || app.Status == models.ApplicationStatusRejected {
			continue
		}
		if latest == nil || app.CreatedAt.After(latest.CreatedAt) {
			out := app
			latest = &out
		}
	}
	if latest == nil {
		return nil, models.ErrNotFound("application for carrier", carrierID)
	}
	return latest, nil
}

func (m *MemoryStore) UpdateApplication(app *models.VerificationApplication, expectedVersion int) error {
	m.appMu.Lock()
	defer m.appMu.Unlock()

	stored, exists := m.applications[app.ApplicationID]
	if !exists {
		return models.ErrNotFound("application", app.ApplicationID)
	}
	if stored.Version != expectedVersion {
		return models.ErrConflict(app.ApplicationID)
	}

	updated := *app
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	updated.Version = expectedVersion + 1
	m.applications[app.ApplicationID] = updated
	app.Version = updated.Version
	return nil
}

func (m *MemoryStore) ListApplications(statuses []models.ApplicationStatus, carrierType models.CarrierType) ([]*models.VerificationApplication, error) {
	m.appMu.RLock()
	defer m.appMu.RUnlock()

	wanted := make(map[models.ApplicationStatus]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}

	var apps []*models.VerificationApplication
	for id := range m.applications {
		app := m.applications[id]
		if len(wanted) > 0 && !wanted[app.Status] {
			continue
		}
		if carrierType != "" && app.CarrierType != carrierType {
			continue
		}
		out := app
		apps = append(apps, &out)
	}

	// Latest first: submitted_at when present, created_at otherwise.
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].SortKey().After(apps[j].SortKey())
	})
	return apps, nil
}

// Document operations

func (m *MemoryStore) AddDocument(doc *models.DocumentRecord) (*models.DocumentRecord, error) {
	m.docMu.Lock()
	defer m.docMu.Unlock()

	// Supersede earlier uploads of the same type on this application.
	for id := range m.documents {
		existing := m.documents[id]
		if existing.ApplicationID == doc.ApplicationID &&
			existing.DocumentType == doc.DocumentType && !existing.Superseded {
			existing.Superseded = true
			existing.UpdatedAt = time.Now()
			m.documents[id] = existing
		}
	}

	m.documentCounter++
	now := time.Now()
	stored := *doc
	if stored.DocumentID == "" {
		stored.DocumentID = fmt.Sprintf("DOC%05d", m.documentCounter)
	}
	if stored.Status == "" {
		stored.Status = models.DocumentStatusPending
	}
	if stored.UploadedAt.IsZero() {
		stored.UploadedAt = now
	}
	stored.CreatedAt = now
	stored.UpdatedAt = now

	m.documents[stored.DocumentID] = stored
	out := stored
	return &out, nil
}

func (m *MemoryStore) GetDocument(documentID string) (*models.DocumentRecord, error) {
	m.docMu.RLock()
	defer m.docMu.RUnlock()

	doc, exists := m.documents[documentID]
	if !exists {
		return nil, models.ErrNotFound("document", documentID)
	}
	out := doc
	return &out, nil
}

func (m *MemoryStore) GetDocumentsByApplication(applicationID string) ([]*models.DocumentRecord, error) {
	m.docMu.RLock()
	defer m.docMu.RUnlock()

	var docs []*models.DocumentRecord
	for id := range m.documents {
		doc := m.documents[id]
		if doc.ApplicationID != applicationID || doc.Superseded {
			continue
		}
		out := doc
		docs = append(docs, &out)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UploadedAt.Before(docs[j].UploadedAt)
	})
	return docs, nil
}

func (m *MemoryStore) UpdateDocument(doc *models.DocumentRecord, expectedStatus models.DocumentStatus) error {
	m.docMu.Lock()
	defer m.docMu.Unlock()

	stored, exists := m.documents[doc.DocumentID]
	if !exists {
		return models.ErrNotFound("document", doc.DocumentID)
	}
	if stored.Status != expectedStatus {
		return models.ErrConflict(doc.DocumentID)
	}

	updated := *doc
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	m.documents[doc.DocumentID] = updated
	return nil
}

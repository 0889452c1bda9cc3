package services

import (
	"strings"
	"time"

	"github.com/sanyam-ls/loadsmart-backend/internal/models"
	"github.com/sanyam-ls/loadsmart-backend/internal/registry"
	"github.com/sanyam-ls/loadsmart-backend/internal/storage"
)

// Decision is an admin verdict on an application or a document.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
	DecisionHold    Decision = "hold"
)

// GateInvalidator is what the engine calls synchronously after every
// committed application transition so gating never serves a stale status.
type GateInvalidator interface {
	Invalidate(carrierID string)
}

// VerificationService owns the application state machine and document-level
// decisions. Every mutation commits through the store's optimistic version
// check before any event leaves the service.
type VerificationService struct {
	store    storage.Store
	gate     GateInvalidator
	notifier Notifier
}

// NewVerificationService creates the verification engine. gate and notifier
// may be nil in tests that do not care about them.
func NewVerificationService(store storage.Store, gate GateInvalidator, notifier Notifier) *VerificationService {
	return &VerificationService{
		store:    store,
		gate:     gate,
		notifier: notifier,
	}
}

// OpenApplication starts a draft application for a carrier. A carrier has at
// most one active application; rejected ones do not count, the carrier starts
// over with a new application. The store enforces the one-active rule
// atomically, so two concurrent opens cannot both create one.
func (s *VerificationService) OpenApplication(carrierID string, solo *models.SoloDetails, enterprise *models.EnterpriseDetails) (*models.VerificationApplication, error) {
	carrier, err := s.store.GetCarrier(carrierID)
	if err != nil {
		return nil, err
	}

	app := &models.VerificationApplication{
		CarrierID:   carrierID,
		CarrierType: carrier.CarrierType,
		Status:      models.ApplicationStatusDraft,
	}
	switch carrier.CarrierType {
	case models.CarrierTypeSolo:
		if solo != nil {
			app.Solo = *solo
		}
	case models.CarrierTypeEnterprise:
		if enterprise != nil {
			app.Enterprise = *enterprise
		}
	}

	return s.store.CreateApplication(app)
}

// UploadDocument records document metadata against an application. Earlier
// uploads of the same type are superseded and the new record starts pending,
// also after a rejection. Uploads are refused once the application reaches a
// terminal state.
func (s *VerificationService) UploadDocument(applicationID string, upload *models.DocumentUpload) (*models.DocumentRecord, error) {
	app, err := s.store.GetApplication(applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status.Terminal() {
		return nil, models.ErrInvalidTransition(app.Status, "upload a document to")
	}
	if strings.TrimSpace(upload.DocumentType) == "" {
		return nil, models.ErrValidation("document_type is required")
	}
	if strings.TrimSpace(upload.FileReference) == "" {
		return nil, models.ErrValidation("file_reference is required")
	}

	doc := &models.DocumentRecord{
		ApplicationID: app.ApplicationID,
		DocumentType:  upload.DocumentType,
		FileReference: upload.FileReference,
		Status:        models.DocumentStatusPending,
	}
	return s.store.AddDocument(doc)
}

// Submit moves a draft application into the review queue. Submission only
// checks that every required document type has been uploaded; the records may
// still be pending or even rejected - presence gates submission, approval
// does not.
func (s *VerificationService) Submit(applicationID string) (*models.VerificationApplication, error) {
	app, err := s.store.GetApplication(applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != models.ApplicationStatusDraft {
		return nil, models.ErrInvalidTransition(app.Status, "submit")
	}

	docs, err := s.store.GetDocumentsByApplication(app.ApplicationID)
	if err != nil {
		return nil, err
	}
	uploaded := make(map[string]bool, len(docs))
	for _, d := range docs {
		uploaded[d.DocumentType] = true
	}
	var missing []string
	for _, required := range registry.RequiredTypes(app.CarrierType) {
		if !uploaded[required] {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, models.ErrValidation("incomplete documents: missing %s", strings.Join(missing, ", "))
	}

	from := app.Status
	now := time.Now()
	app.Status = models.ApplicationStatusPending
	app.SubmittedAt = &now

	if err := s.commit(app, from, ""); err != nil {
		return nil, err
	}
	return app, nil
}

// StartReview marks a pending application as being looked at by an admin.
func (s *VerificationService) StartReview(applicationID, actor string) (*models.VerificationApplication, error) {
	app, err := s.store.GetApplication(applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status == models.ApplicationStatusUnderReview {
		return app, nil // already under review, nothing to record
	}
	if app.Status != models.ApplicationStatusPending {
		return nil, models.ErrInvalidTransition(app.Status, "start reviewing")
	}

	from := app.Status
	app.Status = models.ApplicationStatusUnderReview
	if err := s.commit(app, from, actor); err != nil {
		return nil, err
	}
	return app, nil
}

// Decide applies a whole-application admin verdict. Repeating a decision that
// already landed is a no-op: the current state comes back untouched, with no
// event and no new reviewed_by/reviewed_at stamp.
func (s *VerificationService) Decide(applicationID string, decision Decision, reason, actor string) (*models.VerificationApplication, error) {
	var target models.ApplicationStatus
	switch decision {
	case DecisionApprove:
		target = models.ApplicationStatusApproved
	case DecisionReject:
		target = models.ApplicationStatusRejected
	case DecisionHold:
		target = models.ApplicationStatusOnHold
	default:
		return nil, models.ErrValidation("unknown decision %q", decision)
	}

	// Validate before touching any state.
	reason = strings.TrimSpace(reason)
	if decision == DecisionReject && reason == "" {
		return nil, models.ErrValidation("rejection requires a non-empty reason")
	}
	if decision == DecisionHold && reason == "" {
		return nil, models.ErrValidation("hold requires non-empty notes")
	}
	if strings.TrimSpace(actor) == "" {
		return nil, models.ErrValidation("decision requires an acting admin")
	}

	app, err := s.store.GetApplication(applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status == target {
		return app, nil // idempotent retry
	}
	if !app.Status.Reviewable() {
		return nil, models.ErrInvalidTransition(app.Status, string(decision))
	}

	from := app.Status
	now := time.Now()
	app.ReviewedBy = actor
	app.ReviewedAt = &now
	app.Status = target
	switch target {
	case models.ApplicationStatusApproved:
		app.RejectionReason = ""
		app.HoldNotes = ""
	case models.ApplicationStatusRejected:
		app.RejectionReason = reason
		app.HoldNotes = ""
	case models.ApplicationStatusOnHold:
		app.HoldNotes = reason
		app.RejectionReason = ""
	}

	if err := s.commit(app, from, actor); err != nil {
		return nil, err
	}
	return app, nil
}

// Reopen makes an on-hold application available for review again. The
// application re-enters the front of the queue, so submitted_at is refreshed.
func (s *VerificationService) Reopen(applicationID, actor string) (*models.VerificationApplication, error) {
	if strings.TrimSpace(actor) == "" {
		return nil, models.ErrValidation("reopen requires an acting admin")
	}

	app, err := s.store.GetApplication(applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != models.ApplicationStatusOnHold {
		return nil, models.ErrInvalidTransition(app.Status, "reopen")
	}

	from := app.Status
	now := time.Now()
	app.Status = models.ApplicationStatusPending
	app.SubmittedAt = &now
	app.HoldNotes = ""
	app.ReviewedBy = actor
	app.ReviewedAt = &now

	if err := s.commit(app, from, actor); err != nil {
		return nil, err
	}
	return app, nil
}

// DecideDocument applies a per-document admin verdict. Document decisions
// never touch the parent application's status: approving every document does
// not approve the application and rejecting one document does not reject it.
func (s *VerificationService) DecideDocument(documentID string, decision Decision, reason, actor string) (*models.DocumentRecord, error) {
	var target models.DocumentStatus
	switch decision {
	case DecisionApprove:
		target = models.DocumentStatusApproved
	case DecisionReject:
		target = models.DocumentStatusRejected
	default:
		return nil, models.ErrValidation("unknown document decision %q", decision)
	}

	reason = strings.TrimSpace(reason)
	if decision == DecisionReject && reason == "" {
		return nil, models.ErrValidation("document rejection requires a non-empty reason")
	}
	if strings.TrimSpace(actor) == "" {
		return nil, models.ErrValidation("decision requires an acting admin")
	}

	doc, err := s.store.GetDocument(documentID)
	if err != nil {
		return nil, err
	}
	if doc.Superseded {
		return nil, models.ErrValidation("document %s was superseded by a newer upload", documentID)
	}
	if doc.Status == target {
		return doc, nil // idempotent retry
	}

	from := doc.Status
	now := time.Now()
	doc.Status = target
	doc.ReviewedBy = actor
	doc.ReviewedAt = &now
	if target == models.DocumentStatusRejected {
		doc.RejectionReason = reason
	} else {
		doc.RejectionReason = ""
	}

	if err := s.store.UpdateDocument(doc, from); err != nil {
		return nil, err
	}
	if s.notifier != nil {
		_ = s.notifier.DocumentStatusChanged(models.NewDocumentStatusEvent(doc, from, actor))
	}
	return doc, nil
}

// GetApplicationView returns the application with its live documents sorted
// by registry priority, unknown types last, ties by upload time.
func (s *VerificationService) GetApplicationView(applicationID string) (*models.ApplicationView, error) {
	app, err := s.store.GetApplication(applicationID)
	if err != nil {
		return nil, err
	}
	docs, err := s.store.GetDocumentsByApplication(app.ApplicationID)
	if err != nil {
		return nil, err
	}
	registry.SortDocuments(app.CarrierType, docs)
	return &models.ApplicationView{Application: app, Documents: docs}, nil
}

// GetCarrierApplication returns the carrier's current active application.
func (s *VerificationService) GetCarrierApplication(carrierID string) (*models.VerificationApplication, error) {
	return s.store.GetActiveApplication(carrierID)
}

// ReviewQueue lists applications awaiting review, newest first. carrierType
// "" returns all; passing solo or enterprise segments the queue for display.
func (s *VerificationService) ReviewQueue(carrierType models.CarrierType) ([]*models.VerificationApplication, error) {
	return s.store.ListApplications(
		[]models.ApplicationStatus{models.ApplicationStatusPending, models.ApplicationStatusUnderReview},
		carrierType,
	)
}

// DecidedQueue lists applications that reached a verdict or are parked on
// hold, for the admin history tabs.
func (s *VerificationService) DecidedQueue(carrierType models.CarrierType) ([]*models.VerificationApplication, error) {
	return s.store.ListApplications(
		[]models.ApplicationStatus{models.ApplicationStatusApproved, models.ApplicationStatusRejected, models.ApplicationStatusOnHold},
		carrierType,
	)
}

// commit persists the transition, then invalidates gating synchronously, then
// notifies. Order matters: state is durable before anyone hears about it, and
// the gate can never serve the old status after this returns.
func (s *VerificationService) commit(app *models.VerificationApplication, from models.ApplicationStatus, actor string) error {
	if err := s.store.UpdateApplication(app, app.Version); err != nil {
		return err
	}
	if s.gate != nil {
		s.gate.Invalidate(app.CarrierID)
	}
	if s.notifier != nil {
		_ = s.notifier.ApplicationStatusChanged(models.NewApplicationStatusEvent(app, from, actor))
	}
	return nil
}

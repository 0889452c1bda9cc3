package models

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatusEvent is emitted on every application status transition.
// Delivered at-least-once after the transition commits; consumers must be
// idempotent.
type ApplicationStatusEvent struct {
	EventID       string            `json:"event_id"`
	ApplicationID string            `json:"application_id"`
	CarrierID     string            `json:"carrier_id"`
	FromStatus    ApplicationStatus `json:"from_status"`
	ToStatus      ApplicationStatus `json:"to_status"`
	Actor         string            `json:"actor,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
}

// DocumentStatusEvent is emitted on every document-level decision.
type DocumentStatusEvent struct {
	EventID       string         `json:"event_id"`
	DocumentID    string         `json:"document_id"`
	ApplicationID string         `json:"application_id"`
	DocumentType  string         `json:"document_type"`
	FromStatus    DocumentStatus `json:"from_status"`
	ToStatus      DocumentStatus `json:"to_status"`
	Actor         string         `json:"actor,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
}

// NewApplicationStatusEvent stamps a fresh event ID and timestamp.
func NewApplicationStatusEvent(app *VerificationApplication, from ApplicationStatus, actor string) ApplicationStatusEvent {
	return ApplicationStatusEvent{
		EventID:       uuid.NewString(),
		ApplicationID: app.ApplicationID,
		CarrierID:     app.CarrierID,
		FromStatus:    from,
		ToStatus:      app.Status,
		Actor:         actor,
		Timestamp:     time.Now(),
	}
}

// NewDocumentStatusEvent stamps a fresh event ID and timestamp.
func NewDocumentStatusEvent(doc *DocumentRecord, from DocumentStatus, actor string) DocumentStatusEvent {
	return DocumentStatusEvent{
		EventID:       uuid.NewString(),
		DocumentID:    doc.DocumentID,
		ApplicationID: doc.ApplicationID,
		DocumentType:  doc.DocumentType,
		FromStatus:    from,
		ToStatus:      doc.Status,
		Actor:         actor,
		Timestamp:     time.Now(),
	}
}

package services

import (
	"fmt"

	"github.com/sanyam-ls/loadsmart-backend/internal/models"
	"github.com/sanyam-ls/loadsmart-backend/internal/registry"
	"github.com/sanyam-ls/loadsmart-backend/internal/storage"
)

// TemplateConfig holds WhatsApp template configuration
type TemplateConfig struct {
	SID         string
	Description string
	Parameters  []string
}

// WhatsAppTemplates maps template names to their Twilio Content SIDs
var WhatsAppTemplates = map[string]TemplateConfig{
	"verification_submitted": {
		SID:         "HX9a41b2c0d4f71e85ab3297c6510d84f2",
		Description: "Application received and queued for review",
		Parameters:  []string{"name", "application_id", "expected_time"},
	},
	"verification_approved": {
		SID:         "HX1e355b7c7317ecf67b530b1352579e2e",
		Description: "Carrier verification approved",
		Parameters:  []string{"name", "application_id"},
	},
	"verification_rejected": {
		SID:         "HX52c9e1a8f0b347d6921ce05b87a3f6d1",
		Description: "Carrier verification rejected",
		Parameters:  []string{"name", "application_id", "reason"},
	},
	"verification_on_hold": {
		SID:         "HX83d06f214ac95b7e0f41d8a2c6579be3",
		Description: "Application placed on hold pending clarification",
		Parameters:  []string{"name", "application_id", "notes"},
	},
	"document_rejected": {
		SID:         "HX6b17a0d93ef824c5b082f4e1a95c3d70",
		Description: "A document was rejected, re-upload requested",
		Parameters:  []string{"name", "document_type", "reason"},
	},
	"verification_pending_reminder": {
		SID:         "HX4f82c1b56da03e97a1b5d64c08e2f913",
		Description: "Reminder that an application is still awaiting review",
		Parameters:  []string{"name", "application_id", "waiting_since"},
	},
}

// WhatsAppNotifier subscribes to the change-notification port and tells the
// carrier over WhatsApp what happened to their application. Send failures are
// reported back to the fan-out, which logs and moves on; notifications never
// block or roll back a decision.
type WhatsAppNotifier struct {
	store  storage.Store
	twilio *TwilioService
}

// NewWhatsAppNotifier creates a WhatsApp notifier consumer
func NewWhatsAppNotifier(store storage.Store, twilioService *TwilioService) *WhatsAppNotifier {
	return &WhatsAppNotifier{
		store:  store,
		twilio: twilioService,
	}
}

func (w *WhatsAppNotifier) ApplicationStatusChanged(event models.ApplicationStatusEvent) error {
	carrier, err := w.store.GetCarrier(event.CarrierID)
	if err != nil {
		return fmt.Errorf("lookup carrier %s: %w", event.CarrierID, err)
	}

	var template string
	params := map[string]string{
		"name":           carrier.Name,
		"application_id": event.ApplicationID,
	}

	switch event.ToStatus {
	case models.ApplicationStatusPending:
		if event.FromStatus != models.ApplicationStatusDraft {
			return nil // reopen from hold, no carrier-facing message
		}
		template = "verification_submitted"
		params["expected_time"] = "24-48 hours"
	case models.ApplicationStatusApproved:
		template = "verification_approved"
	case models.ApplicationStatusRejected:
		template = "verification_rejected"
	case models.ApplicationStatusOnHold:
		template = "verification_on_hold"
	default:
		return nil // under_review is internal, nothing to tell the carrier
	}

	return w.sendTemplate(carrier.Phone, template, params)
}

func (w *WhatsAppNotifier) DocumentStatusChanged(event models.DocumentStatusEvent) error {
	// Carriers only hear about rejections; approvals surface in the app.
	if event.ToStatus != models.DocumentStatusRejected {
		return nil
	}

	app, err := w.store.GetApplication(event.ApplicationID)
	if err != nil {
		return fmt.Errorf("lookup application %s: %w", event.ApplicationID, err)
	}
	carrier, err := w.store.GetCarrier(app.CarrierID)
	if err != nil {
		return fmt.Errorf("lookup carrier %s: %w", app.CarrierID, err)
	}
	doc, err := w.store.GetDocument(event.DocumentID)
	if err != nil {
		return fmt.Errorf("lookup document %s: %w", event.DocumentID, err)
	}

	return w.sendTemplate(carrier.Phone, "document_rejected", map[string]string{
		"name":          carrier.Name,
		"document_type": registry.DisplayNameOf(app.CarrierType, event.DocumentType),
		"reason":        doc.RejectionReason,
	})
}

func (w *WhatsAppNotifier) sendTemplate(phone, name string, params map[string]string) error {
	template, ok := WhatsAppTemplates[name]
	if !ok {
		return fmt.Errorf("unknown WhatsApp template %q", name)
	}
	return w.twilio.SendWhatsAppTemplate(phone, template.SID, params)
}

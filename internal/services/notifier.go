package services

import (
	"log"

	"github.com/sanyam-ls/loadsmart-backend/internal/models"
)

// Notifier is the outbound change-notification port. Implementations receive
// events after the transition has committed; a failing consumer never rolls
// the transition back. Delivery is at-least-once, so consumers must handle
// replays idempotently.
type Notifier interface {
	ApplicationStatusChanged(event models.ApplicationStatusEvent) error
	DocumentStatusChanged(event models.DocumentStatusEvent) error
}

// MultiNotifier fans events out to every registered consumer. Consumer errors
// are logged and swallowed so one broken subscriber cannot starve the rest.
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier creates a fan-out notifier over the given consumers.
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

// Register adds another consumer to the fan-out.
func (m *MultiNotifier) Register(n Notifier) {
	m.notifiers = append(m.notifiers, n)
}

func (m *MultiNotifier) ApplicationStatusChanged(event models.ApplicationStatusEvent) error {
	for _, n := range m.notifiers {
		if err := n.ApplicationStatusChanged(event); err != nil {
			log.Printf("notifier failed for application %s (%s -> %s): %v",
				event.ApplicationID, event.FromStatus, event.ToStatus, err)
		}
	}
	return nil
}

func (m *MultiNotifier) DocumentStatusChanged(event models.DocumentStatusEvent) error {
	for _, n := range m.notifiers {
		if err := n.DocumentStatusChanged(event); err != nil {
			log.Printf("notifier failed for document %s (%s -> %s): %v",
				event.DocumentID, event.FromStatus, event.ToStatus, err)
		}
	}
	return nil
}

// LogNotifier writes every event to the application log; always registered so
// each decision leaves an audit trace even with WhatsApp disabled.
type LogNotifier struct{}

func (LogNotifier) ApplicationStatusChanged(event models.ApplicationStatusEvent) error {
	log.Printf("application %s: %s -> %s (by %s)",
		event.ApplicationID, event.FromStatus, event.ToStatus, event.Actor)
	return nil
}

func (LogNotifier) DocumentStatusChanged(event models.DocumentStatusEvent) error {
	log.Printf("document %s (%s) on %s: %s -> %s (by %s)",
		event.DocumentID, event.DocumentType, event.ApplicationID,
		event.FromStatus, event.ToStatus, event.Actor)
	return nil
}

package jobs

import (
	"log"
	"sync"
	"time"

	"github.com/sanyam-ls/loadsmart-backend/internal/models"
	"github.com/sanyam-ls/loadsmart-backend/internal/services"
	"github.com/sanyam-ls/loadsmart-backend/internal/storage"
)

// staleAfter is how long an application may sit in the review queue before
// the carrier gets a reminder that it is still being processed.
const staleAfter = 48 * time.Hour

// ReminderJob periodically nudges carriers whose applications have been
// waiting in the review queue too long.
type ReminderJob struct {
	store         storage.Store
	twilioService *services.TwilioService
	interval      time.Duration
	stop          chan struct{}

	// mu guards isRunning: Start runs on the main goroutine, Stop from the
	// shutdown signal handler.
	mu        sync.Mutex
	isRunning bool
}

// NewReminderJob creates a new reminder job scheduler
func NewReminderJob(store storage.Store, twilioService *services.TwilioService) *ReminderJob {
	return &ReminderJob{
		store:         store,
		twilioService: twilioService,
		interval:      6 * time.Hour,
		stop:          make(chan struct{}),
	}
}

// Start begins the scheduled reminder loop
func (r *ReminderJob) Start() {
	r.mu.Lock()
	if r.isRunning {
		r.mu.Unlock()
		log.Println("Reminder job already running")
		return
	}
	r.isRunning = true
	r.mu.Unlock()
	log.Println("Starting verification reminder job...")

	go r.loop()
}

// Stop halts the scheduled loop
func (r *ReminderJob) Stop() {
	r.mu.Lock()
	if !r.isRunning {
		r.mu.Unlock()
		return
	}
	r.isRunning = false
	r.mu.Unlock()
	close(r.stop)
	log.Println("Stopping verification reminder job...")
}

func (r *ReminderJob) loop() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sendPendingReminders()
		case <-r.stop:
			return
		}
	}
}

// sendPendingReminders notifies carriers whose applications have been queued
// longer than staleAfter. Best effort only; failures are logged and retried
// on the next tick.
func (r *ReminderJob) sendPendingReminders() {
	apps, err := r.store.ListApplications(
		[]models.ApplicationStatus{models.ApplicationStatusPending, models.ApplicationStatusUnderReview},
		"",
	)
	if err != nil {
		log.Printf("Failed to list pending applications: %v", err)
		return
	}

	reminded := 0
	for _, app := range apps {
		if app.SubmittedAt == nil || time.Since(*app.SubmittedAt) < staleAfter {
			continue
		}

		carrier, err := r.store.GetCarrier(app.CarrierID)
		if err != nil {
			log.Printf("Failed to load carrier %s for reminder: %v", app.CarrierID, err)
			continue
		}

		template := services.WhatsAppTemplates["verification_pending_reminder"]
		err = r.twilioService.SendWhatsAppTemplate(carrier.Phone, template.SID, map[string]string{
			"name":           carrier.Name,
			"application_id": app.ApplicationID,
			"waiting_since":  app.SubmittedAt.Format("02 Jan 2006"),
		})
		if err != nil {
			log.Printf("Failed to send pending reminder for %s: %v", app.ApplicationID, err)
			continue
		}
		reminded++
	}

	if reminded > 0 {
		log.Printf("Sent %d pending verification reminders", reminded)
	}
}

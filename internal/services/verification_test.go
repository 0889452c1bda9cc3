package services

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanyam-ls/loadsmart-backend/internal/models"
	"github.com/sanyam-ls/loadsmart-backend/internal/registry"
	"github.com/sanyam-ls/loadsmart-backend/internal/storage"
)

// recordingNotifier captures emitted events for assertions.
type recordingNotifier struct {
	mu        sync.Mutex
	appEvents []models.ApplicationStatusEvent
	docEvents []models.DocumentStatusEvent
}

func (r *recordingNotifier) ApplicationStatusChanged(event models.ApplicationStatusEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appEvents = append(r.appEvents, event)
	return nil
}

func (r *recordingNotifier) DocumentStatusChanged(event models.DocumentStatusEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docEvents = append(r.docEvents, event)
	return nil
}

func (r *recordingNotifier) appEventCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.appEvents)
}

type fixture struct {
	store    *storage.MemoryStore
	gate     *GatingService
	notifier *recordingNotifier
	svc      *VerificationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := storage.NewMemoryStore()
	gate := NewGatingService(store, nil, 0)
	notifier := &recordingNotifier{}
	return &fixture{
		store:    store,
		gate:     gate,
		notifier: notifier,
		svc:      NewVerificationService(store, gate, notifier),
	}
}

var phoneSeq atomic.Int64

func (f *fixture) registerCarrier(t *testing.T, carrierType models.CarrierType) *models.Carrier {
	t.Helper()
	fleetSize := 1
	if carrierType == models.CarrierTypeEnterprise {
		fleetSize = 12
	}
	carrier, err := f.store.CreateCarrier(&models.CarrierRegistration{
		Name:        "Ramesh Transports",
		Phone:       fmt.Sprintf("+9198%08d", phoneSeq.Add(1)),
		CarrierType: string(carrierType),
		FleetSize:   fleetSize,
	})
	require.NoError(t, err)
	return carrier
}

func (f *fixture) openApplication(t *testing.T, carrierType models.CarrierType) *models.VerificationApplication {
	t.Helper()
	carrier := f.registerCarrier(t, carrierType)
	app, err := f.svc.OpenApplication(carrier.CarrierID, &models.SoloDetails{AadhaarNumber: "XXXX-1234"}, nil)
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusDraft, app.Status)
	return app
}

func (f *fixture) uploadAllRequired(t *testing.T, app *models.VerificationApplication) {
	t.Helper()
	for _, docType := range registry.RequiredTypes(app.CarrierType) {
		_, err := f.svc.UploadDocument(app.ApplicationID, &models.DocumentUpload{
			DocumentType:  docType,
			FileReference: "s3://docs/" + docType + ".pdf",
		})
		require.NoError(t, err)
	}
}

// submitted returns an application already in the review queue.
func (f *fixture) submitted(t *testing.T, carrierType models.CarrierType) *models.VerificationApplication {
	t.Helper()
	app := f.openApplication(t, carrierType)
	f.uploadAllRequired(t, app)
	submitted, err := f.svc.Submit(app.ApplicationID)
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusPending, submitted.Status)
	return submitted
}

func TestOpenApplicationRejectsSecondActive(t *testing.T) {
	f := newFixture(t)
	carrier := f.registerCarrier(t, models.CarrierTypeSolo)

	_, err := f.svc.OpenApplication(carrier.CarrierID, nil, nil)
	require.NoError(t, err)

	_, err = f.svc.OpenApplication(carrier.CarrierID, nil, nil)
	assert.True(t, models.IsKind(err, models.ErrKindValidation))
}

// Two carriers racing to open (double-tap on the client) must end up with a
// single application; the uniqueness check lives under the store's write
// lock, not in a read-then-create in the service.
func TestConcurrentOpenApplicationSingleWinner(t *testing.T) {
	f := newFixture(t)
	carrier := f.registerCarrier(t, models.CarrierTypeSolo)

	var wg sync.WaitGroup
	var opened atomic.Int32
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.svc.OpenApplication(carrier.CarrierID, nil, nil); err == nil {
				opened.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), opened.Load())

	active, err := f.store.GetActiveApplication(carrier.CarrierID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusDraft, active.Status)
}

func TestOpenApplicationUnknownCarrier(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.OpenApplication("CAR99999", nil, nil)
	assert.True(t, models.IsKind(err, models.ErrKindNotFound))
}

// Scenario A: a solo carrier with all 7 required types uploaded (each still
// pending) submits successfully and lands in pending.
func TestSubmitSoloWithAllDocuments(t *testing.T) {
	f := newFixture(t)
	app := f.openApplication(t, models.CarrierTypeSolo)

	required := registry.RequiredTypes(models.CarrierTypeSolo)
	require.Len(t, required, 7)
	f.uploadAllRequired(t, app)

	submitted, err := f.svc.Submit(app.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, submitted.Status)
	require.NotNil(t, submitted.SubmittedAt)

	require.Equal(t, 1, f.notifier.appEventCount())
	assert.Equal(t, models.ApplicationStatusDraft, f.notifier.appEvents[0].FromStatus)
	assert.Equal(t, models.ApplicationStatusPending, f.notifier.appEvents[0].ToStatus)
}

func TestSubmitFailsWithMissingDocuments(t *testing.T) {
	f := newFixture(t)
	app := f.openApplication(t, models.CarrierTypeSolo)

	// Upload everything except the fitness certificate.
	for _, docType := range registry.RequiredTypes(models.CarrierTypeSolo) {
		if docType == "fitness_certificate" {
			continue
		}
		_, err := f.svc.UploadDocument(app.ApplicationID, &models.DocumentUpload{
			DocumentType:  docType,
			FileReference: "s3://docs/" + docType + ".pdf",
		})
		require.NoError(t, err)
	}

	_, err := f.svc.Submit(app.ApplicationID)
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.ErrKindValidation))
	assert.Contains(t, err.Error(), "fitness_certificate")

	// No state change, no event.
	current, err := f.store.GetApplication(app.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusDraft, current.Status)
	assert.Equal(t, 0, f.notifier.appEventCount())
}

// Presence gates submission, approval does not: a rejected upload still
// counts as present.
func TestSubmitCountsRejectedDocumentsAsPresent(t *testing.T) {
	f := newFixture(t)
	app := f.openApplication(t, models.CarrierTypeSolo)
	f.uploadAllRequired(t, app)

	docs, err := f.store.GetDocumentsByApplication(app.ApplicationID)
	require.NoError(t, err)
	// Reject the aadhaar card before submission. Document decisions are
	// legal regardless of application state.
	for _, d := range docs {
		if d.DocumentType == "aadhaar_card" {
			_, err := f.svc.DecideDocument(d.DocumentID, DecisionReject, "illegible scan", "admin-1")
			require.NoError(t, err)
		}
	}

	submitted, err := f.svc.Submit(app.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, submitted.Status)
}

func TestSubmitFromNonDraftFails(t *testing.T) {
	f := newFixture(t)
	app := f.submitted(t, models.CarrierTypeSolo)

	_, err := f.svc.Submit(app.ApplicationID)
	assert.True(t, models.IsKind(err, models.ErrKindInvalidTransition))
}

func TestStartReview(t *testing.T) {
	f := newFixture(t)
	app := f.submitted(t, models.CarrierTypeSolo)

	reviewed, err := f.svc.StartReview(app.ApplicationID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusUnderReview, reviewed.Status)

	// Repeating is a quiet no-op.
	events := f.notifier.appEventCount()
	again, err := f.svc.StartReview(app.ApplicationID, "admin-2")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusUnderReview, again.Status)
	assert.Equal(t, events, f.notifier.appEventCount())
}

func TestApproveFromPendingAndUnderReview(t *testing.T) {
	for _, startReview := range []bool{false, true} {
		f := newFixture(t)
		app := f.submitted(t, models.CarrierTypeEnterprise)
		if startReview {
			_, err := f.svc.StartReview(app.ApplicationID, "admin-1")
			require.NoError(t, err)
		}

		approved, err := f.svc.Decide(app.ApplicationID, DecisionApprove, "", "admin-1")
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationStatusApproved, approved.Status)
		assert.Equal(t, "admin-1", approved.ReviewedBy)
		require.NotNil(t, approved.ReviewedAt)
	}
}

// Scenario C: reject with an empty reason fails validation and changes
// nothing.
func TestRejectRequiresReason(t *testing.T) {
	f := newFixture(t)
	app := f.submitted(t, models.CarrierTypeSolo)
	events := f.notifier.appEventCount()

	for _, reason := range []string{"", "   ", "\t\n"} {
		_, err := f.svc.Decide(app.ApplicationID, DecisionReject, reason, "admin-1")
		require.Error(t, err)
		assert.True(t, models.IsKind(err, models.ErrKindValidation))
	}

	current, err := f.store.GetApplication(app.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, current.Status)
	assert.Empty(t, current.ReviewedBy)
	assert.Equal(t, events, f.notifier.appEventCount())
}

func TestHoldRequiresNotes(t *testing.T) {
	f := newFixture(t)
	app := f.submitted(t, models.CarrierTypeSolo)

	_, err := f.svc.Decide(app.ApplicationID, DecisionHold, "  ", "admin-1")
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.ErrKindValidation))

	current, err := f.store.GetApplication(app.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, current.Status)
}

func TestDecideRequiresActor(t *testing.T) {
	f := newFixture(t)
	app := f.submitted(t, models.CarrierTypeSolo)

	_, err := f.svc.Decide(app.ApplicationID, DecisionApprove, "", "")
	assert.True(t, models.IsKind(err, models.ErrKindValidation))
}

func TestRejectIsTerminal(t *testing.T) {
	f := newFixture(t)
	app := f.submitted(t, models.CarrierTypeSolo)

	rejected, err := f.svc.Decide(app.ApplicationID, DecisionReject, "forged RC", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusRejected, rejected.Status)
	assert.Equal(t, "forged RC", rejected.RejectionReason)

	// No way out of rejected: not approve, not hold, not reopen.
	_, err = f.svc.Decide(app.ApplicationID, DecisionApprove, "", "admin-2")
	assert.True(t, models.IsKind(err, models.ErrKindInvalidTransition))
	_, err = f.svc.Decide(app.ApplicationID, DecisionHold, "second look", "admin-2")
	assert.True(t, models.IsKind(err, models.ErrKindInvalidTransition))
	_, err = f.svc.Reopen(app.ApplicationID, "admin-2")
	assert.True(t, models.IsKind(err, models.ErrKindInvalidTransition))

	// The carrier may start over with a fresh application.
	fresh, err := f.svc.OpenApplication(app.CarrierID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusDraft, fresh.Status)
}

// Scenario D: hold with notes, then reopen; status path is
// pending -> on_hold -> pending and the notes are cleared.
func TestHoldThenReopen(t *testing.T) {
	f := newFixture(t)
	app := f.submitted(t, models.CarrierTypeEnterprise)

	held, err := f.svc.Decide(app.ApplicationID, DecisionHold, "awaiting bank proof", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusOnHold, held.Status)
	assert.Equal(t, "awaiting bank proof", held.HoldNotes)

	reopened, err := f.svc.Reopen(app.ApplicationID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, reopened.Status)
	assert.Empty(t, reopened.HoldNotes)

	require.Equal(t, 3, f.notifier.appEventCount())
	assert.Equal(t, models.ApplicationStatusOnHold, f.notifier.appEvents[1].ToStatus)
	assert.Equal(t, models.ApplicationStatusPending, f.notifier.appEvents[2].ToStatus)
}

func TestApproveIsIdempotent(t *testing.T) {
	f := newFixture(t)
	app := f.submitted(t, models.CarrierTypeSolo)

	first, err := f.svc.Decide(app.ApplicationID, DecisionApprove, "", "admin-1")
	require.NoError(t, err)
	events := f.notifier.appEventCount()

	second, err := f.svc.Decide(app.ApplicationID, DecisionApprove, "", "admin-2")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApproved, second.Status)

	// The retry records nothing: same reviewer, same timestamp, no new event.
	assert.Equal(t, first.ReviewedBy, second.ReviewedBy)
	assert.True(t, first.ReviewedAt.Equal(*second.ReviewedAt))
	assert.Equal(t, events, f.notifier.appEventCount())
}

// Scenario B: a rejected document does not block an application approval,
// and the gate flips the moment the approval lands.
func TestDocumentRejectionDoesNotBlockApproval(t *testing.T) {
	f := newFixture(t)
	app := f.submitted(t, models.CarrierTypeSolo)

	docs, err := f.store.GetDocumentsByApplication(app.ApplicationID)
	require.NoError(t, err)
	var rcDoc *models.DocumentRecord
	for _, d := range docs {
		if d.DocumentType == "rc_certificate" {
			rcDoc = d
		}
	}
	require.NotNil(t, rcDoc)

	rejected, err := f.svc.DecideDocument(rcDoc.DocumentID, DecisionReject, "illegible scan", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, models.DocumentStatusRejected, rejected.Status)

	approved, err := f.svc.Decide(app.ApplicationID, DecisionApprove, "", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApproved, approved.Status)

	// Document stayed rejected.
	doc, err := f.store.GetDocument(rcDoc.DocumentID)
	require.NoError(t, err)
	assert.Equal(t, models.DocumentStatusRejected, doc.Status)

	allowed, err := f.gate.CanTransact(app.CarrierID)
	require.NoError(t, err)
	assert.True(t, allowed)
}

// Regression guard for the decoupling: deciding documents never moves the
// parent application, even when every document is approved.
func TestDocumentDecisionsNeverChangeApplicationStatus(t *testing.T) {
	f := newFixture(t)
	app := f.submitted(t, models.CarrierTypeSolo)

	docs, err := f.store.GetDocumentsByApplication(app.ApplicationID)
	require.NoError(t, err)
	for _, d := range docs {
		_, err := f.svc.DecideDocument(d.DocumentID, DecisionApprove, "", "admin-1")
		require.NoError(t, err)
	}

	current, err := f.store.GetApplication(app.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, current.Status)
	assert.Equal(t, 1, f.notifier.appEventCount()) // only the submit event

	allowed, err := f.gate.CanTransact(app.CarrierID)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestDecideDocumentValidation(t *testing.T) {
	f := newFixture(t)
	app := f.submitted(t, models.CarrierTypeSolo)
	docs, err := f.store.GetDocumentsByApplication(app.ApplicationID)
	require.NoError(t, err)
	doc := docs[0]

	_, err = f.svc.DecideDocument(doc.DocumentID, DecisionReject, "   ", "admin-1")
	assert.True(t, models.IsKind(err, models.ErrKindValidation))

	_, err = f.svc.DecideDocument(doc.DocumentID, DecisionHold, "notes", "admin-1")
	assert.True(t, models.IsKind(err, models.ErrKindValidation))

	_, err = f.svc.DecideDocument("DOC-missing", DecisionApprove, "", "admin-1")
	assert.True(t, models.IsKind(err, models.ErrKindNotFound))
}

func TestDecideDocumentIsIdempotent(t *testing.T) {
	f := newFixture(t)
	app := f.submitted(t, models.CarrierTypeSolo)
	docs, err := f.store.GetDocumentsByApplication(app.ApplicationID)
	require.NoError(t, err)
	doc := docs[0]

	first, err := f.svc.DecideDocument(doc.DocumentID, DecisionApprove, "", "admin-1")
	require.NoError(t, err)

	docEvents := len(f.notifier.docEvents)
	second, err := f.svc.DecideDocument(doc.DocumentID, DecisionApprove, "", "admin-2")
	require.NoError(t, err)
	assert.Equal(t, first.ReviewedBy, second.ReviewedBy)
	assert.Equal(t, docEvents, len(f.notifier.docEvents))
}

func TestReuploadAfterRejectionCreatesFreshPendingRecord(t *testing.T) {
	f := newFixture(t)
	app := f.submitted(t, models.CarrierTypeSolo)
	docs, err := f.store.GetDocumentsByApplication(app.ApplicationID)
	require.NoError(t, err)
	var aadhaar *models.DocumentRecord
	for _, d := range docs {
		if d.DocumentType == "aadhaar_card" {
			aadhaar = d
		}
	}
	require.NotNil(t, aadhaar)

	_, err = f.svc.DecideDocument(aadhaar.DocumentID, DecisionReject, "blurry", "admin-1")
	require.NoError(t, err)

	fresh, err := f.svc.UploadDocument(app.ApplicationID, &models.DocumentUpload{
		DocumentType:  "aadhaar_card",
		FileReference: "s3://docs/aadhaar-take2.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DocumentStatusPending, fresh.Status)

	// The old record is superseded: gone from the live view, refusing
	// further decisions.
	live, err := f.store.GetDocumentsByApplication(app.ApplicationID)
	require.NoError(t, err)
	for _, d := range live {
		if d.DocumentType == "aadhaar_card" {
			assert.Equal(t, fresh.DocumentID, d.DocumentID)
		}
	}
	_, err = f.svc.DecideDocument(aadhaar.DocumentID, DecisionApprove, "", "admin-1")
	assert.True(t, models.IsKind(err, models.ErrKindValidation))
}

func TestUploadRefusedOnTerminalApplication(t *testing.T) {
	f := newFixture(t)
	app := f.submitted(t, models.CarrierTypeSolo)
	_, err := f.svc.Decide(app.ApplicationID, DecisionReject, "fleet mismatch", "admin-1")
	require.NoError(t, err)

	_, err = f.svc.UploadDocument(app.ApplicationID, &models.DocumentUpload{
		DocumentType:  "other",
		FileReference: "s3://docs/late.pdf",
	})
	assert.True(t, models.IsKind(err, models.ErrKindInvalidTransition))
}

func TestGetApplicationViewSortsByRegistryPriority(t *testing.T) {
	f := newFixture(t)
	carrier := f.registerCarrier(t, models.CarrierTypeEnterprise)
	app, err := f.svc.OpenApplication(carrier.CarrierID, nil, &models.EnterpriseDetails{GSTINNumber: "29ABCDE1234F1Z5"})
	require.NoError(t, err)

	// Upload in scrambled order with an unknown type mixed in.
	for _, docType := range []string{"mystery_doc", "tan_certificate", "certificate_of_incorporation", "gstin_certificate"} {
		_, err := f.svc.UploadDocument(app.ApplicationID, &models.DocumentUpload{
			DocumentType:  docType,
			FileReference: "s3://docs/" + docType + ".pdf",
		})
		require.NoError(t, err)
	}

	view, err := f.svc.GetApplicationView(app.ApplicationID)
	require.NoError(t, err)
	got := make([]string, len(view.Documents))
	for i, d := range view.Documents {
		got[i] = d.DocumentType
	}
	assert.Equal(t, []string{"certificate_of_incorporation", "gstin_certificate", "tan_certificate", "mystery_doc"}, got)
}

func TestReviewQueueOrderAndSegmentation(t *testing.T) {
	f := newFixture(t)
	first := f.submitted(t, models.CarrierTypeSolo)
	time.Sleep(2 * time.Millisecond) // distinct submitted_at for a stable order
	second := f.submitted(t, models.CarrierTypeEnterprise)

	queue, err := f.svc.ReviewQueue("")
	require.NoError(t, err)
	require.Len(t, queue, 2)
	// Latest submission first.
	assert.Equal(t, second.ApplicationID, queue[0].ApplicationID)
	assert.Equal(t, first.ApplicationID, queue[1].ApplicationID)

	solo, err := f.svc.ReviewQueue(models.CarrierTypeSolo)
	require.NoError(t, err)
	require.Len(t, solo, 1)
	assert.Equal(t, first.ApplicationID, solo[0].ApplicationID)
}

func TestReopenReturnsToFrontOfQueue(t *testing.T) {
	f := newFixture(t)
	older := f.submitted(t, models.CarrierTypeSolo)
	time.Sleep(2 * time.Millisecond)
	newer := f.submitted(t, models.CarrierTypeSolo)
	time.Sleep(2 * time.Millisecond)

	_, err := f.svc.Decide(older.ApplicationID, DecisionHold, "awaiting bank proof", "admin-1")
	require.NoError(t, err)
	_, err = f.svc.Reopen(older.ApplicationID, "admin-1")
	require.NoError(t, err)

	queue, err := f.svc.ReviewQueue("")
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, older.ApplicationID, queue[0].ApplicationID)
	assert.Equal(t, newer.ApplicationID, queue[1].ApplicationID)
}

// Two admins deciding the same application concurrently: exactly one verdict
// lands, the other surfaces as a conflict or an illegal transition. Both are
// never applied.
func TestConcurrentConflictingDecisions(t *testing.T) {
	f := newFixture(t)
	app := f.submitted(t, models.CarrierTypeSolo)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = f.svc.Decide(app.ApplicationID, DecisionApprove, "", "admin-1")
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = f.svc.Decide(app.ApplicationID, DecisionReject, "forged RC", "admin-2")
	}()
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		kind := models.KindOf(err)
		assert.Contains(t, []models.ErrorKind{models.ErrKindConflict, models.ErrKindInvalidTransition}, kind)
	}
	require.Equal(t, 1, succeeded)

	final, err := f.store.GetApplication(app.ApplicationID)
	require.NoError(t, err)
	assert.True(t, final.Status == models.ApplicationStatusApproved || final.Status == models.ApplicationStatusRejected)
	assert.Equal(t, 2, f.notifier.appEventCount()) // submit + the one winning verdict
}

func TestStaleWriterGetsConflict(t *testing.T) {
	f := newFixture(t)
	app := f.submitted(t, models.CarrierTypeSolo)

	stale, err := f.store.GetApplication(app.ApplicationID)
	require.NoError(t, err)

	_, err = f.svc.Decide(app.ApplicationID, DecisionHold, "cross-check bank details", "admin-1")
	require.NoError(t, err)

	stale.Status = models.ApplicationStatusApproved
	err = f.store.UpdateApplication(stale, stale.Version)
	assert.True(t, models.IsKind(err, models.ErrKindConflict))
}

func TestDecideUnknownApplication(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Decide("APP-missing", DecisionApprove, "", "admin-1")
	assert.True(t, models.IsKind(err, models.ErrKindNotFound))
}

package jobs

import (
	"sync"
	"testing"

	"github.com/sanyam-ls/loadsmart-backend/internal/storage"
)

// Start runs on the main goroutine and Stop from the shutdown signal handler,
// so the running flag is contended. Concurrent and repeated calls must never
// double-close the stop channel or race on the flag.
func TestReminderJobStartStopConcurrent(t *testing.T) {
	job := NewReminderJob(storage.NewMemoryStore(), nil)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); job.Start() }()
	go func() { defer wg.Done(); job.Stop() }()
	go func() { defer wg.Done(); job.Stop() }()
	wg.Wait()

	// Whichever order the calls landed in, a final Stop leaves it stopped.
	job.Stop()
	job.Stop()
}

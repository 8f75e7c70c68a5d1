// Package jobs provides scheduled background tasks for the fulfillment service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// DeliveryTransitionJob runs a delivery transition pass on a configurable
// schedule (six-field cron spec, seconds first). Every pass moves each
// eligible order one delivery step forward and notifies the customer.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(deliveryJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Overlap
//
// At most one pass runs at a time. A trigger that fires while a pass is
// still running, scheduled or manual, is dropped with ErrPassInProgress.
//
// # Error Handling
//
//   - Per-order failures are logged at WARN and do not fail the pass
//   - A failed candidate query aborts the pass and is logged at ERROR
//   - Failed job starts will stop any already running jobs
package jobs

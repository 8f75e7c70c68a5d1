package commands

import (
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
)

// FailureKind classifies a per-order failure recorded during a pass.
type FailureKind string

const (
	// FailureTransition marks an order that was selected but could not move,
	// typically because it is already delivered.
	FailureTransition FailureKind = "transition"
	// FailurePersistence marks an order whose advance was not saved. It stays at
	// its previous delivery status and is retried on the next pass.
	FailurePersistence FailureKind = "persistence"
	// FailureNotification marks an order that advanced and was saved, but whose
	// customer notification was not dispatched.
	FailureNotification FailureKind = "notification"
	// FailureMalformed marks a stored order that could not be read back into
	// an aggregate. It is left untouched until someone repairs it.
	FailureMalformed FailureKind = "malformed"
)

// DeliveryPassFailure names the order and what went wrong with it.
type DeliveryPassFailure struct {
	OrderID kernel.UUID
	Kind    FailureKind
	Err     error
}

// DeliveryPassReport summarizes one delivery transition pass. Per-order
// failures never abort a pass; they are counted here instead.
//
// Advanced includes orders whose notification failed, since their new
// delivery status is persisted.
type DeliveryPassReport struct {
	Candidates         int
	Advanced           int
	SkippedFrozen      int
	SkippedTerminal    int
	SkippedMalformed   int
	FailedPersistence  int
	FailedNotification int
	Deferred           int
	Failures           []DeliveryPassFailure
}

// Failed counts the orders that were malformed or hit a persistence or
// notification failure.
func (r DeliveryPassReport) Failed() int {
	return r.SkippedMalformed + r.FailedPersistence + r.FailedNotification
}

type advanceOutcome int

const (
	outcomeAdvanced advanceOutcome = iota
	outcomeFrozen
	outcomeTerminal
	outcomeMalformed
	outcomePersistenceFailed
	outcomeDeferred
)

type advanceResult struct {
	outcome advanceOutcome
	failure *DeliveryPassFailure
}

// passAccumulator collects results from the pass workers.
type passAccumulator struct {
	mu     sync.Mutex
	report DeliveryPassReport
}

func (a *passAccumulator) add(r advanceResult) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch r.outcome {
	case outcomeAdvanced:
		a.report.Advanced++
	case outcomeFrozen:
		a.report.SkippedFrozen++
	case outcomeTerminal:
		a.report.SkippedTerminal++
	case outcomeMalformed:
		a.report.SkippedMalformed++
	case outcomePersistenceFailed:
		a.report.FailedPersistence++
	case outcomeDeferred:
		a.report.Deferred++
	}

	if r.failure != nil {
		if r.failure.Kind == FailureNotification {
			a.report.FailedNotification++
		}
		a.report.Failures = append(a.report.Failures, *r.failure)
	}
}

func (a *passAccumulator) result() DeliveryPassReport {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.report
}

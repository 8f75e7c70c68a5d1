package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

// ErrCandidateQueryFailed aborts a pass before any order is touched.
var ErrCandidateQueryFailed = errors.New("delivery candidates could not be loaded")

// DeliveryPassSettings bounds a single pass.
//
// Workers is the number of orders processed at once; values below 1 mean
// sequential processing. Budget is the wall-clock allowance for the pass;
// orders not started when it runs out are reported as deferred. Zero means
// no budget.
type DeliveryPassSettings struct {
	Workers int
	Budget  time.Duration
}

func (s DeliveryPassSettings) workers() int {
	if s.Workers < 1 {
		return 1
	}
	return s.Workers
}

// AdvanceDeliveriesCommandHandler runs delivery transition passes.
//
// A pass loads every order whose delivery status is Ready or InTransit and
// moves each eligible one a single step. Every order is persisted in its own
// unit of work, so a failure on one order never rolls back another. The
// customer notification is sent only after the new status is committed.
//
// Example:
//
//	handler := NewAdvanceDeliveriesCommandHandler(uowFactory, notifier,
//	    services.NewDeliveryAdvancer(), DeliveryPassSettings{Workers: 4, Budget: time.Minute})
//	report, err := handler.Handle(ctx, cmd)
type AdvanceDeliveriesCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	advancer   services.DeliveryAdvancer
	settings   DeliveryPassSettings
}

func NewAdvanceDeliveriesCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	advancer services.DeliveryAdvancer,
	settings DeliveryPassSettings,
) AdvanceDeliveriesCommandHandler {
	return AdvanceDeliveriesCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		advancer:   advancer,
		settings:   settings,
	}
}

// Handle runs one pass. The only error it returns is a failed candidate
// query; everything that goes wrong with individual orders is in the report,
// including stored orders the repository could not read.
func (h *AdvanceDeliveriesCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceDeliveriesCommand,
) (DeliveryPassReport, error) {
	if err := cmd.Validate(); err != nil {
		return DeliveryPassReport{}, err
	}

	candidates, unreadable, err := h.uowFactory.Create().OrderRepository().
		GetAllByDeliveryStatusIn(ctx, order.PendingDeliveryStatuses()...)
	if err != nil {
		return DeliveryPassReport{}, fmt.Errorf("%w: %w", ErrCandidateQueryFailed, err)
	}

	passCtx := ctx
	if h.settings.Budget > 0 {
		var cancel context.CancelFunc
		passCtx, cancel = context.WithTimeout(ctx, h.settings.Budget)
		defer cancel()
	}

	acc := &passAccumulator{}
	seen := make(map[kernel.UUID]struct{}, len(candidates)+len(unreadable))

	withoutID := 0
	for _, u := range unreadable {
		if u.ID.Validate() == nil {
			if _, dup := seen[u.ID]; dup {
				continue
			}
			seen[u.ID] = struct{}{}
		} else {
			// Rows without a usable id cannot collide with anything.
			withoutID++
		}

		acc.add(advanceResult{
			outcome: outcomeMalformed,
			failure: &DeliveryPassFailure{OrderID: u.ID, Kind: FailureMalformed, Err: u.Err},
		})
	}

	var g errgroup.Group
	g.SetLimit(h.settings.workers())

	for _, o := range candidates {
		if _, dup := seen[o.ID()]; dup {
			continue
		}
		seen[o.ID()] = struct{}{}

		if passCtx.Err() != nil {
			acc.add(advanceResult{outcome: outcomeDeferred})
			continue
		}

		g.Go(func() error {
			acc.add(h.advanceOne(passCtx, o))
			return nil
		})
	}

	_ = g.Wait()

	report := acc.result()
	report.Candidates = len(seen) + withoutID
	return report, nil
}

func (h *AdvanceDeliveriesCommandHandler) advanceOne(ctx context.Context, o *order.Order) advanceResult {
	if ctx.Err() != nil {
		return advanceResult{outcome: outcomeDeferred}
	}

	n, err := h.advancer.Advance(o)
	switch {
	case errors.Is(err, services.ErrOrderIsFrozen):
		return advanceResult{outcome: outcomeFrozen}
	case err != nil:
		return advanceResult{
			outcome: outcomeTerminal,
			failure: &DeliveryPassFailure{OrderID: o.ID(), Kind: FailureTransition, Err: err},
		}
	}

	if err = h.persist(ctx, o); err != nil {
		return advanceResult{
			outcome: outcomePersistenceFailed,
			failure: &DeliveryPassFailure{OrderID: o.ID(), Kind: FailurePersistence, Err: err},
		}
	}

	if err = h.notifier.Send(ctx, n); err != nil {
		return advanceResult{
			outcome: outcomeAdvanced,
			failure: &DeliveryPassFailure{OrderID: o.ID(), Kind: FailureNotification, Err: err},
		}
	}

	return advanceResult{outcome: outcomeAdvanced}
}

func (h *AdvanceDeliveriesCommandHandler) persist(ctx context.Context, o *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

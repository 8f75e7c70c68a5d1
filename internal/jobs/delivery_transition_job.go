package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultDeliverySchedule runs a pass every ten minutes.
const DefaultDeliverySchedule = "0 */10 * * * *"

// ErrPassInProgress is returned by RunOnce while another pass is running.
var ErrPassInProgress = errors.New("delivery pass already in progress")

type deliveryPassHandler interface {
	Handle(ctx context.Context, cmd commands.AdvanceDeliveriesCommand) (commands.DeliveryPassReport, error)
}

// PassObserver receives the outcome of every pass, e.g. for metrics.
type PassObserver interface {
	ObservePass(report commands.DeliveryPassReport, elapsed time.Duration, err error)
	ObserveOverlap()
}

// DeliveryTransitionJob triggers delivery transition passes.
type DeliveryTransitionJob struct {
	handler  deliveryPassHandler
	observer PassObserver
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	running sync.Mutex
}

// NewDeliveryTransitionJob creates the job. An empty schedule means
// DefaultDeliverySchedule.
func NewDeliveryTransitionJob(
	handler deliveryPassHandler,
	observer PassObserver,
	schedule string,
	logger *slog.Logger,
) *DeliveryTransitionJob {
	if schedule == "" {
		schedule = DefaultDeliverySchedule
	}

	return &DeliveryTransitionJob{
		handler:  handler,
		observer: observer,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "delivery_transition_job"),
	}
}

// Start schedules the job. It fails if the schedule does not parse.
func (j *DeliveryTransitionJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery transition job started", "schedule", j.schedule)
	return nil
}

// Stop unschedules the job and waits for a running pass to finish.
func (j *DeliveryTransitionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Delivery transition job stopped")
}

// RunOnce runs a single pass now, unless one is already running.
func (j *DeliveryTransitionJob) RunOnce(ctx context.Context) (commands.DeliveryPassReport, error) {
	if !j.running.TryLock() {
		j.observer.ObserveOverlap()
		j.logger.WarnContext(ctx, "Delivery pass skipped, previous pass still running")
		return commands.DeliveryPassReport{}, ErrPassInProgress
	}
	defer j.running.Unlock()

	cmd, err := commands.NewAdvanceDeliveriesCommand()
	if err != nil {
		return commands.DeliveryPassReport{}, err
	}

	start := time.Now()
	report, err := j.handler.Handle(ctx, cmd)
	elapsed := time.Since(start)
	j.observer.ObservePass(report, elapsed, err)

	if err != nil {
		j.logger.ErrorContext(ctx, "Delivery pass aborted", "error", err, "elapsed", elapsed)
		return report, err
	}

	for _, f := range report.Failures {
		j.logger.WarnContext(ctx, "Delivery pass order failure",
			"order_id", f.OrderID.String(), "kind", string(f.Kind), "error", f.Err)
	}

	j.logger.InfoContext(ctx, "Delivery pass completed",
		"candidates", report.Candidates,
		"advanced", report.Advanced,
		"skipped_frozen", report.SkippedFrozen,
		"skipped_terminal", report.SkippedTerminal,
		"skipped_malformed", report.SkippedMalformed,
		"failed_persistence", report.FailedPersistence,
		"failed_notification", report.FailedNotification,
		"deferred", report.Deferred,
		"elapsed", elapsed,
	)
	return report, nil
}

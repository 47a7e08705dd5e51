package reminders

import (
	"context"
	"time"

	"github.com/jwsummers/Canopy-Chronicles/pkg/db/models"
	pkgerrors "github.com/jwsummers/Canopy-Chronicles/pkg/errors"
	"github.com/jwsummers/Canopy-Chronicles/pkg/logger"
)

const dispatchBatchSize = 200

// notificationWriter is the slice of the notifications repository the
// dispatcher needs.
type notificationWriter interface {
	Create(ctx context.Context, notification *models.Notification) error
}

// Dispatcher fires due reminder schedules into the notifications table.
type Dispatcher interface {
	DispatchDue(ctx context.Context, now time.Time) (int, error)
}

type dispatcher struct {
	store         ScheduleStore
	notifications notificationWriter
	logger        *logger.Logger
}

// NewDispatcher wires the dispatch dependencies.
func NewDispatcher(store ScheduleStore, notifications notificationWriter, logg *logger.Logger) (Dispatcher, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "schedule store required")
	}
	if notifications == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notification writer required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &dispatcher{store: store, notifications: notifications, logger: logg}, nil
}

// DispatchDue writes one notification per due schedule and advances each
// schedule past now. A failure on one schedule is logged and skipped so a
// single bad row cannot stall the rest of the batch.
func (d *dispatcher) DispatchDue(ctx context.Context, now time.Time) (int, error) {
	due, err := d.store.ListDue(ctx, now, dispatchBatchSize)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list due reminders")
	}

	fired := 0
	for _, schedule := range due {
		notification := models.Notification{
			OwnerID: schedule.OwnerID,
			Title:   schedule.Title,
			Message: schedule.Body,
		}
		if err := d.notifications.Create(ctx, &notification); err != nil {
			d.logger.Error(d.logger.WithOwnerID(ctx, schedule.OwnerID.String()), "writing reminder notification failed", err)
			continue
		}

		next := nextFireAfter(schedule.NextFireAt, time.Duration(schedule.PeriodSeconds)*time.Second, now)
		if err := d.store.Advance(ctx, schedule.ID, next); err != nil {
			d.logger.Error(d.logger.WithOwnerID(ctx, schedule.OwnerID.String()), "advancing reminder schedule failed", err)
			continue
		}
		fired++
	}

	return fired, nil
}

// nextFireAfter steps the schedule forward by whole periods until it lands
// after now. A worker outage produces one catch-up notification, not one per
// missed period.
func nextFireAfter(last time.Time, period time.Duration, now time.Time) time.Time {
	if period <= 0 {
		return now
	}
	next := last
	for !next.After(now) {
		next = next.Add(period)
	}
	return next
}

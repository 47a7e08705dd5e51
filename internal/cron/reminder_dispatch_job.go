package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/jwsummers/Canopy-Chronicles/pkg/logger"
	"github.com/jwsummers/Canopy-Chronicles/pkg/metrics"
)

// reminderDispatcher fires due reminder schedules into the notifications table.
type reminderDispatcher interface {
	DispatchDue(ctx context.Context, now time.Time) (int, error)
}

// ReminderDispatchJobParams configure the dispatch job.
type ReminderDispatchJobParams struct {
	Logger     *logger.Logger
	Dispatcher reminderDispatcher
	Metrics    *metrics.CronJobMetrics
}

type reminderDispatchJob struct {
	logg       *logger.Logger
	dispatcher reminderDispatcher
	metrics    *metrics.CronJobMetrics
	now        func() time.Time
}

// NewReminderDispatchJob builds the job that fires due watering and
// fertilizing reminders.
func NewReminderDispatchJob(params ReminderDispatchJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Dispatcher == nil {
		return nil, fmt.Errorf("dispatcher required")
	}
	return &reminderDispatchJob{
		logg:       params.Logger,
		dispatcher: params.Dispatcher,
		metrics:    params.Metrics,
		now:        time.Now,
	}, nil
}

func (j *reminderDispatchJob) Name() string { return "reminder-dispatch" }

func (j *reminderDispatchJob) Run(ctx context.Context) error {
	fired, err := j.dispatcher.DispatchDue(ctx, j.now().UTC())
	if err != nil {
		return fmt.Errorf("reminder dispatch: %w", err)
	}
	if j.metrics != nil {
		j.metrics.AddDispatched(fired)
	}
	if fired > 0 {
		j.logg.Info(j.logg.WithField(ctx, "fired", fired), "reminders dispatched")
	}
	return nil
}

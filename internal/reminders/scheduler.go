package reminders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwsummers/Canopy-Chronicles/pkg/db/models"
	"github.com/jwsummers/Canopy-Chronicles/pkg/enums"
	pkgerrors "github.com/jwsummers/Canopy-Chronicles/pkg/errors"
)

// Scheduler registers and cancels repeating reminders for an owner. The
// device-facing contract: a repeating reminder fires every PeriodSeconds
// until cancelled.
type Scheduler interface {
	ScheduleRepeating(ctx context.Context, ownerID uuid.UUID, kind enums.ReminderKind, title, body string, period time.Duration) error
	CancelAll(ctx context.Context, ownerID uuid.UUID) error
}

type storeScheduler struct {
	store ScheduleStore
	now   func() time.Time
}

// NewScheduler builds a scheduler that keeps repeating reminders in the database.
func NewScheduler(store ScheduleStore) (Scheduler, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "schedule store required")
	}
	return &storeScheduler{store: store, now: time.Now}, nil
}

func (s *storeScheduler) ScheduleRepeating(ctx context.Context, ownerID uuid.UUID, kind enums.ReminderKind, title, body string, period time.Duration) error {
	if ownerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "owner id required")
	}
	if !kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid reminder kind")
	}
	if title == "" || body == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title and body required")
	}
	if period <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "period must be positive")
	}

	now := s.now().UTC()
	schedule := models.ReminderSchedule{
		OwnerID:       ownerID,
		Kind:          kind,
		Title:         title,
		Body:          body,
		PeriodSeconds: int64(period / time.Second),
		NextFireAt:    now.Add(period),
	}
	if err := s.store.Create(ctx, &schedule); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create reminder schedule")
	}
	return nil
}

func (s *storeScheduler) CancelAll(ctx context.Context, ownerID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "owner id required")
	}
	if _, err := s.store.DeleteByOwner(ctx, ownerID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel reminder schedules")
	}
	return nil
}

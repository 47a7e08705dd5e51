package reminders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwsummers/Canopy-Chronicles/pkg/db/models"
	"github.com/jwsummers/Canopy-Chronicles/pkg/enums"
	pkgerrors "github.com/jwsummers/Canopy-Chronicles/pkg/errors"
	"github.com/jwsummers/Canopy-Chronicles/pkg/logger"
)

const (
	WateringTitle    = "Watering Reminder"
	WateringBody     = "It's time to water your plants!"
	FertilizingTitle = "Fertilizing Reminder"
	FertilizingBody  = "It's time to fertilize your plants!"

	day = 24 * time.Hour
)

// profileSource provides the reminder preferences for an owner. A nil profile
// means no preferences exist yet, which reads as notifications disabled.
type profileSource interface {
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Profile, error)
}

// Service recomputes an owner's repeating reminders from their profile.
type Service interface {
	Reschedule(ctx context.Context, ownerID uuid.UUID) error
}

type service struct {
	scheduler Scheduler
	profiles  profileSource
	logger    *logger.Logger
}

// NewService wires reminder dependencies.
func NewService(scheduler Scheduler, profiles profileSource, logg *logger.Logger) (Service, error) {
	if scheduler == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "scheduler required")
	}
	if profiles == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "profile source required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{scheduler: scheduler, profiles: profiles, logger: logg}, nil
}

// Reschedule cancels every pending reminder for the owner, then registers the
// watering and fertilizing pair when notifications are enabled. Intervals are
// profile days converted to seconds.
func (s *service) Reschedule(ctx context.Context, ownerID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "owner id required")
	}

	profile, err := s.profiles.GetByOwner(ctx, ownerID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reminder preferences")
	}

	if err := s.scheduler.CancelAll(ctx, ownerID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel pending reminders")
	}

	if profile == nil || !profile.NotificationsEnabled {
		return nil
	}

	watering := time.Duration(profile.WateringIntervalDays) * day
	if err := s.scheduler.ScheduleRepeating(ctx, ownerID, enums.ReminderKindWatering, WateringTitle, WateringBody, watering); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "schedule watering reminder")
	}

	fertilizing := time.Duration(profile.FertilizingIntervalDays) * day
	if err := s.scheduler.ScheduleRepeating(ctx, ownerID, enums.ReminderKindFertilizing, FertilizingTitle, FertilizingBody, fertilizing); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "schedule fertilizing reminder")
	}

	s.logger.Info(s.logger.WithOwnerID(ctx, ownerID.String()), "reminders rescheduled")
	return nil
}

package profiles

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jwsummers/Canopy-Chronicles/pkg/db/models"
	pkgerrors "github.com/jwsummers/Canopy-Chronicles/pkg/errors"
	"github.com/jwsummers/Canopy-Chronicles/pkg/logger"
)

const (
	defaultWateringIntervalDays    = 2
	defaultFertilizingIntervalDays = 7
)

// emailSource resolves the account email used to seed a default display name.
type emailSource interface {
	EmailByID(ctx context.Context, userID uuid.UUID) (string, error)
}

// rescheduler recomputes an owner's repeating reminders.
type rescheduler interface {
	Reschedule(ctx context.Context, ownerID uuid.UUID) error
}

// UpdateParams is a partial profile edit; nil fields are left untouched.
type UpdateParams struct {
	DisplayName             *string `validate:"omitempty,min=1,max=80"`
	PhotoURL                *string `validate:"omitempty,url"`
	NotificationsEnabled    *bool
	WateringIntervalDays    *int `validate:"omitempty,min=1,max=365"`
	FertilizingIntervalDays *int `validate:"omitempty,min=1,max=365"`
}

// Service defines profile read/update operations.
type Service interface {
	Get(ctx context.Context, ownerID uuid.UUID) (*models.Profile, error)
	Update(ctx context.Context, ownerID uuid.UUID, params UpdateParams) (*models.Profile, error)
}

type service struct {
	repo      Repository
	emails    emailSource
	reminders rescheduler
	logger    *logger.Logger
}

// NewService wires profile dependencies.
func NewService(repo Repository, emails emailSource, reminders rescheduler, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "profiles repository required")
	}
	if emails == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "email source required")
	}
	if reminders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "reminder service required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{repo: repo, emails: emails, reminders: reminders, logger: logg}, nil
}

// Get returns the owner's profile, creating the default row on first read.
// The default display name is the local part of the account email, and
// notifications start disabled with 2/7 day intervals.
func (s *service) Get(ctx context.Context, ownerID uuid.UUID) (*models.Profile, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id required")
	}

	profile, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	if profile != nil {
		return profile, nil
	}

	email, err := s.emails.EmailByID(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve account email")
	}

	profile = &models.Profile{
		OwnerID:                 ownerID,
		DisplayName:             displayNameFromEmail(email),
		NotificationsEnabled:    false,
		WateringIntervalDays:    defaultWateringIntervalDays,
		FertilizingIntervalDays: defaultFertilizingIntervalDays,
	}
	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create default profile")
	}

	s.logger.Info(s.logger.WithOwnerID(ctx, ownerID.String()), "default profile created")
	return profile, nil
}

// Update applies the patch and recomputes reminders. A reschedule failure is
// logged, not returned; the profile write stands on its own.
func (s *service) Update(ctx context.Context, ownerID uuid.UUID, params UpdateParams) (*models.Profile, error) {
	profile, err := s.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if params.DisplayName != nil {
		name := strings.TrimSpace(*params.DisplayName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "display name cannot be blank")
		}
		profile.DisplayName = name
	}
	if params.PhotoURL != nil {
		profile.PhotoURL = params.PhotoURL
	}
	if params.NotificationsEnabled != nil {
		profile.NotificationsEnabled = *params.NotificationsEnabled
	}
	if params.WateringIntervalDays != nil {
		if *params.WateringIntervalDays < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "watering interval must be at least one day")
		}
		profile.WateringIntervalDays = *params.WateringIntervalDays
	}
	if params.FertilizingIntervalDays != nil {
		if *params.FertilizingIntervalDays < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "fertilizing interval must be at least one day")
		}
		profile.FertilizingIntervalDays = *params.FertilizingIntervalDays
	}

	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save profile")
	}

	if err := s.reminders.Reschedule(ctx, ownerID); err != nil {
		s.logger.Error(s.logger.WithOwnerID(ctx, ownerID.String()), "rescheduling reminders after profile update failed", err)
	}

	return profile, nil
}

func displayNameFromEmail(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return email
	}
	return local
}

package grows

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwsummers/Canopy-Chronicles/internal/media"
	"github.com/jwsummers/Canopy-Chronicles/pkg/db/models"
	"github.com/jwsummers/Canopy-Chronicles/pkg/enums"
	pkgerrors "github.com/jwsummers/Canopy-Chronicles/pkg/errors"
	"github.com/jwsummers/Canopy-Chronicles/pkg/logger"
)

// activityLog is the append-only write surface of the activity feed.
type activityLog interface {
	Append(ctx context.Context, activity *models.Activity) error
}

// rescheduler recomputes an owner's repeating reminders.
type rescheduler interface {
	Reschedule(ctx context.Context, ownerID uuid.UUID) error
}

// Service defines grow lifecycle and sub-entity operations.
type Service interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]models.Grow, error)
	Get(ctx context.Context, ownerID, growID uuid.UUID) (*models.Grow, error)
	Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*models.Grow, error)
	Update(ctx context.Context, ownerID, growID uuid.UUID, params UpdateParams) (*models.Grow, error)
	Complete(ctx context.Context, ownerID, growID uuid.UUID) error
	Delete(ctx context.Context, ownerID, growID uuid.UUID) error
	AddEvent(ctx context.Context, ownerID, growID uuid.UUID, params AddEventParams) (*models.GrowEvent, error)
	AddNote(ctx context.Context, ownerID, growID uuid.UUID, params AddNoteParams) (*models.Note, error)
	AddImage(ctx context.Context, ownerID, growID uuid.UUID, params AddImageParams) (*models.GrowImage, error)
}

type service struct {
	repo       Repository
	activities activityLog
	images     media.Store
	reminders  rescheduler
	logger     *logger.Logger
	now        func() time.Time
}

// NewService wires grow dependencies.
func NewService(repo Repository, activities activityLog, images media.Store, reminders rescheduler, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "grows repository required")
	}
	if activities == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "activity log required")
	}
	if images == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "image store required")
	}
	if reminders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "reminder service required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{
		repo:       repo,
		activities: activities,
		images:     images,
		reminders:  reminders,
		logger:     logg,
		now:        time.Now,
	}, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID) ([]models.Grow, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id required")
	}

	rows, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list grows")
	}
	if rows == nil {
		rows = []models.Grow{}
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, ownerID, growID uuid.UUID) (*models.Grow, error) {
	grow, err := s.loadGrow(ctx, ownerID, growID)
	if err != nil {
		return nil, err
	}
	return grow, nil
}

// Create persists the grow, uploads the optional cover image, appends the
// add_grow activity, and recomputes reminders. Activity and reminder failures
// are logged and swallowed; the grow write stands on its own.
func (s *service) Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*models.Grow, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id required")
	}
	if params.StrainName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "strain name required")
	}
	if !params.Stage.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid grow stage")
	}
	if params.StartDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start date required")
	}

	grow := models.Grow{
		OwnerID:    ownerID,
		StrainName: params.StrainName,
		Stage:      params.Stage,
		StartDate:  params.StartDate,
		IsIndoor:   params.IsIndoor,
		Status:     enums.GrowStatusActive,
	}

	if params.Image != nil {
		stored, err := s.images.Upload(ctx, ownerID, *params.Image)
		if err != nil {
			return nil, err
		}
		grow.ImageURL = &stored.URL
		grow.ImageKey = &stored.Key
	}

	if err := s.repo.Create(ctx, &grow); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create grow")
	}

	s.logActivity(ctx, &models.Activity{
		OwnerID:   ownerID,
		GrowID:    grow.ID,
		GrowName:  grow.StrainName,
		Type:      enums.ActivityTypeAddGrow,
		Timestamp: s.now().UTC(),
	})

	if err := s.reminders.Reschedule(ctx, ownerID); err != nil {
		s.logger.Error(s.logger.WithGrowID(ctx, grow.ID.String()), "rescheduling reminders after grow create failed", err)
	}

	return &grow, nil
}

func (s *service) Update(ctx context.Context, ownerID, growID uuid.UUID, params UpdateParams) (*models.Grow, error) {
	if params.StrainName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "strain name required")
	}
	if !params.Stage.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid grow stage")
	}

	grow, err := s.loadGrow(ctx, ownerID, growID)
	if err != nil {
		return nil, err
	}

	grow.StrainName = params.StrainName
	grow.Stage = params.Stage
	grow.StartDate = params.StartDate
	grow.IsIndoor = params.IsIndoor

	if err := s.repo.Update(ctx, grow); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update grow")
	}

	stage := grow.Stage
	s.logActivity(ctx, &models.Activity{
		OwnerID:   ownerID,
		GrowID:    grow.ID,
		GrowName:  grow.StrainName,
		Type:      enums.ActivityTypeUpdateStage,
		NewStage:  &stage,
		Timestamp: s.now().UTC(),
	})

	return grow, nil
}

func (s *service) Complete(ctx context.Context, ownerID, growID uuid.UUID) error {
	grow, err := s.loadGrow(ctx, ownerID, growID)
	if err != nil {
		return err
	}

	if _, err := s.repo.SetStatus(ctx, ownerID, growID, enums.GrowStatusComplete); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete grow")
	}

	s.logActivity(ctx, &models.Activity{
		OwnerID:   ownerID,
		GrowID:    growID,
		GrowName:  grow.StrainName,
		Type:      enums.ActivityTypeFinishGrow,
		Timestamp: s.now().UTC(),
	})

	return nil
}

// Delete removes the grow row, then its blob image, then appends the
// delete_grow activity. The activity row intentionally outlives the grow.
func (s *service) Delete(ctx context.Context, ownerID, growID uuid.UUID) error {
	grow, err := s.loadGrow(ctx, ownerID, growID)
	if err != nil {
		return err
	}

	if _, err := s.repo.Delete(ctx, ownerID, growID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete grow")
	}

	if grow.ImageKey != nil && *grow.ImageKey != "" {
		if err := s.images.Delete(ctx, *grow.ImageKey); err != nil {
			s.logger.Error(s.logger.WithGrowID(ctx, growID.String()), "deleting grow image blob failed", err)
		}
	}

	s.logActivity(ctx, &models.Activity{
		OwnerID:   ownerID,
		GrowID:    growID,
		GrowName:  grow.StrainName,
		Type:      enums.ActivityTypeDeleteGrow,
		Timestamp: s.now().UTC(),
	})

	return nil
}

func (s *service) AddEvent(ctx context.Context, ownerID, growID uuid.UUID, params AddEventParams) (*models.GrowEvent, error) {
	if params.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event name required")
	}
	if params.Date.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event date required")
	}

	grow, err := s.loadGrow(ctx, ownerID, growID)
	if err != nil {
		return nil, err
	}

	event := models.GrowEvent{
		GrowID:    growID,
		OwnerID:   ownerID,
		Name:      params.Name,
		Note:      params.Note,
		Date:      params.Date,
		Timestamp: s.now().UTC(),
	}
	if err := s.repo.CreateEvent(ctx, &event); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create grow event")
	}

	eventName := event.Name
	s.logActivity(ctx, &models.Activity{
		OwnerID:   ownerID,
		GrowID:    growID,
		GrowName:  grow.StrainName,
		Type:      enums.ActivityTypeAddEvent,
		EventName: &eventName,
		Timestamp: s.now().UTC(),
	})

	return &event, nil
}

func (s *service) AddNote(ctx context.Context, ownerID, growID uuid.UUID, params AddNoteParams) (*models.Note, error) {
	if params.Text == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "note text required")
	}

	grow, err := s.loadGrow(ctx, ownerID, growID)
	if err != nil {
		return nil, err
	}

	note := models.Note{
		GrowID:    growID,
		OwnerID:   ownerID,
		Text:      params.Text,
		Timestamp: s.now().UTC(),
	}
	if err := s.repo.CreateNote(ctx, &note); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create note")
	}

	s.logActivity(ctx, &models.Activity{
		OwnerID:   ownerID,
		GrowID:    growID,
		GrowName:  grow.StrainName,
		Type:      enums.ActivityTypeAddNote,
		Timestamp: s.now().UTC(),
	})

	return &note, nil
}

func (s *service) AddImage(ctx context.Context, ownerID, growID uuid.UUID, params AddImageParams) (*models.GrowImage, error) {
	grow, err := s.loadGrow(ctx, ownerID, growID)
	if err != nil {
		return nil, err
	}

	stored, err := s.images.Upload(ctx, ownerID, params.Image)
	if err != nil {
		return nil, err
	}

	image := models.GrowImage{
		GrowID:      growID,
		OwnerID:     ownerID,
		URL:         stored.URL,
		StorageKey:  stored.Key,
		Description: params.Description,
		Timestamp:   s.now().UTC(),
	}
	if err := s.repo.CreateImage(ctx, &image); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create grow image")
	}

	description := params.Description
	s.logActivity(ctx, &models.Activity{
		OwnerID:     ownerID,
		GrowID:      growID,
		GrowName:    grow.StrainName,
		Type:        enums.ActivityTypeAddImage,
		Description: &description,
		Timestamp:   s.now().UTC(),
	})

	return &image, nil
}

func (s *service) loadGrow(ctx context.Context, ownerID, growID uuid.UUID) (*models.Grow, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id required")
	}
	if growID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "grow id required")
	}

	grow, err := s.repo.GetByID(ctx, ownerID, growID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load grow")
	}
	if grow == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "grow not found")
	}
	return grow, nil
}

// logActivity appends to the activity feed without failing the caller.
func (s *service) logActivity(ctx context.Context, activity *models.Activity) {
	if err := s.activities.Append(ctx, activity); err != nil {
		s.logger.Error(s.logger.WithGrowID(ctx, activity.GrowID.String()), "appending activity failed", err)
	}
}

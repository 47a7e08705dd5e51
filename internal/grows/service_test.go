package grows

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/jwsummers/Canopy-Chronicles/internal/media"
	"github.com/jwsummers/Canopy-Chronicles/pkg/db/models"
	"github.com/jwsummers/Canopy-Chronicles/pkg/enums"
	pkgerrors "github.com/jwsummers/Canopy-Chronicles/pkg/errors"
	"github.com/jwsummers/Canopy-Chronicles/pkg/logger"
)

type fakeRepository struct {
	grows   map[uuid.UUID]*models.Grow
	events  []models.GrowEvent
	notes   []models.Note
	images  []models.GrowImage
	deleted []uuid.UUID

	createFn func(grow *models.Grow) error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{grows: make(map[uuid.UUID]*models.Grow)}
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) Create(ctx context.Context, grow *models.Grow) error {
	if f.createFn != nil {
		if err := f.createFn(grow); err != nil {
			return err
		}
	}
	if grow.ID == uuid.Nil {
		grow.ID = uuid.New()
	}
	copied := *grow
	f.grows[grow.ID] = &copied
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, ownerID, growID uuid.UUID) (*models.Grow, error) {
	grow, ok := f.grows[growID]
	if !ok || grow.OwnerID != ownerID {
		return nil, nil
	}
	copied := *grow
	return &copied, nil
}

func (f *fakeRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Grow, error) {
	var out []models.Grow
	for _, grow := range f.grows {
		if grow.OwnerID == ownerID {
			out = append(out, *grow)
		}
	}
	return out, nil
}

func (f *fakeRepository) ExistingGrowIDs(ctx context.Context, ownerID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	ids := make(map[uuid.UUID]struct{})
	for id, grow := range f.grows {
		if grow.OwnerID == ownerID {
			ids[id] = struct{}{}
		}
	}
	return ids, nil
}

func (f *fakeRepository) Update(ctx context.Context, grow *models.Grow) error {
	copied := *grow
	f.grows[grow.ID] = &copied
	return nil
}

func (f *fakeRepository) SetStatus(ctx context.Context, ownerID, growID uuid.UUID, status enums.GrowStatus) (int64, error) {
	grow, ok := f.grows[growID]
	if !ok || grow.OwnerID != ownerID {
		return 0, nil
	}
	grow.Status = status
	return 1, nil
}

func (f *fakeRepository) Delete(ctx context.Context, ownerID, growID uuid.UUID) (int64, error) {
	grow, ok := f.grows[growID]
	if !ok || grow.OwnerID != ownerID {
		return 0, nil
	}
	delete(f.grows, growID)
	f.deleted = append(f.deleted, growID)
	return 1, nil
}

func (f *fakeRepository) CreateEvent(ctx context.Context, event *models.GrowEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeRepository) CreateNote(ctx context.Context, note *models.Note) error {
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	f.notes = append(f.notes, *note)
	return nil
}

func (f *fakeRepository) CreateImage(ctx context.Context, image *models.GrowImage) error {
	if image.ID == uuid.Nil {
		image.ID = uuid.New()
	}
	f.images = append(f.images, *image)
	return nil
}

func (f *fakeRepository) ListEventsByGrow(ctx context.Context, growID uuid.UUID) ([]models.GrowEvent, error) {
	return f.events, nil
}

func (f *fakeRepository) ListNotesByGrow(ctx context.Context, growID uuid.UUID) ([]models.Note, error) {
	return f.notes, nil
}

func (f *fakeRepository) ListImagesByGrow(ctx context.Context, growID uuid.UUID) ([]models.GrowImage, error) {
	return f.images, nil
}

type fakeActivityLog struct {
	appended []models.Activity
	appendFn func(activity *models.Activity) error
}

func (f *fakeActivityLog) Append(ctx context.Context, activity *models.Activity) error {
	if f.appendFn != nil {
		if err := f.appendFn(activity); err != nil {
			return err
		}
	}
	f.appended = append(f.appended, *activity)
	return nil
}

type fakeImageStore struct {
	uploaded []string
	deleted  []string
	uploadFn func(input media.UploadInput) error
}

func (f *fakeImageStore) Upload(ctx context.Context, ownerID uuid.UUID, input media.UploadInput) (*media.StoredImage, error) {
	if f.uploadFn != nil {
		if err := f.uploadFn(input); err != nil {
			return nil, err
		}
	}
	key := "growImages/" + ownerID.String() + "/img.jpg"
	f.uploaded = append(f.uploaded, key)
	return &media.StoredImage{URL: "https://storage.googleapis.com/canopy-media/" + key, Key: key}, nil
}

func (f *fakeImageStore) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type fakeRescheduler struct {
	calls []uuid.UUID
	err   error
}

func (f *fakeRescheduler) Reschedule(ctx context.Context, ownerID uuid.UUID) error {
	f.calls = append(f.calls, ownerID)
	return f.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
}

type serviceFixture struct {
	repo       *fakeRepository
	activities *fakeActivityLog
	images     *fakeImageStore
	reminders  *fakeRescheduler
	svc        Service
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		repo:       newFakeRepository(),
		activities: &fakeActivityLog{},
		images:     &fakeImageStore{},
		reminders:  &fakeRescheduler{},
	}
	svc, err := NewService(f.repo, f.activities, f.images, f.reminders, testLogger())
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	f.svc = svc
	return f
}

func validCreateParams() CreateParams {
	return CreateParams{
		StrainName: "Northern Lights",
		Stage:      enums.GrowStageGerminating,
		StartDate:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		IsIndoor:   true,
	}
}

func TestCreateAppendsActivityAndReschedules(t *testing.T) {
	f := newFixture(t)
	ownerID := uuid.New()

	grow, err := f.svc.Create(context.Background(), ownerID, validCreateParams())
	if err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}
	if grow.Status != enums.GrowStatusActive {
		t.Fatalf("expected Active status, got %s", grow.Status)
	}

	if len(f.activities.appended) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(f.activities.appended))
	}
	activity := f.activities.appended[0]
	if activity.Type != enums.ActivityTypeAddGrow {
		t.Fatalf("expected add_grow, got %s", activity.Type)
	}
	if activity.GrowID != grow.ID || activity.GrowName != "Northern Lights" {
		t.Fatalf("unexpected activity %+v", activity)
	}

	if len(f.reminders.calls) != 1 || f.reminders.calls[0] != ownerID {
		t.Fatalf("expected reschedule for owner, got %v", f.reminders.calls)
	}
}

func TestCreateWithImageStoresBlob(t *testing.T) {
	f := newFixture(t)
	params := validCreateParams()
	params.Image = &media.UploadInput{Data: []byte("img"), ContentType: "image/jpeg"}

	grow, err := f.svc.Create(context.Background(), uuid.New(), params)
	if err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}
	if grow.ImageURL == nil || grow.ImageKey == nil {
		t.Fatal("expected image url and key set")
	}
	if len(f.images.uploaded) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(f.images.uploaded))
	}
}

func TestCreateSurvivesActivityFailure(t *testing.T) {
	f := newFixture(t)
	f.activities.appendFn = func(*models.Activity) error { return errors.New("feed down") }

	grow, err := f.svc.Create(context.Background(), uuid.New(), validCreateParams())
	if err != nil {
		t.Fatalf("create must not fail when activity append fails: %v", err)
	}
	if _, ok := f.repo.grows[grow.ID]; !ok {
		t.Fatal("grow write must stand")
	}
}

func TestCreateSurvivesRescheduleFailure(t *testing.T) {
	f := newFixture(t)
	f.reminders.err = errors.New("scheduler down")

	if _, err := f.svc.Create(context.Background(), uuid.New(), validCreateParams()); err != nil {
		t.Fatalf("create must not fail when reschedule fails: %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	params := validCreateParams()
	params.StrainName = ""
	if _, err := f.svc.Create(ctx, uuid.New(), params); err == nil {
		t.Fatal("expected error for empty strain name")
	}

	params = validCreateParams()
	params.Stage = enums.GrowStage("Sprouting")
	if _, err := f.svc.Create(ctx, uuid.New(), params); err == nil {
		t.Fatal("expected error for invalid stage")
	}

	if _, err := f.svc.Create(ctx, uuid.Nil, validCreateParams()); err == nil {
		t.Fatal("expected error for nil owner")
	}
}

func TestUpdateAppendsStageActivity(t *testing.T) {
	f := newFixture(t)
	ownerID := uuid.New()
	grow, err := f.svc.Create(context.Background(), ownerID, validCreateParams())
	if err != nil {
		t.Fatalf("seeding grow: %v", err)
	}
	f.activities.appended = nil

	updated, err := f.svc.Update(context.Background(), ownerID, grow.ID, UpdateParams{
		StrainName: "Northern Lights",
		Stage:      enums.GrowStageFlowering,
		StartDate:  grow.StartDate,
		IsIndoor:   true,
	})
	if err != nil {
		t.Fatalf("unexpected update error: %v", err)
	}
	if updated.Stage != enums.GrowStageFlowering {
		t.Fatalf("expected Flowering, got %s", updated.Stage)
	}

	if len(f.activities.appended) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(f.activities.appended))
	}
	activity := f.activities.appended[0]
	if activity.Type != enums.ActivityTypeUpdateStage {
		t.Fatalf("expected update_stage, got %s", activity.Type)
	}
	if activity.NewStage == nil || *activity.NewStage != enums.GrowStageFlowering {
		t.Fatalf("expected new stage recorded, got %+v", activity.NewStage)
	}
}

func TestCompleteSetsStatusAndLogsFinish(t *testing.T) {
	f := newFixture(t)
	ownerID := uuid.New()
	grow, err := f.svc.Create(context.Background(), ownerID, validCreateParams())
	if err != nil {
		t.Fatalf("seeding grow: %v", err)
	}
	f.activities.appended = nil

	if err := f.svc.Complete(context.Background(), ownerID, grow.ID); err != nil {
		t.Fatalf("unexpected complete error: %v", err)
	}
	if f.repo.grows[grow.ID].Status != enums.GrowStatusComplete {
		t.Fatalf("expected Complete status, got %s", f.repo.grows[grow.ID].Status)
	}
	if len(f.activities.appended) != 1 || f.activities.appended[0].Type != enums.ActivityTypeFinishGrow {
		t.Fatalf("expected finish_grow activity, got %+v", f.activities.appended)
	}
}

func TestDeleteRemovesBlobAndLogs(t *testing.T) {
	f := newFixture(t)
	ownerID := uuid.New()
	params := validCreateParams()
	params.Image = &media.UploadInput{Data: []byte("img"), ContentType: "image/jpeg"}
	grow, err := f.svc.Create(context.Background(), ownerID, params)
	if err != nil {
		t.Fatalf("seeding grow: %v", err)
	}
	f.activities.appended = nil

	if err := f.svc.Delete(context.Background(), ownerID, grow.ID); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
	if len(f.repo.deleted) != 1 {
		t.Fatalf("expected grow row deleted")
	}
	if len(f.images.deleted) != 1 || f.images.deleted[0] != *grow.ImageKey {
		t.Fatalf("expected blob deleted, got %v", f.images.deleted)
	}
	if len(f.activities.appended) != 1 || f.activities.appended[0].Type != enums.ActivityTypeDeleteGrow {
		t.Fatalf("expected delete_grow activity, got %+v", f.activities.appended)
	}
}

func TestDeleteUnknownGrow(t *testing.T) {
	f := newFixture(t)
	err := f.svc.Delete(context.Background(), uuid.New(), uuid.New())
	if err == nil {
		t.Fatal("expected not found error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddEventRecordsNameInActivity(t *testing.T) {
	f := newFixture(t)
	ownerID := uuid.New()
	grow, err := f.svc.Create(context.Background(), ownerID, validCreateParams())
	if err != nil {
		t.Fatalf("seeding grow: %v", err)
	}
	f.activities.appended = nil

	event, err := f.svc.AddEvent(context.Background(), ownerID, grow.ID, AddEventParams{
		Name: "Watered",
		Note: "half a liter",
		Date: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("unexpected add event error: %v", err)
	}
	if event.Name != "Watered" {
		t.Fatalf("unexpected event %+v", event)
	}

	if len(f.activities.appended) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(f.activities.appended))
	}
	activity := f.activities.appended[0]
	if activity.Type != enums.ActivityTypeAddEvent {
		t.Fatalf("expected add_event, got %s", activity.Type)
	}
	if activity.EventName == nil || *activity.EventName != "Watered" {
		t.Fatalf("expected event name recorded, got %+v", activity.EventName)
	}
}

func TestAddNoteAndImage(t *testing.T) {
	f := newFixture(t)
	ownerID := uuid.New()
	grow, err := f.svc.Create(context.Background(), ownerID, validCreateParams())
	if err != nil {
		t.Fatalf("seeding grow: %v", err)
	}
	f.activities.appended = nil

	if _, err := f.svc.AddNote(context.Background(), ownerID, grow.ID, AddNoteParams{Text: "looking healthy"}); err != nil {
		t.Fatalf("unexpected add note error: %v", err)
	}
	if _, err := f.svc.AddImage(context.Background(), ownerID, grow.ID, AddImageParams{
		Image:       media.UploadInput{Data: []byte("img"), ContentType: "image/png"},
		Description: "week 3",
	}); err != nil {
		t.Fatalf("unexpected add image error: %v", err)
	}

	if len(f.repo.notes) != 1 || len(f.repo.images) != 1 {
		t.Fatalf("expected note and image persisted, got %d/%d", len(f.repo.notes), len(f.repo.images))
	}
	if len(f.activities.appended) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(f.activities.appended))
	}
	if f.activities.appended[0].Type != enums.ActivityTypeAddNote || f.activities.appended[1].Type != enums.ActivityTypeAddImage {
		t.Fatalf("unexpected activity types %+v", f.activities.appended)
	}
}

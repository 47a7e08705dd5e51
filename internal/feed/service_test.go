package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/jwsummers/Canopy-Chronicles/pkg/db/models"
	"github.com/jwsummers/Canopy-Chronicles/pkg/enums"
	"github.com/jwsummers/Canopy-Chronicles/pkg/logger"
)

type fakeActivityRepo struct {
	rows   []models.Activity
	listFn func(ownerID uuid.UUID) ([]models.Activity, error)
}

func (f *fakeActivityRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeActivityRepo) Append(ctx context.Context, activity *models.Activity) error {
	f.rows = append(f.rows, *activity)
	return nil
}

func (f *fakeActivityRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Activity, error) {
	if f.listFn != nil {
		return f.listFn(ownerID)
	}
	return f.rows, nil
}

type fakeGrowSource struct {
	ids map[uuid.UUID]struct{}
	err error
}

func (f *fakeGrowSource) ExistingGrowIDs(ctx context.Context, ownerID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	return f.ids, f.err
}

type fakeEntrySource struct {
	events []models.GrowEvent
	notes  []models.Note
	images []models.GrowImage

	eventsErr error
}

func (f *fakeEntrySource) ListEventsByGrow(ctx context.Context, growID uuid.UUID) ([]models.GrowEvent, error) {
	return f.events, f.eventsErr
}

func (f *fakeEntrySource) ListNotesByGrow(ctx context.Context, growID uuid.UUID) ([]models.Note, error) {
	return f.notes, nil
}

func (f *fakeEntrySource) ListImagesByGrow(ctx context.Context, growID uuid.UUID) ([]models.GrowImage, error) {
	return f.images, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
}

func newTestService(t *testing.T, activities Repository, grows growSource, entries entrySource) Service {
	t.Helper()
	svc, err := NewService(activities, grows, entries, testLogger())
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func activityAt(growID uuid.UUID, growName string, kind enums.ActivityType, ts time.Time) models.Activity {
	return models.Activity{
		ID:        uuid.New(),
		OwnerID:   uuid.New(),
		GrowID:    growID,
		GrowName:  growName,
		Type:      kind,
		Timestamp: ts,
	}
}

func TestListActivitiesDropsDanglingAndSortsDesc(t *testing.T) {
	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	liveGrow := uuid.New()
	deletedGrow := uuid.New()

	repo := &fakeActivityRepo{rows: []models.Activity{
		activityAt(liveGrow, "Blue Dream", enums.ActivityTypeAddGrow, base.Add(-2*time.Hour)),
		activityAt(deletedGrow, "Gone Grow", enums.ActivityTypeAddNote, base.Add(-time.Hour)),
		activityAt(liveGrow, "Blue Dream", enums.ActivityTypeAddEvent, base),
	}}
	grows := &fakeGrowSource{ids: map[uuid.UUID]struct{}{liveGrow: {}}}

	svc := newTestService(t, repo, grows, &fakeEntrySource{})
	got := svc.ListActivities(context.Background(), uuid.New())

	if len(got) != 2 {
		t.Fatalf("expected dangling activity dropped, got %d rows", len(got))
	}
	for _, activity := range got {
		if activity.GrowID == deletedGrow {
			t.Fatal("activity for deleted grow leaked through")
		}
	}
	if !got[0].Timestamp.After(got[1].Timestamp) {
		t.Fatalf("expected newest first, got %s then %s", got[0].Timestamp, got[1].Timestamp)
	}
}

func TestListActivitiesFailSoft(t *testing.T) {
	repo := &fakeActivityRepo{listFn: func(uuid.UUID) ([]models.Activity, error) {
		return nil, errors.New("db down")
	}}

	svc := newTestService(t, repo, &fakeGrowSource{}, &fakeEntrySource{})
	got := svc.ListActivities(context.Background(), uuid.New())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %v", got)
	}
}

func TestListActivitiesGrowLookupFailSoft(t *testing.T) {
	repo := &fakeActivityRepo{rows: []models.Activity{
		activityAt(uuid.New(), "Any", enums.ActivityTypeAddGrow, time.Now()),
	}}
	grows := &fakeGrowSource{err: errors.New("db down")}

	svc := newTestService(t, repo, grows, &fakeEntrySource{})
	if got := svc.ListActivities(context.Background(), uuid.New()); len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestListGrowTimelineMergesTagged(t *testing.T) {
	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	growID := uuid.New()

	entries := &fakeEntrySource{
		events: []models.GrowEvent{{ID: uuid.New(), GrowID: growID, Name: "Watered", Date: base, Timestamp: base.Add(-30 * time.Minute)}},
		notes:  []models.Note{{ID: uuid.New(), GrowID: growID, Text: "looking good", Timestamp: base}},
		images: []models.GrowImage{{ID: uuid.New(), GrowID: growID, URL: "https://img", Timestamp: base.Add(-time.Hour)}},
	}

	svc := newTestService(t, &fakeActivityRepo{}, &fakeGrowSource{}, entries)
	got := svc.ListGrowTimeline(context.Background(), growID)

	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	wantKinds := []enums.TimelineKind{enums.TimelineKindNote, enums.TimelineKindEvent, enums.TimelineKindImage}
	for i, want := range wantKinds {
		if got[i].Kind != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, got[i].Kind)
		}
	}
	if got[1].EventName != "Watered" {
		t.Fatalf("event fields not populated: %+v", got[1])
	}
	if got[0].Text != "looking good" {
		t.Fatalf("note fields not populated: %+v", got[0])
	}
	if got[2].URL != "https://img" {
		t.Fatalf("image fields not populated: %+v", got[2])
	}
}

func TestListGrowTimelineFailSoft(t *testing.T) {
	entries := &fakeEntrySource{eventsErr: errors.New("db down")}
	svc := newTestService(t, &fakeActivityRepo{}, &fakeGrowSource{}, entries)

	got := svc.ListGrowTimeline(context.Background(), uuid.New())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %v", got)
	}
}

func TestFilterActivitiesIdentityOnBlank(t *testing.T) {
	rows := []models.Activity{
		activityAt(uuid.New(), "Blue Dream", enums.ActivityTypeAddGrow, time.Now()),
		activityAt(uuid.New(), "White Widow", enums.ActivityTypeAddNote, time.Now()),
	}

	for _, keyword := range []string{"", "  "} {
		if got := FilterActivities(rows, keyword); len(got) != len(rows) {
			t.Fatalf("keyword %q: expected identity", keyword)
		}
	}
}

func TestFilterActivitiesMatchesFields(t *testing.T) {
	eventName := "Watered"
	rows := []models.Activity{
		activityAt(uuid.New(), "Blue Dream", enums.ActivityTypeAddGrow, time.Now()),
		activityAt(uuid.New(), "White Widow", enums.ActivityTypeFinishGrow, time.Now()),
		{ID: uuid.New(), GrowID: uuid.New(), GrowName: "Haze", Type: enums.ActivityTypeAddEvent, EventName: &eventName, Timestamp: time.Now()},
	}

	if got := FilterActivities(rows, "BLUE"); len(got) != 1 || got[0].GrowName != "Blue Dream" {
		t.Fatalf("grow name match failed: %+v", got)
	}
	if got := FilterActivities(rows, "finish"); len(got) != 1 || got[0].Type != enums.ActivityTypeFinishGrow {
		t.Fatalf("type match failed: %+v", got)
	}
	if got := FilterActivities(rows, "water"); len(got) != 1 || got[0].EventName == nil {
		t.Fatalf("event name match failed: %+v", got)
	}
	if got := FilterActivities(rows, "nothing-here"); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

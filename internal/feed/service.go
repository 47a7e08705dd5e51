package feed

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jwsummers/Canopy-Chronicles/pkg/db/models"
	"github.com/jwsummers/Canopy-Chronicles/pkg/enums"
	pkgerrors "github.com/jwsummers/Canopy-Chronicles/pkg/errors"
	"github.com/jwsummers/Canopy-Chronicles/pkg/logger"
)

// growSource reports which of an owner's grows still exist. Activities
// referencing deleted grows are dropped at read time.
type growSource interface {
	ExistingGrowIDs(ctx context.Context, ownerID uuid.UUID) (map[uuid.UUID]struct{}, error)
}

// entrySource reads the sub-entities merged into a grow's timeline.
type entrySource interface {
	ListEventsByGrow(ctx context.Context, growID uuid.UUID) ([]models.GrowEvent, error)
	ListNotesByGrow(ctx context.Context, growID uuid.UUID) ([]models.Note, error)
	ListImagesByGrow(ctx context.Context, growID uuid.UUID) ([]models.GrowImage, error)
}

// Service aggregates the home feed and per-grow timelines. Reads are
// fail-soft: a storage error logs and yields an empty sequence so the feed
// screen renders instead of erroring.
type Service interface {
	ListActivities(ctx context.Context, ownerID uuid.UUID) []models.Activity
	ListGrowTimeline(ctx context.Context, growID uuid.UUID) []TimelineEntry
}

type service struct {
	activities Repository
	grows      growSource
	entries    entrySource
	logger     *logger.Logger
}

// NewService wires feed dependencies.
func NewService(activities Repository, grows growSource, entries entrySource, logg *logger.Logger) (Service, error) {
	if activities == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "activity repository required")
	}
	if grows == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "grow source required")
	}
	if entries == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "entry source required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{activities: activities, grows: grows, entries: entries, logger: logg}, nil
}

// ListActivities joins the owner's activity log against the live grow set,
// silently dropping entries whose grow was deleted, newest first.
func (s *service) ListActivities(ctx context.Context, ownerID uuid.UUID) []models.Activity {
	if ownerID == uuid.Nil {
		return []models.Activity{}
	}

	rows, err := s.activities.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error(s.logger.WithOwnerID(ctx, ownerID.String()), "listing activities failed", err)
		return []models.Activity{}
	}

	existing, err := s.grows.ExistingGrowIDs(ctx, ownerID)
	if err != nil {
		s.logger.Error(s.logger.WithOwnerID(ctx, ownerID.String()), "listing grow ids failed", err)
		return []models.Activity{}
	}

	kept := make([]models.Activity, 0, len(rows))
	for _, activity := range rows {
		if _, ok := existing[activity.GrowID]; !ok {
			continue
		}
		kept = append(kept, activity)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Timestamp.After(kept[j].Timestamp)
	})
	return kept
}

// ListGrowTimeline merges the grow's events, notes, and images into one
// kind-tagged sequence, newest first.
func (s *service) ListGrowTimeline(ctx context.Context, growID uuid.UUID) []TimelineEntry {
	if growID == uuid.Nil {
		return []TimelineEntry{}
	}

	ctx = s.logger.WithGrowID(ctx, growID.String())

	events, err := s.entries.ListEventsByGrow(ctx, growID)
	if err != nil {
		s.logger.Error(ctx, "listing grow events failed", err)
		return []TimelineEntry{}
	}
	notes, err := s.entries.ListNotesByGrow(ctx, growID)
	if err != nil {
		s.logger.Error(ctx, "listing grow notes failed", err)
		return []TimelineEntry{}
	}
	images, err := s.entries.ListImagesByGrow(ctx, growID)
	if err != nil {
		s.logger.Error(ctx, "listing grow images failed", err)
		return []TimelineEntry{}
	}

	entries := make([]TimelineEntry, 0, len(events)+len(notes)+len(images))
	for _, event := range events {
		date := event.Date
		entries = append(entries, TimelineEntry{
			Kind:      enums.TimelineKindEvent,
			ID:        event.ID,
			Timestamp: event.Timestamp,
			EventName: event.Name,
			EventNote: event.Note,
			EventDate: &date,
		})
	}
	for _, note := range notes {
		entries = append(entries, TimelineEntry{
			Kind:      enums.TimelineKindNote,
			ID:        note.ID,
			Timestamp: note.Timestamp,
			Text:      note.Text,
		})
	}
	for _, image := range images {
		entries = append(entries, TimelineEntry{
			Kind:        enums.TimelineKindImage,
			ID:          image.ID,
			Timestamp:   image.Timestamp,
			URL:         image.URL,
			Description: image.Description,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries
}

// FilterActivities narrows activities to those whose grow name, type, or
// event name contains the keyword, case-insensitively. A blank keyword
// returns the input unchanged.
func FilterActivities(activities []models.Activity, keyword string) []models.Activity {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle == "" {
		return activities
	}

	filtered := make([]models.Activity, 0, len(activities))
	for _, activity := range activities {
		if strings.Contains(strings.ToLower(activity.GrowName), needle) ||
			strings.Contains(strings.ToLower(string(activity.Type)), needle) {
			filtered = append(filtered, activity)
			continue
		}
		if activity.EventName != nil && strings.Contains(strings.ToLower(*activity.EventName), needle) {
			filtered = append(filtered, activity)
		}
	}
	return filtered
}

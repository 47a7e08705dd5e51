package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jwsummers/Canopy-Chronicles/internal/feed"
	"github.com/jwsummers/Canopy-Chronicles/pkg/db/models"
	"github.com/jwsummers/Canopy-Chronicles/pkg/enums"
	pkgerrors "github.com/jwsummers/Canopy-Chronicles/pkg/errors"
)

type testFeedService struct {
	listActivitiesFn func(ctx context.Context, ownerID uuid.UUID) []models.Activity
	listTimelineFn   func(ctx context.Context, growID uuid.UUID) []feed.TimelineEntry
}

func (s *testFeedService) ListActivities(ctx context.Context, ownerID uuid.UUID) []models.Activity {
	if s.listActivitiesFn != nil {
		return s.listActivitiesFn(ctx, ownerID)
	}
	return []models.Activity{}
}

func (s *testFeedService) ListGrowTimeline(ctx context.Context, growID uuid.UUID) []feed.TimelineEntry {
	if s.listTimelineFn != nil {
		return s.listTimelineFn(ctx, growID)
	}
	return []feed.TimelineEntry{}
}

func TestListActivitiesAppliesFilter(t *testing.T) {
	ownerID := uuid.New()
	svc := &testFeedService{
		listActivitiesFn: func(ctx context.Context, oid uuid.UUID) []models.Activity {
			return []models.Activity{
				{ID: uuid.New(), GrowName: "Northern Lights", Type: enums.ActivityTypeAddGrow, Timestamp: time.Now()},
				{ID: uuid.New(), GrowName: "Blue Dream", Type: enums.ActivityTypeAddNote, Timestamp: time.Now()},
			}
		},
	}

	req := authedRequest(t, http.MethodGet, "/api/v1/activities?filter=add_note", ownerID, "")
	resp := httptest.NewRecorder()
	ListActivities(svc, testControllerLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data []activityResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].GrowName != "Blue Dream" {
		t.Fatalf("unexpected filtered feed %+v", envelope.Data)
	}
}

func TestListActivitiesEmptyFeedIsArray(t *testing.T) {
	ownerID := uuid.New()
	req := authedRequest(t, http.MethodGet, "/api/v1/activities", ownerID, "")
	resp := httptest.NewRecorder()
	ListActivities(&testFeedService{}, testControllerLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !json.Valid(resp.Body.Bytes()) {
		t.Fatal("invalid json body")
	}
	body := resp.Body.String()
	if !strings.Contains(body, `"data":[]`) {
		t.Fatalf("expected empty array payload, got %s", body)
	}
}

func TestGrowTimelineChecksOwnership(t *testing.T) {
	ownerID := uuid.New()
	growID := uuid.New()
	guard := &testGrowsService{
		getFn: func(ctx context.Context, oid, gid uuid.UUID) (*models.Grow, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "grow not found")
		},
	}

	req := withGrowID(authedRequest(t, http.MethodGet, "/api/v1/grows/"+growID.String()+"/timeline", ownerID, ""), growID)
	resp := httptest.NewRecorder()
	GrowTimeline(&testFeedService{}, guard, testControllerLogger())(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestGrowTimelineReturnsEntries(t *testing.T) {
	ownerID := uuid.New()
	growID := uuid.New()
	svc := &testFeedService{
		listTimelineFn: func(ctx context.Context, gid uuid.UUID) []feed.TimelineEntry {
			return []feed.TimelineEntry{
				{Kind: enums.TimelineKindNote, ID: uuid.New(), Timestamp: time.Now(), Text: "looking healthy"},
			}
		},
	}

	req := withGrowID(authedRequest(t, http.MethodGet, "/api/v1/grows/"+growID.String()+"/timeline", ownerID, ""), growID)
	resp := httptest.NewRecorder()
	GrowTimeline(svc, &testGrowsService{}, testControllerLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data []feed.TimelineEntry `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Text != "looking healthy" {
		t.Fatalf("unexpected timeline %+v", envelope.Data)
	}
}

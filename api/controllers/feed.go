package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jwsummers/Canopy-Chronicles/api/responses"
	"github.com/jwsummers/Canopy-Chronicles/internal/feed"
	"github.com/jwsummers/Canopy-Chronicles/pkg/db/models"
	"github.com/jwsummers/Canopy-Chronicles/pkg/logger"
)

// growOwnerGuard verifies that a grow belongs to the caller.
type growOwnerGuard interface {
	Get(ctx context.Context, ownerID, growID uuid.UUID) (*models.Grow, error)
}

// ListActivities returns the home feed, newest first, optionally filtered by
// keyword. Backend trouble yields an empty feed rather than an error page.
func ListActivities(svc feed.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		activities := svc.ListActivities(r.Context(), ownerID)
		activities = feed.FilterActivities(activities, r.URL.Query().Get("filter"))
		responses.WriteSuccess(w, toActivityResponses(activities))
	}
}

// GrowTimeline returns the merged event/note/image history of a grow.
func GrowTimeline(svc feed.Service, growsGuard growOwnerGuard, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		growID, err := growIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// Ownership check happens here; the feed service itself is scoped
		// by grow id only.
		if _, err := growsGuard.Get(r.Context(), ownerID, growID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, svc.ListGrowTimeline(r.Context(), growID))
	}
}

package controllers

import (
	"time"

	"github.com/jwsummers/Canopy-Chronicles/pkg/db/models"
	"github.com/jwsummers/Canopy-Chronicles/pkg/enums"
)

type growResponse struct {
	ID         string           `json:"id"`
	StrainName string           `json:"strainName"`
	Stage      enums.GrowStage  `json:"stage"`
	StartDate  time.Time        `json:"startDate"`
	IsIndoor   bool             `json:"isIndoor"`
	ImageURL   *string          `json:"imageUrl,omitempty"`
	Status     enums.GrowStatus `json:"status"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

func toGrowResponse(grow *models.Grow) growResponse {
	return growResponse{
		ID:         grow.ID.String(),
		StrainName: grow.StrainName,
		Stage:      grow.Stage,
		StartDate:  grow.StartDate,
		IsIndoor:   grow.IsIndoor,
		ImageURL:   grow.ImageURL,
		Status:     grow.Status,
		CreatedAt:  grow.CreatedAt,
		UpdatedAt:  grow.UpdatedAt,
	}
}

func toGrowResponses(grows []models.Grow) []growResponse {
	out := make([]growResponse, 0, len(grows))
	for i := range grows {
		out = append(out, toGrowResponse(&grows[i]))
	}
	return out
}

type activityResponse struct {
	ID          string             `json:"id"`
	GrowID      string             `json:"growId"`
	GrowName    string             `json:"growName"`
	Type        enums.ActivityType `json:"type"`
	EventName   *string            `json:"eventName,omitempty"`
	NewStage    *enums.GrowStage   `json:"newStage,omitempty"`
	Description *string            `json:"description,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
}

func toActivityResponses(activities []models.Activity) []activityResponse {
	out := make([]activityResponse, 0, len(activities))
	for _, activity := range activities {
		out = append(out, activityResponse{
			ID:          activity.ID.String(),
			GrowID:      activity.GrowID.String(),
			GrowName:    activity.GrowName,
			Type:        activity.Type,
			EventName:   activity.EventName,
			NewStage:    activity.NewStage,
			Description: activity.Description,
			Timestamp:   activity.Timestamp,
		})
	}
	return out
}

type eventResponse struct {
	ID        string    `json:"id"`
	GrowID    string    `json:"growId"`
	Name      string    `json:"name"`
	Note      string    `json:"note,omitempty"`
	Date      time.Time `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

func toEventResponse(event *models.GrowEvent) eventResponse {
	return eventResponse{
		ID:        event.ID.String(),
		GrowID:    event.GrowID.String(),
		Name:      event.Name,
		Note:      event.Note,
		Date:      event.Date,
		Timestamp: event.Timestamp,
	}
}

type noteResponse struct {
	ID        string    `json:"id"`
	GrowID    string    `json:"growId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

func toNoteResponse(note *models.Note) noteResponse {
	return noteResponse{
		ID:        note.ID.String(),
		GrowID:    note.GrowID.String(),
		Text:      note.Text,
		Timestamp: note.Timestamp,
	}
}

type growImageResponse struct {
	ID          string    `json:"id"`
	GrowID      string    `json:"growId"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func toGrowImageResponse(image *models.GrowImage) growImageResponse {
	return growImageResponse{
		ID:          image.ID.String(),
		GrowID:      image.GrowID.String(),
		URL:         image.URL,
		Description: image.Description,
		Timestamp:   image.Timestamp,
	}
}

type notificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Seen      bool      `json:"seen"`
	CreatedAt time.Time `json:"createdAt"`
}

func toNotificationResponses(notifications []models.Notification) []notificationResponse {
	out := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, notificationResponse{
			ID:        n.ID.String(),
			Title:     n.Title,
			Message:   n.Message,
			Seen:      n.Seen,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}

type profileResponse struct {
	DisplayName             string  `json:"displayName"`
	PhotoURL                *string `json:"photoUrl,omitempty"`
	NotificationsEnabled    bool    `json:"notificationsEnabled"`
	WateringIntervalDays    int     `json:"wateringIntervalDays"`
	FertilizingIntervalDays int     `json:"fertilizingIntervalDays"`
}

func toProfileResponse(profile *models.Profile) profileResponse {
	return profileResponse{
		DisplayName:             profile.DisplayName,
		PhotoURL:                profile.PhotoURL,
		NotificationsEnabled:    profile.NotificationsEnabled,
		WateringIntervalDays:    profile.WateringIntervalDays,
		FertilizingIntervalDays: profile.FertilizingIntervalDays,
	}
}

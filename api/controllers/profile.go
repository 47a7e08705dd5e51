package controllers

import (
	"net/http"

	"github.com/jwsummers/Canopy-Chronicles/api/responses"
	"github.com/jwsummers/Canopy-Chronicles/api/validators"
	"github.com/jwsummers/Canopy-Chronicles/internal/profiles"
	"github.com/jwsummers/Canopy-Chronicles/pkg/logger"
)

type updateProfileRequest struct {
	DisplayName             *string `json:"displayName" validate:"omitempty,min=1,max=80"`
	PhotoURL                *string `json:"photoUrl" validate:"omitempty,url"`
	NotificationsEnabled    *bool   `json:"notificationsEnabled"`
	WateringIntervalDays    *int    `json:"wateringIntervalDays" validate:"omitempty,min=1,max=365"`
	FertilizingIntervalDays *int    `json:"fertilizingIntervalDays" validate:"omitempty,min=1,max=365"`
}

// GetProfile returns the caller's profile, creating defaults on first read.
func GetProfile(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Get(r.Context(), ownerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toProfileResponse(profile))
	}
}

// UpdateProfile applies a partial edit to the caller's profile.
func UpdateProfile(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Update(r.Context(), ownerID, profiles.UpdateParams{
			DisplayName:             body.DisplayName,
			PhotoURL:                body.PhotoURL,
			NotificationsEnabled:    body.NotificationsEnabled,
			WateringIntervalDays:    body.WateringIntervalDays,
			FertilizingIntervalDays: body.FertilizingIntervalDays,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toProfileResponse(profile))
	}
}

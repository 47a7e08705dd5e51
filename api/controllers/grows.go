package controllers

import (
	"net/http"
	"time"

	"github.com/jwsummers/Canopy-Chronicles/api/responses"
	"github.com/jwsummers/Canopy-Chronicles/api/validators"
	"github.com/jwsummers/Canopy-Chronicles/internal/grows"
	"github.com/jwsummers/Canopy-Chronicles/internal/media"
	"github.com/jwsummers/Canopy-Chronicles/pkg/logger"
)

type createGrowRequest struct {
	StrainName string        `json:"strainName" validate:"required,max=120"`
	Stage      string        `json:"stage" validate:"required"`
	StartDate  time.Time     `json:"startDate" validate:"required"`
	IsIndoor   bool          `json:"isIndoor"`
	Image      *imagePayload `json:"image,omitempty"`
}

type updateGrowRequest struct {
	StrainName string    `json:"strainName" validate:"required,max=120"`
	Stage      string    `json:"stage" validate:"required"`
	StartDate  time.Time `json:"startDate" validate:"required"`
	IsIndoor   bool      `json:"isIndoor"`
}

type addEventRequest struct {
	Name string    `json:"name" validate:"required,max=60"`
	Note string    `json:"note" validate:"max=2000"`
	Date time.Time `json:"date" validate:"required"`
}

type addNoteRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

type addImageRequest struct {
	Image       imagePayload `json:"image" validate:"required"`
	Description string       `json:"description" validate:"max=500"`
}

// ListGrows returns the caller's grows, optionally filtered by keyword.
func ListGrows(svc grows.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.List(r.Context(), ownerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items = grows.Filter(items, r.URL.Query().Get("filter"))
		responses.WriteSuccess(w, toGrowResponses(items))
	}
}

// GetGrow returns a single grow owned by the caller.
func GetGrow(svc grows.Service, logg *logger.Logger) http.HandlerFunc {
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

		grow, err := svc.Get(r.Context(), ownerID, growID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toGrowResponse(grow))
	}
}

// CreateGrow registers a new grow, optionally with an initial photo.
func CreateGrow(svc grows.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createGrowRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := createParamsFromRequest(body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		grow, err := svc.Create(r.Context(), ownerID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toGrowResponse(grow))
	}
}

// UpdateGrow applies a full edit to an existing grow.
func UpdateGrow(svc grows.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body updateGrowRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stage, err := parseStage(body.Stage)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		grow, err := svc.Update(r.Context(), ownerID, growID, grows.UpdateParams{
			StrainName: body.StrainName,
			Stage:      stage,
			StartDate:  body.StartDate,
			IsIndoor:   body.IsIndoor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toGrowResponse(grow))
	}
}

// CompleteGrow marks a grow as finished.
func CompleteGrow(svc grows.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.Complete(r.Context(), ownerID, growID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "complete"})
	}
}

// DeleteGrow removes a grow, its entries, and its stored image.
func DeleteGrow(svc grows.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.Delete(r.Context(), ownerID, growID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AddGrowEvent records a care action against a grow.
func AddGrowEvent(svc grows.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body addEventRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		event, err := svc.AddEvent(r.Context(), ownerID, growID, grows.AddEventParams{
			Name: body.Name,
			Note: body.Note,
			Date: body.Date,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toEventResponse(event))
	}
}

// AddGrowNote attaches free-form text to a grow.
func AddGrowNote(svc grows.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body addNoteRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		note, err := svc.AddNote(r.Context(), ownerID, growID, grows.AddNoteParams{Text: body.Text})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toNoteResponse(note))
	}
}

// AddGrowImage uploads a photo and attaches it to a grow.
func AddGrowImage(svc grows.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body addImageRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		upload, err := body.Image.toUploadInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		image, err := svc.AddImage(r.Context(), ownerID, growID, grows.AddImageParams{
			Image:       *upload,
			Description: body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toGrowImageResponse(image))
	}
}

func createParamsFromRequest(body createGrowRequest) (grows.CreateParams, error) {
	stage, err := parseStage(body.Stage)
	if err != nil {
		return grows.CreateParams{}, err
	}

	var upload *media.UploadInput
	if body.Image != nil {
		upload, err = body.Image.toUploadInput()
		if err != nil {
			return grows.CreateParams{}, err
		}
	}

	return grows.CreateParams{
		StrainName: body.StrainName,
		Stage:      stage,
		StartDate:  body.StartDate,
		IsIndoor:   body.IsIndoor,
		Image:      upload,
	}, nil
}

package controllers

import (
	"encoding/base64"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jwsummers/Canopy-Chronicles/api/middleware"
	"github.com/jwsummers/Canopy-Chronicles/internal/media"
	"github.com/jwsummers/Canopy-Chronicles/pkg/enums"
	pkgerrors "github.com/jwsummers/Canopy-Chronicles/pkg/errors"
)

// ownerFromRequest resolves the authenticated user's id from the request
// context seeded by the auth middleware.
func ownerFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user context")
	}
	ownerID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user context")
	}
	return ownerID, nil
}

func growIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "growID")
	growID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid grow id")
	}
	return growID, nil
}

func parseStage(raw string) (enums.GrowStage, error) {
	stage, err := enums.ParseGrowStage(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid grow stage")
	}
	return stage, nil
}

// imagePayload is a base64-encoded image attachment.
type imagePayload struct {
	Data        string `json:"data" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
}

func (p *imagePayload) toUploadInput() (*media.UploadInput, error) {
	if p == nil {
		return nil, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(p.Data)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "image data must be base64 encoded")
	}
	return &media.UploadInput{Data: decoded, ContentType: p.ContentType}, nil
}

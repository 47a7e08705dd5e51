package grows

import (
	"time"

	"github.com/jwsummers/Canopy-Chronicles/internal/media"
	"github.com/jwsummers/Canopy-Chronicles/pkg/enums"
)

// CreateParams carries everything needed to register a new grow.
type CreateParams struct {
	StrainName string          `validate:"required,max=120"`
	Stage      enums.GrowStage `validate:"required"`
	StartDate  time.Time       `validate:"required"`
	IsIndoor   bool
	Image      *media.UploadInput
}

// UpdateParams is a full-row edit of an existing grow. The activity log
// records the stage the grow ended up in.
type UpdateParams struct {
	StrainName string          `validate:"required,max=120"`
	Stage      enums.GrowStage `validate:"required"`
	StartDate  time.Time       `validate:"required"`
	IsIndoor   bool
}

// AddEventParams records a care action against a grow.
type AddEventParams struct {
	Name string    `validate:"required,max=60"`
	Note string    `validate:"max=2000"`
	Date time.Time `validate:"required"`
}

// AddNoteParams attaches free-form text to a grow.
type AddNoteParams struct {
	Text string `validate:"required,max=4000"`
}

// AddImageParams attaches a photo to a grow.
type AddImageParams struct {
	Image       media.UploadInput
	Description string `validate:"max=500"`
}

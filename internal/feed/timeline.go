package feed

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwsummers/Canopy-Chronicles/pkg/enums"
)

// TimelineEntry is the tagged view of one event, note, or image on a grow's
// detail timeline. Exactly the fields for the entry's kind are populated.
type TimelineEntry struct {
	Kind      enums.TimelineKind `json:"kind"`
	ID        uuid.UUID          `json:"id"`
	Timestamp time.Time          `json:"timestamp"`

	// kind == event
	EventName string     `json:"event_name,omitempty"`
	EventNote string     `json:"event_note,omitempty"`
	EventDate *time.Time `json:"event_date,omitempty"`

	// kind == note
	Text string `json:"text,omitempty"`

	// kind == image
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}

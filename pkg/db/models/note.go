package models

import (
	"time"

	"github.com/google/uuid"
)

// Note is a free-form text entry attached to a grow.
type Note struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	GrowID    uuid.UUID `gorm:"column:grow_id;type:uuid;not null;index"`
	OwnerID   uuid.UUID `gorm:"column:owner_id;type:uuid;not null;index"`
	Text      string    `gorm:"column:text;type:text;not null"`
	Timestamp time.Time `gorm:"column:timestamp;type:timestamptz;not null"`
}

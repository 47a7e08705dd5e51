package models

import (
	"time"

	"github.com/google/uuid"
)

// GrowEvent records a care action (watered, fertilized, trimmed, ...) against
// a grow. Name carries the picker value, Note the optional free text.
type GrowEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	GrowID    uuid.UUID `gorm:"column:grow_id;type:uuid;not null;index"`
	OwnerID   uuid.UUID `gorm:"column:owner_id;type:uuid;not null;index"`
	Name      string    `gorm:"column:name;type:text;not null"`
	Note      string    `gorm:"column:note;type:text"`
	Date      time.Time `gorm:"column:date;type:timestamptz;not null"`
	Timestamp time.Time `gorm:"column:timestamp;type:timestamptz;not null"`
}

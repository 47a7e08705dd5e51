package models

import (
	"time"

	"github.com/google/uuid"
)

// GrowImage is a photo attached to a grow, stored in the blob store with its
// public URL denormalized for display.
type GrowImage struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	GrowID      uuid.UUID `gorm:"column:grow_id;type:uuid;not null;index"`
	OwnerID     uuid.UUID `gorm:"column:owner_id;type:uuid;not null;index"`
	URL         string    `gorm:"column:url;type:text;not null"`
	StorageKey  string    `gorm:"column:storage_key;type:text;not null"`
	Description string    `gorm:"column:description;type:text"`
	Timestamp   time.Time `gorm:"column:timestamp;type:timestamptz;not null"`
}
